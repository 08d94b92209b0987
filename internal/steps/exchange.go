package steps

import (
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/protocol"
)

// Policy decides what a rejected or unanswered command turns into.
type Policy struct {
	OnNak     domain.StepOutcome
	OnTimeout domain.StepOutcome
}

var (
	// RetryPolicy lets the behaviour retry the command.
	RetryPolicy = Policy{OnNak: domain.OutcomeRedo, OnTimeout: domain.OutcomeRedo}

	// SleepPolicy has no retry path: a NAK is ignored and only the timeout ends the wait.
	SleepPolicy = Policy{OnNak: domain.OutcomeNothing, OnTimeout: domain.OutcomeCriticalAbort}
)

// Exchange sends one command frame and waits for its acknowledgement.
type Exchange struct {
	env     *Env
	cmd     byte
	payload func() []byte
	policy  Policy
	onAck   func()
	timer   deadline
}

// NewExchange creates a command/ack step. payload and onAck may be nil.
func NewExchange(env *Env, cmd byte, payload func() []byte, policy Policy, onAck func()) *Exchange {
	return &Exchange{env: env, cmd: cmd, payload: payload, policy: policy, onAck: onAck}
}

// Run implements domain.StepBody.
func (e *Exchange) Run(init bool) domain.StepOutcome {
	if init {
		return e.send()
	}

	if f, ok := e.env.Link.Receive(); ok {
		switch {
		case f.Acknowledges(e.cmd):
			if e.onAck != nil {
				e.onAck()
			}
			return domain.OutcomeNextStep
		case f.Rejects(e.cmd):
			e.env.Logger.Debug("command rejected", "cmd", protocol.CommandName(e.cmd), "kind", domain.FailureProtocolNak)
			return e.policy.OnNak
		case f.Is(protocol.EvtReadyAfterBoot):
			e.env.Logger.Debug("coprocessor rebooted mid-exchange", "cmd", protocol.CommandName(e.cmd))
			return domain.OutcomeCriticalAbort
		default:
			e.env.Logger.Debug("ignoring frame", "cmd", protocol.CommandName(e.cmd), "frame", f)
		}
	}

	if e.timer.expired(e.env.Clock) {
		e.env.Logger.Debug("ack timed out", "cmd", protocol.CommandName(e.cmd), "kind", domain.FailureProtocolTimeout)
		return e.policy.OnTimeout
	}
	return domain.OutcomeNothing
}

func (e *Exchange) send() domain.StepOutcome {
	var payload []byte
	if e.payload != nil {
		payload = e.payload()
	}
	frame, err := protocol.EncodeCommand(e.cmd, payload...)
	if err != nil {
		e.env.Logger.Error("cannot encode command", "cmd", protocol.CommandName(e.cmd), "err", err)
		return domain.OutcomeCriticalAbort
	}
	if err := e.env.Link.Send(frame); err != nil {
		e.env.Logger.Debug("send failed", "cmd", protocol.CommandName(e.cmd), "err", err)
		// Reported as the policy's timeout outcome on the next tick.
		e.timer.arm(e.env.Clock, 0)
		return domain.OutcomeNothing
	}
	e.timer.arm(e.env.Clock, e.env.Timing.AckTimeout)
	return domain.OutcomeNothing
}

// NewPush pushes one characteristic value. value is read when the frame is sent; stored is
// called with the pushed value once the coprocessor acknowledges it.
func NewPush(env *Env, cmd byte, value func() byte, stored func(byte)) *Exchange {
	var sent byte
	return NewExchange(env, cmd,
		func() []byte {
			sent = value()
			return []byte{sent}
		},
		RetryPolicy,
		func() {
			if stored != nil {
				stored(sent)
			}
		})
}

// NewStartBroadcast starts advertising.
func NewStartBroadcast(env *Env) *Exchange {
	return NewExchange(env, protocol.CmdStartBroadcast, nil, RetryPolicy, func() {
		env.Shared.Broadcasting = true
	})
}

// NewStopBroadcast stops advertising.
func NewStopBroadcast(env *Env) *Exchange {
	return NewExchange(env, protocol.CmdStopBroadcast, nil, RetryPolicy, func() {
		env.Shared.Broadcasting = false
	})
}

// NewSleep returns the coprocessor to sleep.
func NewSleep(env *Env) *Exchange {
	return NewExchange(env, protocol.CmdSleep, nil, SleepPolicy, nil)
}
