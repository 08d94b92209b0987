package steps

import (
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/protocol"
)

type wakePhase int

const (
	wakeWaiting wakePhase = iota
	wakeReady
)

// Wake raises the wake line and waits for the coprocessor to report it is ready.
//
// READY_AFTER_SLEEP marks it ready; the following tick releases the wake line and reports
// NextStep. READY_AFTER_BOOT means the coprocessor restarted instead of waking and is reported
// as Redo, as is the wake timeout.
type Wake struct {
	env   *Env
	phase wakePhase
	timer deadline
}

// NewWake creates the wake step.
func NewWake(env *Env) *Wake {
	return &Wake{env: env}
}

// Run implements domain.StepBody.
func (w *Wake) Run(init bool) domain.StepOutcome {
	if init {
		w.phase = wakeWaiting
		w.env.Link.SetWake(true)
		w.timer.arm(w.env.Clock, w.env.Timing.WakeTimeout)
		return domain.OutcomeNothing
	}

	if w.phase == wakeReady {
		w.env.Link.SetWake(false)
		return domain.OutcomeNextStep
	}

	if f, ok := w.env.Link.Receive(); ok {
		switch {
		case f.Is(protocol.EvtReadyAfterSleep):
			w.phase = wakeReady
			return domain.OutcomeNothing
		case f.Is(protocol.EvtReadyAfterBoot):
			w.env.Logger.Debug("coprocessor announced boot while waking")
			w.env.Link.SetWake(false)
			return domain.OutcomeRedo
		default:
			w.env.Logger.Debug("ignoring frame while waking", "frame", f)
		}
	}

	if w.timer.expired(w.env.Clock) {
		w.env.Logger.Debug("wake timed out", "kind", domain.FailureProtocolTimeout)
		w.env.Link.SetWake(false)
		return domain.OutcomeRedo
	}
	return domain.OutcomeNothing
}
