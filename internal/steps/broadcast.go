package steps

import (
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/protocol"
)

// Outcomes reported by BroadcastWait.
const (
	OutcomePeerRead       = domain.OutcomeActionA
	OutcomeBroadcastEnded = domain.OutcomeActionB
	OutcomeWindowElapsed  = domain.OutcomeActionC
)

// BroadcastWait polls the coprocessor while it advertises. It never decides on its own to
// leave: every event maps to an action outcome and the behaviour chooses what to do with it.
type BroadcastWait struct {
	env   *Env
	timer deadline
}

// NewBroadcastWait creates the wait step.
func NewBroadcastWait(env *Env) *BroadcastWait {
	return &BroadcastWait{env: env}
}

// Run implements domain.StepBody.
func (b *BroadcastWait) Run(init bool) domain.StepOutcome {
	if init {
		b.timer.arm(b.env.Clock, b.env.Timing.BroadcastWindow)
		return domain.OutcomeNothing
	}

	if f, ok := b.env.Link.Receive(); ok {
		switch {
		case f.Is(protocol.EvtPeerRead):
			return OutcomePeerRead
		case f.Is(protocol.EvtBroadcastEnded):
			return OutcomeBroadcastEnded
		case f.Is(protocol.EvtReadyAfterBoot):
			return domain.OutcomeCriticalAbort
		}
	}

	if b.timer.expired(b.env.Clock) {
		return OutcomeWindowElapsed
	}
	return domain.OutcomeNothing
}
