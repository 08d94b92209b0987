package steps

import "github.com/aretw0/pendant/pkg/domain"

// Settle waits for the fixed settle delay, giving the coprocessor time to commit a value.
type Settle struct {
	env   *Env
	timer deadline
}

// NewSettle creates a settle step.
func NewSettle(env *Env) *Settle {
	return &Settle{env: env}
}

// Run implements domain.StepBody.
func (s *Settle) Run(init bool) domain.StepOutcome {
	if init {
		s.timer.arm(s.env.Clock, s.env.Timing.SettleDelay)
	}
	if s.timer.expired(s.env.Clock) {
		return domain.OutcomeNextStep
	}
	return domain.OutcomeNothing
}
