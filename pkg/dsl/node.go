package dsl

import "github.com/aretw0/pendant/pkg/domain"

// StepBuilder provides a fluent API for configuring the reactions of a step.
type StepBuilder struct {
	id   domain.StepID
	step domain.Step
}

// Next routes NextStep to target.
func (s *StepBuilder) Next(target domain.StepID) *StepBuilder {
	return s.Goto(domain.OutcomeNextStep, target)
}

// Last marks the step as the final one: NextStep finishes the sequence.
func (s *StepBuilder) Last() *StepBuilder {
	s.step.Reactions[domain.OutcomeNextStep] = domain.Static(domain.CmdFinished)
	s.step.Transitions = append(s.step.Transitions, domain.Transition{On: domain.OutcomeNextStep, To: domain.End})
	return s
}

// Redo sets the reaction for the Redo outcome, typically a retry counter.
func (s *StepBuilder) Redo(r domain.Reaction) *StepBuilder {
	s.step.Transitions = append(s.step.Transitions, domain.Transition{On: domain.OutcomeRedo, To: s.id})
	return s.On(domain.OutcomeRedo, r)
}

// Goto routes outcome to target unconditionally.
func (s *StepBuilder) Goto(outcome domain.StepOutcome, target domain.StepID) *StepBuilder {
	s.step.Reactions[outcome] = domain.Static(domain.LoadNext(target))
	s.step.Transitions = append(s.step.Transitions, domain.Transition{On: outcome, To: target})
	return s
}

// GotoAfter routes outcome to target after running effect.
func (s *StepBuilder) GotoAfter(outcome domain.StepOutcome, target domain.StepID, effect func()) *StepBuilder {
	s.step.Reactions[outcome] = func() domain.Command {
		effect()
		return domain.LoadNext(target)
	}
	s.step.Transitions = append(s.step.Transitions, domain.Transition{On: outcome, To: target})
	return s
}

// On sets an arbitrary reaction for outcome.
func (s *StepBuilder) On(outcome domain.StepOutcome, r domain.Reaction) *StepBuilder {
	s.step.Reactions[outcome] = r
	return s
}

// Build returns the underlying domain.Step with defaults applied.
// This is primarily used by the Builder, but exposed for advanced usage.
func (s *StepBuilder) Build() domain.Step {
	return s.build()
}

func (s *StepBuilder) build() domain.Step {
	step := s.step
	step.Transitions = append([]domain.Transition(nil), s.step.Transitions...)
	for o := domain.StepOutcome(0); o < domain.OutcomeCount; o++ {
		if step.Reactions[o] != nil {
			continue
		}
		if o == domain.OutcomeCriticalAbort {
			step.Reactions[o] = domain.Static(domain.CmdCritical)
		} else if o != domain.OutcomeNextStep {
			step.Reactions[o] = domain.Static(domain.CmdDoNothing)
		}
	}
	return step
}
