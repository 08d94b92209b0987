package runtime

import (
	"github.com/aretw0/pendant/pkg/domain"
)

// dispatch applies the command returned by a reaction to the table.
func (c *Controller) dispatch(t *domain.SequenceTable, step *domain.Step, outcome domain.StepOutcome, cmd domain.Command) domain.Result {
	switch cmd.Kind {
	case domain.CommandDoNothing:
		return domain.ResultOngoing

	case domain.CommandReloadStep:
		t.Fresh = true
		c.logger.Debug("step reload", "sequence", t.Name, "step", step.Name, "outcome", outcome)
		return domain.ResultOngoing

	case domain.CommandLoadNextStep:
		if cmd.Target == domain.Undefined {
			return c.halt(t, step, outcome, domain.ResultCriticalError,
				&domain.HaltError{Kind: domain.FailureMalformedTransition, Detail: "transition to undefined step"})
		}
		if _, ok := t.Lookup(cmd.Target); !ok {
			return c.halt(t, step, outcome, domain.ResultCriticalError,
				&domain.HaltError{Kind: domain.FailureMalformedTransition, Detail: "transition to missing step " + cmd.Target.String()})
		}
		from := t.Current
		t.Current = cmd.Target
		t.Fresh = true
		c.emitTransition(t, from, cmd.Target, outcome)
		return domain.ResultOngoingLoadNext

	case domain.CommandFinished:
		return c.halt(t, step, outcome, domain.ResultFinished, nil)

	case domain.CommandCritical:
		kind := domain.FailureCriticalAbort
		if outcome == domain.OutcomeRedo {
			kind = domain.FailureExhaustedRetries
		}
		return c.halt(t, step, outcome, domain.ResultCriticalError, &domain.HaltError{Kind: kind})

	default:
		return c.halt(t, step, outcome, domain.ResultCriticalError,
			&domain.HaltError{Kind: domain.FailureMalformedTransition, Detail: "unknown command " + cmd.Kind.String()})
	}
}

// halt latches a terminal result on the table and reports it once through the hooks.
func (c *Controller) halt(t *domain.SequenceTable, step *domain.Step, outcome domain.StepOutcome, result domain.Result, failure *domain.HaltError) domain.Result {
	t.Halted = true
	t.Halt = result

	name := ""
	if step != nil {
		name = step.Name
	}
	if failure != nil {
		failure.Behaviour = t.Name
		failure.Step = name
		c.logger.Debug("sequence halted", "sequence", t.Name, "step", name, "result", result, "err", failure)
	} else {
		c.logger.Debug("sequence halted", "sequence", t.Name, "step", name, "result", result)
	}

	c.emitHalt(t, name, outcome, result, failure)
	return result
}
