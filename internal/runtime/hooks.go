package runtime

import (
	"github.com/aretw0/pendant/pkg/domain"
)

func (c *Controller) base(t *domain.SequenceTable, typ domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: c.now(),
		Type:      typ,
		Sequence:  t.Name,
	}
}

func (c *Controller) emitStepEnter(t *domain.SequenceTable, step *domain.Step) {
	if c.hooks.OnStepEnter == nil {
		return
	}
	c.hooks.OnStepEnter(&domain.StepEvent{
		EventBase: c.base(t, domain.EventStepEnter),
		StepID:    t.Current,
		StepName:  step.Name,
	})
}

func (c *Controller) emitTransition(t *domain.SequenceTable, from, to domain.StepID, outcome domain.StepOutcome) {
	if c.hooks.OnTransition == nil {
		return
	}
	c.hooks.OnTransition(&domain.TransitionEvent{
		EventBase: c.base(t, domain.EventTransition),
		From:      from,
		To:        to,
		Outcome:   outcome,
	})
}

func (c *Controller) emitHalt(t *domain.SequenceTable, stepName string, outcome domain.StepOutcome, result domain.Result, failure *domain.HaltError) {
	if c.hooks.OnHalt == nil {
		return
	}
	c.hooks.OnHalt(&domain.HaltEvent{
		EventBase: c.base(t, domain.EventHalt),
		StepID:    t.Current,
		StepName:  stepName,
		Outcome:   outcome,
		Result:    result,
		Failure:   failure,
	})
}
