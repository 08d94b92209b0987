package observability

import (
	"log/slog"

	"github.com/aretw0/pendant/pkg/domain"
)

// LoggingHooks logs every lifecycle event. Step entries and transitions go to Debug; halts go
// to Info, or Warn when the sequence failed.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(e *domain.StepEvent) {
			logger.Debug("step_enter", "sequence", e.Sequence, "step_id", e.StepID, "step", e.StepName)
		},
		OnTransition: func(e *domain.TransitionEvent) {
			logger.Debug("transition", "sequence", e.Sequence, "from", e.From, "to", e.To, "outcome", e.Outcome)
		},
		OnHalt: func(e *domain.HaltEvent) {
			if e.Failure != nil {
				logger.Warn("halt", "sequence", e.Sequence, "step", e.StepName, "result", e.Result, "kind", e.Failure.Kind)
				return
			}
			logger.Info("halt", "sequence", e.Sequence, "step", e.StepName, "result", e.Result)
		},
	}
}
