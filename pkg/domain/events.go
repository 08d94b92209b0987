package domain

import (
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter  EventType = "step_enter"
	EventTransition EventType = "transition"
	EventHalt       EventType = "halt"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Sequence  string    `json:"sequence"`
}

// StepEvent is emitted when a step runs with init set (first tick after a load or reload).
type StepEvent struct {
	EventBase
	StepID   StepID `json:"step_id"`
	StepName string `json:"step_name"`
}

// TransitionEvent is emitted when a reaction moves the sequence to another step.
type TransitionEvent struct {
	EventBase
	From    StepID      `json:"from"`
	To      StepID      `json:"to"`
	Outcome StepOutcome `json:"outcome"`
}

// HaltEvent is emitted once when a sequence reaches Finished or CriticalError.
type HaltEvent struct {
	EventBase
	StepID   StepID      `json:"step_id"`
	StepName string      `json:"step_name"`
	Outcome  StepOutcome `json:"outcome"`
	Result   Result      `json:"result"`
	Failure  *HaltError  `json:"failure,omitempty"`
}

// LifecycleHooks defines callbacks for controller observability.
// Hooks run synchronously inside Tick and must not block.
type LifecycleHooks struct {
	OnStepEnter  func(*StepEvent)
	OnTransition func(*TransitionEvent)
	OnHalt       func(*HaltEvent)
}

// Merge returns hooks that call h first and then other, for each callback set on either.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStepEnter:  chain(h.OnStepEnter, other.OnStepEnter),
		OnTransition: chain(h.OnTransition, other.OnTransition),
		OnHalt:       chain(h.OnHalt, other.OnHalt),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
