package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownBehaviour is returned when a behaviour name is not in the catalog.
var ErrUnknownBehaviour = errors.New("unknown behaviour")

// ErrReportNotFound is returned when a run report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// ErrNoTable is reported when the controller is ticked before any table was loaded.
var ErrNoTable = errors.New("no sequence table loaded")

// FailureKind classifies why a behaviour stopped making progress.
type FailureKind string

const (
	FailureProtocolNak         FailureKind = "protocol_nak"
	FailureProtocolTimeout     FailureKind = "protocol_timeout"
	FailureMalformedTransition FailureKind = "malformed_transition"
	FailureExhaustedRetries    FailureKind = "exhausted_retries"
	FailureCriticalAbort       FailureKind = "critical_abort"
)

// HaltError describes where a behaviour ended in CriticalError. It travels inside reports and
// lifecycle events; the controller itself only ever returns a Result.
type HaltError struct {
	Behaviour string      `json:"behaviour"`
	Step      string      `json:"step"`
	Kind      FailureKind `json:"kind"`
	Detail    string      `json:"detail,omitempty"`
}

func (e *HaltError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s halted at %s (%s): %s", e.Behaviour, e.Step, e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s halted at %s (%s)", e.Behaviour, e.Step, e.Kind)
}
