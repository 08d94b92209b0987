package behaviour

import (
	"log/slog"

	"github.com/aretw0/pendant/pkg/domain"
)

// Retry bounds how many times one step purpose may be redone.
type Retry struct {
	purpose string
	ceiling int
	count   int
	logger  *slog.Logger
}

// NewRetry creates a counter. A ceiling below 1 falls back to domain.DefaultRetryCeiling.
func NewRetry(purpose string, ceiling int, logger *slog.Logger) *Retry {
	if ceiling < 1 {
		ceiling = domain.DefaultRetryCeiling
	}
	return &Retry{purpose: purpose, ceiling: ceiling, logger: logger}
}

// Redo is the Redo reaction: ReloadStep for the first ceiling-1 occurrences, Critical after.
func (r *Retry) Redo() domain.Command {
	r.count++
	if r.count < r.ceiling {
		if r.logger != nil {
			r.logger.Debug("retrying step", "purpose", r.purpose, "attempt", r.count, "ceiling", r.ceiling)
		}
		return domain.CmdReloadStep
	}
	if r.logger != nil {
		r.logger.Warn("retries exhausted", "purpose", r.purpose, "ceiling", r.ceiling)
	}
	return domain.CmdCritical
}

// Reset zeroes the counter.
func (r *Retry) Reset() { r.count = 0 }

// Count returns the number of Redo occurrences since the last Reset.
func (r *Retry) Count() int { return r.count }
