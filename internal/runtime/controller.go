package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/pendant/internal/logging"
	"github.com/aretw0/pendant/pkg/domain"
)

// Controller advances one active SequenceTable by exactly one unit of work per Tick.
// It is not safe for concurrent use; exactly one goroutine (the main loop) drives it.
type Controller struct {
	table  *domain.SequenceTable
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Controller.
type Option func(*Controller)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithLogger sets the structured logger used for debug tracing of ticks.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the time source used to stamp lifecycle events.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates a controller with no table loaded.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load makes table the active sequence and rewinds it to its initial step.
// Whatever sequence was active before is dropped without notice. No validation is done here:
// a malformed table surfaces as CriticalError on the first Tick.
func (c *Controller) Load(table *domain.SequenceTable) {
	c.table = table
	if table == nil {
		return
	}
	table.Current = table.Initial
	table.Fresh = true
	table.Halted = false
	table.Halt = domain.ResultOngoing
	c.logger.Debug("sequence loaded", "sequence", table.Name, "initial", table.Initial)
}

// Active returns the loaded table, or nil.
func (c *Controller) Active() *domain.SequenceTable {
	return c.table
}

// Tick runs the current step once, dispatches its reaction and reports the result.
// After a terminal result the table stays halted: further ticks return the same result
// without running any step until the next Load.
func (c *Controller) Tick() domain.Result {
	t := c.table
	if t == nil {
		c.logger.Debug("tick without table", "err", domain.ErrNoTable)
		return domain.ResultCriticalError
	}
	if t.Halted {
		return t.Halt
	}

	step, ok := t.Lookup(t.Current)
	if !ok || step.Body == nil {
		return c.halt(t, nil, domain.OutcomeNothing, domain.ResultCriticalError,
			&domain.HaltError{Kind: domain.FailureMalformedTransition, Detail: "current step does not exist"})
	}

	init := t.Fresh
	if init {
		c.emitStepEnter(t, step)
	}
	outcome := step.Body.Run(init)
	t.Fresh = false

	if !outcome.Valid() {
		return c.halt(t, step, outcome, domain.ResultCriticalError,
			&domain.HaltError{Kind: domain.FailureMalformedTransition, Detail: "unknown outcome " + outcome.String()})
	}

	reaction := step.Reactions[outcome]
	if reaction == nil {
		return c.halt(t, step, outcome, domain.ResultCriticalError,
			&domain.HaltError{Kind: domain.FailureMalformedTransition, Detail: "no reaction for " + outcome.String()})
	}

	return c.dispatch(t, step, outcome, reaction())
}
