package pendant

import (
	"context"
	"fmt"

	"github.com/aretw0/pendant/internal/runtime"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/observability"
	"github.com/google/uuid"
)

// recorder collects what a report needs from the lifecycle events of one run.
type recorder struct {
	visited []string
	failure *domain.HaltError
}

func (r *recorder) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(e *domain.StepEvent) {
			r.visited = append(r.visited, e.StepName)
		},
		OnHalt: func(e *domain.HaltEvent) {
			r.failure = e.Failure
		},
	}
}

// Run prepares, loads and ticks the named behaviour until it halts, feeding the watchdog and
// sleeping one tick interval between ticks. The returned report carries the terminal result;
// a CriticalError run is not a Go error.
func (d *Device) Run(ctx context.Context, name string) (*domain.Report, error) {
	b, err := d.catalog.Get(name)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.locker != nil {
		unlock, err := d.locker.Lock(ctx, d.id, DefaultLockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock device %s: %w", d.id, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				d.logger.Warn("failed to release device lock", "err", err)
			}
		}()
	}

	rec := &recorder{}
	hooks := rec.hooks().Merge(observability.LoggingHooks(d.logger))
	if d.metrics != nil {
		hooks = hooks.Merge(d.metrics.Hooks())
	}
	hooks = hooks.Merge(d.hooks)

	ctrl := runtime.NewController(
		runtime.WithLogger(d.logger),
		runtime.WithLifecycleHooks(hooks),
		runtime.WithClock(d.clock.Now),
	)

	report := &domain.Report{
		ID:        uuid.NewString(),
		Device:    d.id,
		Behaviour: b.Name(),
		StartedAt: d.clock.Now(),
	}
	d.logger.Info("behaviour started", "behaviour", report.Behaviour, "run", report.ID)

	ctrl.Load(b.Prepare())
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("behaviour %s interrupted after %d ticks: %w", report.Behaviour, report.Ticks, err)
		}
		result := ctrl.Tick()
		report.Ticks++
		d.watchdog.Feed()
		if result.Terminal() {
			report.Result = result
			break
		}
		d.clock.Sleep(d.cfg.Timing.TickInterval)
	}

	report.Visited = rec.visited
	report.Failure = rec.failure
	report.PeerRead = d.env.Shared.PeerRead
	report.Duration = d.clock.Now().Sub(report.StartedAt)
	d.logger.Info("behaviour halted", "behaviour", report.Behaviour, "run", report.ID,
		"result", report.Result, "ticks", report.Ticks)

	if d.metrics != nil {
		d.metrics.ObserveReport(report)
	}
	if d.store != nil {
		if err := d.store.Save(ctx, report); err != nil {
			return report, fmt.Errorf("failed to save report: %w", err)
		}
	}
	return report, nil
}
