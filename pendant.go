package pendant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/pendant/internal/behaviour"
	"github.com/aretw0/pendant/internal/logging"
	"github.com/aretw0/pendant/internal/steps"
	"github.com/aretw0/pendant/pkg/config"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/observability"
	"github.com/aretw0/pendant/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed process can keep a device locked.
const DefaultLockTTL = 5 * time.Minute

// Characteristics are the values held for the coprocessor's GATT server.
type Characteristics = steps.Characteristics

// Device is the high-level entry point: one coprocessor link plus its behaviours.
// Runs on one Device are serialised.
type Device struct {
	mu sync.Mutex

	link     ports.Link
	clock    ports.Clock
	watchdog ports.Watchdog
	store    ports.ReportStore
	locker   ports.DistributedLocker
	metrics  *observability.Metrics
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	cfg      *config.Config
	id       string

	env     *steps.Env
	catalog *behaviour.Catalog
}

// Option defines a functional option for configuring the Device.
type Option func(*Device)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Device) {
		d.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Device) {
		d.logger = logger
	}
}

// WithClock sets the time source for step timeouts and the pause between ticks.
func WithClock(clock ports.Clock) Option {
	return func(d *Device) {
		d.clock = clock
	}
}

// WithWatchdog sets the watchdog fed after every tick.
func WithWatchdog(w ports.Watchdog) Option {
	return func(d *Device) {
		d.watchdog = w
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg *config.Config) Option {
	return func(d *Device) {
		d.cfg = cfg
	}
}

// WithStore persists a report after every run.
func WithStore(store ports.ReportStore) Option {
	return func(d *Device) {
		d.store = store
	}
}

// WithLocker takes a lock keyed by the device ID for the duration of every run.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(d *Device) {
		d.locker = locker
	}
}

// WithMetrics records lifecycle events and run durations.
func WithMetrics(m *observability.Metrics) Option {
	return func(d *Device) {
		d.metrics = m
	}
}

// WithDeviceID overrides device.id from the configuration.
func WithDeviceID(id string) Option {
	return func(d *Device) {
		d.id = id
	}
}

// New initializes a Device on link.
func New(link ports.Link, opts ...Option) (*Device, error) {
	if link == nil {
		return nil, fmt.Errorf("link is required")
	}

	d := &Device{link: link}
	for _, opt := range opts {
		opt(d)
	}

	if d.cfg == nil {
		d.cfg = config.Default()
	}
	if err := d.cfg.Validate(); err != nil {
		return nil, err
	}
	if d.id == "" {
		d.id = d.cfg.Device.ID
	}
	if d.clock == nil {
		d.clock = ports.SystemClock{}
	}
	if d.watchdog == nil {
		d.watchdog = ports.NopWatchdog{}
	}
	if d.logger == nil {
		d.logger = logging.NewNop()
	}
	d.logger = d.logger.With("device", d.id)

	t := d.cfg.Timing
	d.env = steps.NewEnv(link, d.clock, steps.Timing{
		AckTimeout:      t.AckTimeout,
		WakeTimeout:     t.WakeTimeout,
		BroadcastWindow: t.BroadcastWindow,
		SettleDelay:     t.SettleDelay,
	}, d.logger)
	c := d.cfg.Characteristics
	d.env.Shared.Characteristics = Characteristics{Alert: byte(c.Alert), Battery: byte(c.Battery), Error: byte(c.Error)}

	d.catalog = behaviour.NewCatalog(d.env, behaviour.WithRetryCeiling(d.cfg.RetryCeiling))
	return d, nil
}

// ID returns the device ID used for locks and reports.
func (d *Device) ID() string { return d.id }

// Behaviours lists the behaviour names Run accepts.
func (d *Device) Behaviours() []string {
	return d.catalog.Names()
}

// Table returns the sequence table of a behaviour for inspection.
func (d *Device) Table(name string) (*domain.SequenceTable, error) {
	b, err := d.catalog.Get(name)
	if err != nil {
		return nil, err
	}
	return b.Table(), nil
}

// Characteristics returns the values currently held for the coprocessor.
func (d *Device) Characteristics() Characteristics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.env.Shared.Characteristics
}

// SetCharacteristics replaces the values pushed by SetAllCharacteristics.
func (d *Device) SetCharacteristics(c Characteristics) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.env.Shared.Characteristics = c
}

// Report loads a stored run report.
func (d *Device) Report(ctx context.Context, id string) (*domain.Report, error) {
	if d.store == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, id)
	}
	return d.store.Load(ctx, id)
}

// Reports lists stored report IDs, most recent first.
func (d *Device) Reports(ctx context.Context) ([]string, error) {
	if d.store == nil {
		return nil, nil
	}
	return d.store.List(ctx)
}
