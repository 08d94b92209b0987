package steps

import (
	"log/slog"
	"time"

	"github.com/aretw0/pendant/internal/logging"
	"github.com/aretw0/pendant/pkg/ports"
	"github.com/aretw0/pendant/pkg/protocol"
)

// Timing holds the step-owned timeouts.
type Timing struct {
	AckTimeout      time.Duration
	WakeTimeout     time.Duration
	BroadcastWindow time.Duration
	SettleDelay     time.Duration
}

// DefaultTiming returns the coprocessor's documented timeouts.
func DefaultTiming() Timing {
	return Timing{
		AckTimeout:      protocol.AckTimeout * time.Millisecond,
		WakeTimeout:     protocol.WakeTimeout * time.Millisecond,
		BroadcastWindow: protocol.BroadcastWindow * time.Millisecond,
		SettleDelay:     protocol.SettleDelay * time.Millisecond,
	}
}

// Characteristics are the values exposed by the coprocessor's GATT server.
type Characteristics struct {
	Alert   byte `json:"alert"`
	Battery byte `json:"battery"`
	Error   byte `json:"error"`
}

// Shared is the protocol state mutated by steps and reactions. There is one per device.
type Shared struct {
	Characteristics

	// PeerRead records that a remote peer read the payload during the last broadcast.
	PeerRead bool
	// Broadcasting mirrors the coprocessor's advertising state as last acknowledged.
	Broadcasting bool
}

// Reset clears the per-run transmission state. Characteristic values are device data and survive.
func (s *Shared) Reset() {
	s.PeerRead = false
	s.Broadcasting = false
}

// Env carries what every step needs. It is shared by all steps of all behaviours of one device.
type Env struct {
	Link   ports.Link
	Clock  ports.Clock
	Shared *Shared
	Timing Timing
	Logger *slog.Logger
}

// NewEnv fills defaults for the optional fields.
func NewEnv(link ports.Link, clock ports.Clock, timing Timing, logger *slog.Logger) *Env {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Env{
		Link:   link,
		Clock:  clock,
		Shared: &Shared{},
		Timing: timing,
		Logger: logger,
	}
}

// deadline is a one-shot timeout measured on the env clock.
type deadline struct {
	at time.Time
}

func (d *deadline) arm(clock ports.Clock, after time.Duration) {
	d.at = clock.Now().Add(after)
}

func (d *deadline) expired(clock ports.Clock) bool {
	return !clock.Now().Before(d.at)
}
