package ports

import (
	"time"

	"github.com/aretw0/pendant/pkg/protocol"
)

// Link is the UART connection to the coprocessor. All methods must return immediately.
type Link interface {
	// Send writes one encoded frame.
	Send(frame []byte) error

	// Receive returns the next inbound frame assembled by the UART parser, if one is pending.
	Receive() (protocol.Frame, bool)

	// SetWake drives the coprocessor wake line.
	SetWake(asserted bool)
}

// Clock is the time source for step timeouts and caller pacing.
type Clock interface {
	Now() time.Time
	// Sleep pauses the caller between ticks. Steps never call it.
	Sleep(d time.Duration)
}

// Watchdog is fed by the main loop between ticks.
type Watchdog interface {
	Feed()
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep calls time.Sleep.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// NopWatchdog ignores feeds.
type NopWatchdog struct{}

// Feed does nothing.
func (NopWatchdog) Feed() {}
