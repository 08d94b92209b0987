// Package sim provides a simulated coprocessor that speaks the UART frame protocol.
//
// Replies are encoded to raw bytes and pushed through a protocol.Parser, so the host sees
// exactly what the UART driver would assemble. Misbehaviour is scripted with options.
package sim

import (
	"log/slog"
	"sync"

	"github.com/aretw0/pendant/internal/logging"
	"github.com/aretw0/pendant/pkg/protocol"
)

// Coprocessor implements ports.Link.
type Coprocessor struct {
	mu     sync.Mutex
	parser *protocol.Parser
	rx     []protocol.Frame
	sent   []protocol.Frame

	line         bool
	wakes        int
	broadcasting bool
	values       map[byte]byte

	naks         map[byte]int
	silent       bool
	bootLoop     int
	peerReads    int
	endBroadcast bool
	logger       *slog.Logger
}

// Option scripts the simulated coprocessor.
type Option func(*Coprocessor)

// WithNaks rejects the first n frames carrying cmd.
func WithNaks(cmd byte, n int) Option {
	return func(c *Coprocessor) {
		c.naks[cmd] = n
	}
}

// WithSilence makes the coprocessor never answer anything.
func WithSilence() Option {
	return func(c *Coprocessor) {
		c.silent = true
	}
}

// WithBootLoop answers the first n wakes with READY_AFTER_BOOT.
func WithBootLoop(n int) Option {
	return func(c *Coprocessor) {
		c.bootLoop = n
	}
}

// WithPeerReads reports n peer reads after every broadcast start.
func WithPeerReads(n int) Option {
	return func(c *Coprocessor) {
		c.peerReads = n
	}
}

// WithBroadcastEnd controls whether the coprocessor reports the end of a broadcast.
// When disabled the host must rely on its own window.
func WithBroadcastEnd(enabled bool) Option {
	return func(c *Coprocessor) {
		c.endBroadcast = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coprocessor) {
		c.logger = logger
	}
}

// New creates a well-behaved coprocessor unless options say otherwise.
func New(opts ...Option) *Coprocessor {
	c := &Coprocessor{
		parser:       protocol.NewParser(),
		values:       make(map[byte]byte),
		naks:         make(map[byte]int),
		endBroadcast: true,
		logger:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send receives one host frame and queues the reply.
func (c *Coprocessor) Send(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := protocol.Decode(frame)
	if err != nil {
		c.logger.Warn("sim dropped malformed frame", "err", err, "raw", frame)
		return nil
	}
	if f.Magic != protocol.MagicCommand {
		c.logger.Warn("sim dropped frame with wrong magic", "frame", f)
		return nil
	}
	c.sent = append(c.sent, f)
	c.logger.Debug("sim received", "frame", f)

	if c.silent {
		return nil
	}
	if c.naks[f.Command] > 0 {
		c.naks[f.Command]--
		c.reply(protocol.EvtNak, f.Command)
		return nil
	}

	switch f.Command {
	case protocol.CmdAlert, protocol.CmdBattery, protocol.CmdError:
		if len(f.Payload) != 1 {
			c.reply(protocol.EvtNak, f.Command)
			return nil
		}
		c.values[f.Command] = f.Payload[0]
		c.reply(protocol.EvtAck, f.Command)
	case protocol.CmdStartBroadcast:
		c.broadcasting = true
		c.reply(protocol.EvtAck, f.Command)
		for i := 0; i < c.peerReads; i++ {
			c.reply(protocol.EvtPeerRead)
		}
		if c.endBroadcast {
			c.reply(protocol.EvtBroadcastEnded)
		}
	case protocol.CmdStopBroadcast:
		c.broadcasting = false
		c.reply(protocol.EvtAck, f.Command)
	case protocol.CmdSleep:
		c.reply(protocol.EvtAck, f.Command)
	default:
		c.reply(protocol.EvtNak, f.Command)
	}
	return nil
}

// Receive pops the next reply.
func (c *Coprocessor) Receive() (protocol.Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.rx) == 0 {
		return protocol.Frame{}, false
	}
	f := c.rx[0]
	c.rx = c.rx[1:]
	return f, true
}

// SetWake answers a rising edge with a ready event.
func (c *Coprocessor) SetWake(asserted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rising := asserted && !c.line
	c.line = asserted
	if !rising {
		return
	}
	c.wakes++
	if c.silent {
		return
	}
	if c.bootLoop > 0 {
		c.bootLoop--
		c.reply(protocol.EvtReadyAfterBoot)
		return
	}
	c.reply(protocol.EvtReadyAfterSleep)
}

func (c *Coprocessor) reply(cmd byte, payload ...byte) {
	raw, err := protocol.EncodeEvent(cmd, payload...)
	if err != nil {
		c.logger.Error("sim cannot encode reply", "cmd", protocol.CommandName(cmd), "err", err)
		return
	}
	c.rx = append(c.rx, c.parser.Write(raw)...)
}

// Sent returns the host frames received so far.
func (c *Coprocessor) Sent() []protocol.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]protocol.Frame(nil), c.sent...)
}

// Value returns the characteristic last stored by cmd.
func (c *Coprocessor) Value(cmd byte) (byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[cmd]
	return v, ok
}

// Wakes counts rising edges of the wake line.
func (c *Coprocessor) Wakes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wakes
}

// Broadcasting reports whether the simulated radio is advertising.
func (c *Coprocessor) Broadcasting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.broadcasting
}
