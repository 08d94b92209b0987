package memory

import (
	"sync"

	"github.com/aretw0/pendant/pkg/protocol"
)

const ringCapacity = 64

// Link implements ports.Link as an in-memory UART. Raw bytes injected with InjectRx pass through
// a protocol.Parser, exactly like bytes arriving on the real UART; frames written with Send are
// kept in a transmit log.
type Link struct {
	mu     sync.Mutex
	parser *protocol.Parser
	rx     ring
	tx     [][]byte
	wake   bool
	wakes  int

	// SendErr, when set, is returned by Send instead of logging the frame.
	SendErr error
}

// NewLink creates an empty loopback link.
func NewLink() *Link {
	return &Link{parser: protocol.NewParser()}
}

// Send records the frame in the transmit log.
func (l *Link) Send(frame []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.SendErr != nil {
		return l.SendErr
	}
	l.tx = append(l.tx, append([]byte(nil), frame...))
	return nil
}

// Receive pops the oldest assembled inbound frame.
func (l *Link) Receive() (protocol.Frame, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rx.pop()
}

// SetWake records the wake line level. Rising edges are counted.
func (l *Link) SetWake(asserted bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if asserted && !l.wake {
		l.wakes++
	}
	l.wake = asserted
}

// InjectRx feeds raw UART bytes through the parser.
func (l *Link) InjectRx(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.parser.Write(data) {
		l.rx.push(f)
	}
}

// InjectEvent encodes and injects a coprocessor frame.
func (l *Link) InjectEvent(cmd byte, payload ...byte) {
	data, err := protocol.EncodeEvent(cmd, payload...)
	if err != nil {
		panic(err)
	}
	l.InjectRx(data)
}

// TxLog returns a copy of every frame sent so far.
func (l *Link) TxLog() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]byte, len(l.tx))
	for i, f := range l.tx {
		out[i] = append([]byte(nil), f...)
	}
	return out
}

// LastTx returns the most recent frame sent, or nil.
func (l *Link) LastTx() []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.tx) == 0 {
		return nil
	}
	return append([]byte(nil), l.tx[len(l.tx)-1]...)
}

// Awake reports the wake line level.
func (l *Link) Awake() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.wake
}

// Wakes returns how many times the wake line was asserted.
func (l *Link) Wakes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.wakes
}

// Pending returns the number of frames waiting in the receive ring.
func (l *Link) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rx.count
}

// ring is a fixed-capacity FIFO; when full the oldest frame is overwritten to keep memory bounded.
type ring struct {
	data       [ringCapacity]protocol.Frame
	head, tail int // head = next pop, tail = next push
	count      int
}

func (r *ring) push(f protocol.Frame) {
	if r.count == ringCapacity {
		r.head = (r.head + 1) % ringCapacity
		r.count--
	}
	r.data[r.tail] = f
	r.tail = (r.tail + 1) % ringCapacity
	r.count++
}

func (r *ring) pop() (protocol.Frame, bool) {
	if r.count == 0 {
		return protocol.Frame{}, false
	}
	f := r.data[r.head]
	r.data[r.head] = protocol.Frame{}
	r.head = (r.head + 1) % ringCapacity
	r.count--
	return f, true
}
