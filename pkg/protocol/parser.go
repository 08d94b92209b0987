package protocol

// parserState is the position of the Parser inside a frame.
type parserState int

const (
	stateMagic parserState = iota
	stateCommand
	stateLength
	statePayload
	stateChecksum
)

// Parser assembles frames from a byte stream. It only accepts frames starting with Magic and
// silently resynchronises on a bad length or checksum. A Parser holds no heap state besides the
// fixed buffer and is not safe for concurrent use.
type Parser struct {
	Magic byte

	state  parserState
	cmd    byte
	length int
	index  int
	buf    [MaxPayloadSize]byte

	// Dropped counts frames discarded for a bad length or checksum.
	Dropped int
}

// NewParser creates a parser for inbound (coprocessor -> host) frames.
func NewParser() *Parser {
	return &Parser{Magic: MagicAwaiting}
}

// Reset drops any partially assembled frame.
func (p *Parser) Reset() {
	p.state = stateMagic
	p.index = 0
}

// Feed consumes one byte. It returns the frame completed by this byte, if any.
func (p *Parser) Feed(b byte) (Frame, bool) {
	switch p.state {
	case stateMagic:
		if b == p.Magic {
			p.state = stateCommand
		}
	case stateCommand:
		p.cmd = b
		p.state = stateLength
	case stateLength:
		if int(b) > MaxPayloadSize {
			p.Dropped++
			p.Reset()
			return Frame{}, false
		}
		p.length = int(b)
		p.index = 0
		if p.length == 0 {
			p.state = stateChecksum
		} else {
			p.state = statePayload
		}
	case statePayload:
		p.buf[p.index] = b
		p.index++
		if p.index == p.length {
			p.state = stateChecksum
		}
	case stateChecksum:
		payload := p.buf[:p.length]
		p.Reset()
		if b != Checksum(p.Magic, p.cmd, payload) {
			p.Dropped++
			return Frame{}, false
		}
		out := make([]byte, len(payload))
		copy(out, payload)
		return Frame{Magic: p.Magic, Command: p.cmd, Payload: out}, true
	}
	return Frame{}, false
}

// Write feeds every byte of data and returns the frames completed along the way.
func (p *Parser) Write(data []byte) []Frame {
	var frames []Frame
	for _, b := range data {
		if f, ok := p.Feed(b); ok {
			frames = append(frames, f)
		}
	}
	return frames
}
