package memory_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/aretw0/pendant/pkg/adapters/memory"
	"github.com/aretw0/pendant/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLink_InjectRxAssemblesFrames(t *testing.T) {
	l := memory.NewLink()

	raw := []byte{protocol.MagicAwaiting, protocol.EvtReadyAfterSleep, 0x00, 0xAA ^ protocol.MagicAwaiting ^ protocol.EvtReadyAfterSleep}
	l.InjectRx(raw[:2])
	_, ok := l.Receive()
	assert.False(t, ok, "half a frame is not a frame")

	l.InjectRx(raw[2:])
	f, ok := l.Receive()
	require.True(t, ok)
	assert.True(t, f.Is(protocol.EvtReadyAfterSleep))

	_, ok = l.Receive()
	assert.False(t, ok)
}

func TestLink_TxLogAndWake(t *testing.T) {
	l := memory.NewLink()
	frame, _ := protocol.EncodeCommand(protocol.CmdSleep)

	require.NoError(t, l.Send(frame))
	frame[0] = 0x00
	assert.True(t, bytes.Equal(l.LastTx()[:1], []byte{protocol.MagicCommand}), "log keeps its own copy")
	assert.Len(t, l.TxLog(), 1)

	l.SetWake(true)
	l.SetWake(true)
	l.SetWake(false)
	l.SetWake(true)
	assert.Equal(t, 2, l.Wakes())
	assert.True(t, l.Awake())

	l.SendErr = errors.New("uart busy")
	assert.Error(t, l.Send(frame))
	assert.Len(t, l.TxLog(), 1)
}

func TestLink_RingOverwritesOldest(t *testing.T) {
	l := memory.NewLink()
	for i := 0; i < 70; i++ {
		l.InjectEvent(protocol.EvtAck, byte(i))
	}
	assert.Equal(t, 64, l.Pending())

	f, ok := l.Receive()
	require.True(t, ok)
	assert.Equal(t, byte(6), f.Payload[0])
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := memory.NewManualClock(start)

	c.Sleep(time.Second)
	c.Advance(500 * time.Millisecond)
	assert.Equal(t, start.Add(1500*time.Millisecond), c.Now())
}
