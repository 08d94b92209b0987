package sim_test

import (
	"testing"

	"github.com/aretw0/pendant/pkg/adapters/sim"
	"github.com/aretw0/pendant/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, c *sim.Coprocessor, cmd byte, payload ...byte) {
	t.Helper()
	frame, err := protocol.EncodeCommand(cmd, payload...)
	require.NoError(t, err)
	require.NoError(t, c.Send(frame))
}

func next(t *testing.T, c *sim.Coprocessor) protocol.Frame {
	t.Helper()
	f, ok := c.Receive()
	require.True(t, ok, "expected a reply")
	assert.Equal(t, protocol.MagicAwaiting, f.Magic)
	return f
}

func TestCoprocessor_WakeOnRisingEdge(t *testing.T) {
	c := sim.New()

	c.SetWake(true)
	c.SetWake(true)
	assert.True(t, next(t, c).Is(protocol.EvtReadyAfterSleep))
	_, ok := c.Receive()
	assert.False(t, ok, "a held line does not wake twice")

	c.SetWake(false)
	c.SetWake(true)
	assert.Equal(t, 2, c.Wakes())
	assert.True(t, next(t, c).Is(protocol.EvtReadyAfterSleep))
}

func TestCoprocessor_StoresCharacteristics(t *testing.T) {
	c := sim.New()

	send(t, c, protocol.CmdBattery, 64)
	assert.True(t, next(t, c).Acknowledges(protocol.CmdBattery))

	v, ok := c.Value(protocol.CmdBattery)
	require.True(t, ok)
	assert.Equal(t, byte(64), v)

	send(t, c, protocol.CmdAlert)
	assert.True(t, next(t, c).Rejects(protocol.CmdAlert), "characteristic pushes need one payload byte")
}

func TestCoprocessor_Broadcast(t *testing.T) {
	c := sim.New(sim.WithPeerReads(2))

	send(t, c, protocol.CmdStartBroadcast)
	assert.True(t, next(t, c).Acknowledges(protocol.CmdStartBroadcast))
	assert.True(t, c.Broadcasting())
	assert.True(t, next(t, c).Is(protocol.EvtPeerRead))
	assert.True(t, next(t, c).Is(protocol.EvtPeerRead))
	assert.True(t, next(t, c).Is(protocol.EvtBroadcastEnded))

	send(t, c, protocol.CmdStopBroadcast)
	assert.True(t, next(t, c).Acknowledges(protocol.CmdStopBroadcast))
	assert.False(t, c.Broadcasting())
}

func TestCoprocessor_Scripts(t *testing.T) {
	t.Run("naks", func(t *testing.T) {
		c := sim.New(sim.WithNaks(protocol.CmdAlert, 1))
		send(t, c, protocol.CmdAlert, 1)
		assert.True(t, next(t, c).Rejects(protocol.CmdAlert))
		send(t, c, protocol.CmdAlert, 1)
		assert.True(t, next(t, c).Acknowledges(protocol.CmdAlert))
	})

	t.Run("boot loop", func(t *testing.T) {
		c := sim.New(sim.WithBootLoop(1))
		c.SetWake(true)
		assert.True(t, next(t, c).Is(protocol.EvtReadyAfterBoot))
		c.SetWake(false)
		c.SetWake(true)
		assert.True(t, next(t, c).Is(protocol.EvtReadyAfterSleep))
	})

	t.Run("silence", func(t *testing.T) {
		c := sim.New(sim.WithSilence())
		c.SetWake(true)
		send(t, c, protocol.CmdSleep)
		_, ok := c.Receive()
		assert.False(t, ok)
		assert.Len(t, c.Sent(), 1)
	})

	t.Run("no broadcast end", func(t *testing.T) {
		c := sim.New(sim.WithBroadcastEnd(false))
		send(t, c, protocol.CmdStartBroadcast)
		next(t, c)
		_, ok := c.Receive()
		assert.False(t, ok)
	})
}

func TestCoprocessor_DropsMalformed(t *testing.T) {
	c := sim.New()
	require.NoError(t, c.Send([]byte{0xA5, 0x10, 0x01, 0x01, 0x00}))
	event, err := protocol.EncodeEvent(protocol.EvtAck, protocol.CmdAlert)
	require.NoError(t, err)
	require.NoError(t, c.Send(event))

	assert.Empty(t, c.Sent())
	_, ok := c.Receive()
	assert.False(t, ok)
}
