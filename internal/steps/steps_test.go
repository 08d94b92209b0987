package steps_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aretw0/pendant/internal/steps"
	"github.com/aretw0/pendant/pkg/adapters/memory"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv() (*steps.Env, *memory.Link, *memory.ManualClock) {
	link := memory.NewLink()
	clock := memory.NewManualClock(time.Unix(0, 0))
	return steps.NewEnv(link, clock, steps.DefaultTiming(), nil), link, clock
}

func TestWake_ReadyAfterSleep(t *testing.T) {
	env, link, _ := newEnv()
	w := steps.NewWake(env)

	assert.Equal(t, domain.OutcomeNothing, w.Run(true))
	assert.True(t, link.Awake())

	link.InjectEvent(protocol.EvtReadyAfterSleep)
	assert.Equal(t, domain.OutcomeNothing, w.Run(false), "ready is latched, line released next tick")
	assert.True(t, link.Awake())

	assert.Equal(t, domain.OutcomeNextStep, w.Run(false))
	assert.False(t, link.Awake())
	assert.Empty(t, link.TxLog(), "waking sends nothing over UART")
}

func TestWake_ReadyAfterBoot(t *testing.T) {
	env, link, _ := newEnv()
	w := steps.NewWake(env)

	w.Run(true)
	link.InjectEvent(protocol.EvtReadyAfterBoot)
	assert.Equal(t, domain.OutcomeRedo, w.Run(false))
	assert.False(t, link.Awake())

	w.Run(true)
	assert.Equal(t, 2, link.Wakes())
}

func TestWake_Timeout(t *testing.T) {
	env, link, clock := newEnv()
	w := steps.NewWake(env)

	w.Run(true)
	clock.Advance(4 * time.Second)
	assert.Equal(t, domain.OutcomeNothing, w.Run(false))
	clock.Advance(time.Second)
	assert.Equal(t, domain.OutcomeRedo, w.Run(false))
	assert.False(t, link.Awake())
}

func TestWake_IgnoresUnrelatedFrames(t *testing.T) {
	env, link, _ := newEnv()
	w := steps.NewWake(env)

	w.Run(true)
	link.InjectEvent(protocol.EvtPeerRead)
	assert.Equal(t, domain.OutcomeNothing, w.Run(false))
	assert.Zero(t, link.Pending())
}

func TestPush_AckStoresValue(t *testing.T) {
	env, link, _ := newEnv()
	env.Shared.Alert = protocol.AlertActive
	var stored []byte
	push := steps.NewPush(env, protocol.CmdAlert,
		func() byte { return env.Shared.Alert },
		func(v byte) { stored = append(stored, v) })

	assert.Equal(t, domain.OutcomeNothing, push.Run(true))
	assert.Equal(t, []byte{0xA5, 0x10, 0x01, 0x01, 0xAA ^ 0xA5 ^ 0x10 ^ 0x01 ^ 0x01}, link.LastTx())

	assert.Equal(t, domain.OutcomeNothing, push.Run(false), "no reply yet")
	assert.Empty(t, stored)

	link.InjectEvent(protocol.EvtAck, protocol.CmdAlert)
	assert.Equal(t, domain.OutcomeNextStep, push.Run(false))
	assert.Equal(t, []byte{protocol.AlertActive}, stored)
}

func TestExchange_AckForOtherCommandIgnored(t *testing.T) {
	env, link, _ := newEnv()
	ex := steps.NewStartBroadcast(env)

	ex.Run(true)
	link.InjectEvent(protocol.EvtAck, protocol.CmdStopBroadcast)
	assert.Equal(t, domain.OutcomeNothing, ex.Run(false))
	assert.False(t, env.Shared.Broadcasting)

	link.InjectEvent(protocol.EvtAck, protocol.CmdStartBroadcast)
	assert.Equal(t, domain.OutcomeNextStep, ex.Run(false))
	assert.True(t, env.Shared.Broadcasting)
}

func TestExchange_RetryPolicy(t *testing.T) {
	t.Run("nak", func(t *testing.T) {
		env, link, _ := newEnv()
		ex := steps.NewStopBroadcast(env)
		ex.Run(true)
		link.InjectEvent(protocol.EvtNak, protocol.CmdStopBroadcast)
		assert.Equal(t, domain.OutcomeRedo, ex.Run(false))
	})

	t.Run("timeout", func(t *testing.T) {
		env, _, clock := newEnv()
		ex := steps.NewStopBroadcast(env)
		ex.Run(true)
		clock.Advance(env.Timing.AckTimeout)
		assert.Equal(t, domain.OutcomeRedo, ex.Run(false))
	})

	t.Run("send error", func(t *testing.T) {
		env, link, _ := newEnv()
		link.SendErr = errors.New("uart busy")
		ex := steps.NewStartBroadcast(env)
		assert.Equal(t, domain.OutcomeNothing, ex.Run(true))
		assert.Equal(t, domain.OutcomeRedo, ex.Run(false), "reported as a timeout on the next tick")
	})

	t.Run("reboot", func(t *testing.T) {
		env, link, _ := newEnv()
		ex := steps.NewStartBroadcast(env)
		ex.Run(true)
		link.InjectEvent(protocol.EvtReadyAfterBoot)
		assert.Equal(t, domain.OutcomeCriticalAbort, ex.Run(false))
	})
}

func TestSleep_IgnoresNakAndAbortsOnTimeout(t *testing.T) {
	env, link, clock := newEnv()
	sleep := steps.NewSleep(env)

	sleep.Run(true)
	assert.Equal(t, []byte{0xA5, 0x30, 0x00, 0xAA ^ 0xA5 ^ 0x30}, link.LastTx())

	link.InjectEvent(protocol.EvtNak, protocol.CmdSleep)
	assert.Equal(t, domain.OutcomeNothing, sleep.Run(false))

	clock.Advance(env.Timing.AckTimeout)
	assert.Equal(t, domain.OutcomeCriticalAbort, sleep.Run(false))
}

func TestSleep_SendErrorAbortsWithoutRedo(t *testing.T) {
	env, link, _ := newEnv()
	link.SendErr = errors.New("uart busy")
	sleep := steps.NewSleep(env)

	assert.Equal(t, domain.OutcomeNothing, sleep.Run(true))
	assert.Equal(t, domain.OutcomeCriticalAbort, sleep.Run(false))
}

func TestBroadcastWait(t *testing.T) {
	cases := []struct {
		name   string
		inject func(*memory.Link, *memory.ManualClock, steps.Timing)
		want   domain.StepOutcome
	}{
		{
			name:   "peer read",
			inject: func(l *memory.Link, _ *memory.ManualClock, _ steps.Timing) { l.InjectEvent(protocol.EvtPeerRead) },
			want:   steps.OutcomePeerRead,
		},
		{
			name:   "broadcast ended",
			inject: func(l *memory.Link, _ *memory.ManualClock, _ steps.Timing) { l.InjectEvent(protocol.EvtBroadcastEnded) },
			want:   steps.OutcomeBroadcastEnded,
		},
		{
			name:   "window elapsed",
			inject: func(_ *memory.Link, c *memory.ManualClock, tm steps.Timing) { c.Advance(tm.BroadcastWindow) },
			want:   steps.OutcomeWindowElapsed,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env, link, clock := newEnv()
			wait := steps.NewBroadcastWait(env)
			require.Equal(t, domain.OutcomeNothing, wait.Run(true))
			require.Equal(t, domain.OutcomeNothing, wait.Run(false))

			tc.inject(link, clock, env.Timing)
			assert.Equal(t, tc.want, wait.Run(false))
		})
	}
}

func TestSettle(t *testing.T) {
	env, _, clock := newEnv()
	s := steps.NewSettle(env)

	assert.Equal(t, domain.OutcomeNothing, s.Run(true))
	clock.Advance(env.Timing.SettleDelay / 2)
	assert.Equal(t, domain.OutcomeNothing, s.Run(false))
	clock.Advance(env.Timing.SettleDelay / 2)
	assert.Equal(t, domain.OutcomeNextStep, s.Run(false))
}

func TestShared_ResetKeepsCharacteristics(t *testing.T) {
	s := &steps.Shared{Characteristics: steps.Characteristics{Alert: 1, Battery: 80, Error: 3}, PeerRead: true, Broadcasting: true}
	s.Reset()
	assert.Equal(t, steps.Characteristics{Alert: 1, Battery: 80, Error: 3}, s.Characteristics)
	assert.False(t, s.PeerRead)
	assert.False(t, s.Broadcasting)
}
