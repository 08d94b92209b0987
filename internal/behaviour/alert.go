package behaviour

import (
	"github.com/aretw0/pendant/internal/steps"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/dsl"
	"github.com/aretw0/pendant/pkg/protocol"
)

// Alert step IDs.
const (
	AlertWake domain.StepID = iota
	AlertPush
	AlertStartBroadcast
	AlertWait
	AlertStopBroadcast
	AlertSleep
)

// Alert raises the alert characteristic and broadcasts it until a peer reads it or the window
// closes.
type Alert struct {
	*base
}

// NewAlert builds the Alert behaviour.
func NewAlert(env *steps.Env, opts ...Option) *Alert {
	a := &Alert{base: newBase(NameAlert, env, buildOptions(opts))}

	b := dsl.New(NameAlert)
	b.Add(AlertWake, "wake", steps.NewWake(env)).
		Next(AlertPush).
		Redo(a.retry("wake"))
	b.Add(AlertPush, "push_alert", steps.NewPush(env, protocol.CmdAlert,
		func() byte { return protocol.AlertActive },
		func(v byte) { env.Shared.Alert = v })).
		Next(AlertStartBroadcast).
		Redo(a.retry("push_alert"))
	b.Add(AlertStartBroadcast, "start_broadcast", steps.NewStartBroadcast(env)).
		Next(AlertWait).
		Redo(a.retry("start_broadcast"))
	b.Add(AlertWait, "wait_broadcast", steps.NewBroadcastWait(env)).
		Next(AlertStopBroadcast).
		On(steps.OutcomePeerRead, func() domain.Command {
			env.Shared.PeerRead = true
			return domain.CmdDoNothing
		}).
		Goto(steps.OutcomeBroadcastEnded, AlertStopBroadcast).
		Goto(steps.OutcomeWindowElapsed, AlertStopBroadcast)
	b.Add(AlertStopBroadcast, "stop_broadcast", steps.NewStopBroadcast(env)).
		Next(AlertSleep).
		Redo(a.retry("stop_broadcast"))
	b.Add(AlertSleep, "sleep", steps.NewSleep(env)).
		Last()

	a.build(b)
	return a
}
