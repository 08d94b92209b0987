package behaviour

import (
	"github.com/aretw0/pendant/internal/steps"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/dsl"
)

// BroadcastOnly step IDs.
const (
	BroadcastWake domain.StepID = iota
	BroadcastStart
	BroadcastWait
	BroadcastStop
	BroadcastSleep
)

// BroadcastOnly advertises the current characteristics without changing them.
// The first peer read ends the broadcast.
type BroadcastOnly struct {
	*base
}

// NewBroadcastOnly builds the BroadcastOnly behaviour.
func NewBroadcastOnly(env *steps.Env, opts ...Option) *BroadcastOnly {
	bo := &BroadcastOnly{base: newBase(NameBroadcastOnly, env, buildOptions(opts))}

	b := dsl.New(NameBroadcastOnly)
	b.Add(BroadcastWake, "wake", steps.NewWake(env)).
		Next(BroadcastStart).
		Redo(bo.retry("wake"))
	b.Add(BroadcastStart, "start_broadcast", steps.NewStartBroadcast(env)).
		Next(BroadcastWait).
		Redo(bo.retry("start_broadcast"))
	b.Add(BroadcastWait, "wait_broadcast", steps.NewBroadcastWait(env)).
		Next(BroadcastStop).
		GotoAfter(steps.OutcomePeerRead, BroadcastStop, func() { env.Shared.PeerRead = true }).
		Goto(steps.OutcomeBroadcastEnded, BroadcastStop).
		Goto(steps.OutcomeWindowElapsed, BroadcastStop)
	b.Add(BroadcastStop, "stop_broadcast", steps.NewStopBroadcast(env)).
		Next(BroadcastSleep).
		Redo(bo.retry("stop_broadcast"))
	b.Add(BroadcastSleep, "sleep", steps.NewSleep(env)).
		Last()

	bo.build(b)
	return bo
}
