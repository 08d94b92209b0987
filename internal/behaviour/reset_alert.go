package behaviour

import (
	"github.com/aretw0/pendant/internal/steps"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/dsl"
	"github.com/aretw0/pendant/pkg/protocol"
)

// ResetAlert step IDs.
const (
	ResetWake domain.StepID = iota
	ResetClear
	ResetSleep
)

// ResetAlert clears the alert characteristic.
type ResetAlert struct {
	*base
}

// NewResetAlert builds the ResetAlert behaviour.
func NewResetAlert(env *steps.Env, opts ...Option) *ResetAlert {
	r := &ResetAlert{base: newBase(NameResetAlert, env, buildOptions(opts))}

	b := dsl.New(NameResetAlert)
	b.Add(ResetWake, "wake", steps.NewWake(env)).
		Next(ResetClear).
		Redo(r.retry("wake"))
	b.Add(ResetClear, "clear_alert", steps.NewPush(env, protocol.CmdAlert,
		func() byte { return protocol.AlertCleared },
		func(v byte) { env.Shared.Alert = v })).
		Next(ResetSleep).
		Redo(r.retry("clear_alert"))
	b.Add(ResetSleep, "sleep", steps.NewSleep(env)).
		Last()

	r.build(b)
	return r
}
