package behaviour

import (
	"github.com/aretw0/pendant/internal/steps"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/dsl"
	"github.com/aretw0/pendant/pkg/protocol"
)

// SetAllCharacteristics step IDs.
const (
	SetAllWake domain.StepID = iota
	SetAllAlert
	SetAllSettleAlert
	SetAllBattery
	SetAllSettleBattery
	SetAllError
	SetAllSettleError
	SetAllSleep
)

// SetAllCharacteristics pushes the alert, battery and error values held in steps.Shared,
// in that order, letting each settle before the next.
type SetAllCharacteristics struct {
	*base
}

// NewSetAllCharacteristics builds the SetAllCharacteristics behaviour.
func NewSetAllCharacteristics(env *steps.Env, opts ...Option) *SetAllCharacteristics {
	s := &SetAllCharacteristics{base: newBase(NameSetAllCharacteristics, env, buildOptions(opts))}
	shared := env.Shared

	b := dsl.New(NameSetAllCharacteristics)
	b.Add(SetAllWake, "wake", steps.NewWake(env)).
		Next(SetAllAlert).
		Redo(s.retry("wake"))
	b.Add(SetAllAlert, "push_alert", steps.NewPush(env, protocol.CmdAlert,
		func() byte { return shared.Alert }, nil)).
		Next(SetAllSettleAlert).
		Redo(s.retry("push_alert"))
	b.Add(SetAllSettleAlert, "settle_alert", steps.NewSettle(env)).
		Next(SetAllBattery)
	b.Add(SetAllBattery, "push_battery", steps.NewPush(env, protocol.CmdBattery,
		func() byte { return shared.Battery }, nil)).
		Next(SetAllSettleBattery).
		Redo(s.retry("push_battery"))
	b.Add(SetAllSettleBattery, "settle_battery", steps.NewSettle(env)).
		Next(SetAllError)
	b.Add(SetAllError, "push_error", steps.NewPush(env, protocol.CmdError,
		func() byte { return shared.Error }, nil)).
		Next(SetAllSettleError).
		Redo(s.retry("push_error"))
	b.Add(SetAllSettleError, "settle_error", steps.NewSettle(env)).
		Next(SetAllSleep)
	b.Add(SetAllSleep, "sleep", steps.NewSleep(env)).
		Last()

	s.build(b)
	return s
}
