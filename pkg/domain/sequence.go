package domain

// StepBody is the polled main function of a step. Run is called once per tick while the step
// is current; init is true only on the first tick after the step was loaded or reloaded.
// Implementations must never block.
type StepBody interface {
	Run(init bool) StepOutcome
}

// StepFunc adapts an ordinary function to StepBody.
type StepFunc func(init bool) StepOutcome

// Run calls f(init).
func (f StepFunc) Run(init bool) StepOutcome {
	return f(init)
}

// Reaction is invoked in the same tick, right after Run, for the outcome it is registered under.
type Reaction func() Command

// Static returns a Reaction that always yields cmd.
func Static(cmd Command) Reaction {
	return func() Command { return cmd }
}

// ReactionTable holds one Reaction per StepOutcome value.
type ReactionTable [OutcomeCount]Reaction

// Step is one phase of a behaviour.
type Step struct {
	Name        string
	Body        StepBody
	Reactions   ReactionTable
	Transitions []Transition
}

// SequenceTable is the statically built set of steps of one behaviour, plus the cursor the
// controller mutates tick by tick.
type SequenceTable struct {
	Name    string
	Initial StepID
	Current StepID
	// Fresh is true only on the first tick after a load or reload of Current.
	Fresh bool
	// Halted latches the terminal result in Halt until the next Load.
	Halted bool
	Halt   Result
	Steps  []Step
}

// Lookup returns the step at id, or false when id does not index a step of this table.
func (t *SequenceTable) Lookup(id StepID) (*Step, bool) {
	if t == nil || !id.Valid() || int(id) >= len(t.Steps) {
		return nil, false
	}
	return &t.Steps[id], true
}
