package domain

// StepOutcome is what a step's main function reports for a single tick.
type StepOutcome uint8

const (
	OutcomeNothing StepOutcome = iota
	OutcomeActionA
	OutcomeActionB
	OutcomeActionC
	OutcomeActionD
	OutcomeNextStep
	OutcomeRedo
	// OutcomeAbort is reserved. No current behaviour gives it a meaning beyond DoNothing.
	OutcomeAbort
	OutcomeCriticalAbort

	// OutcomeCount is the number of known outcomes; every ReactionTable has this many entries.
	OutcomeCount
)

var outcomeNames = [OutcomeCount]string{
	OutcomeNothing:       "nothing",
	OutcomeActionA:       "action_a",
	OutcomeActionB:       "action_b",
	OutcomeActionC:       "action_c",
	OutcomeActionD:       "action_d",
	OutcomeNextStep:      "next_step",
	OutcomeRedo:          "redo",
	OutcomeAbort:         "abort",
	OutcomeCriticalAbort: "critical_abort",
}

// Valid reports whether o is one of the known outcomes.
func (o StepOutcome) Valid() bool {
	return o < OutcomeCount
}

func (o StepOutcome) String() string {
	if !o.Valid() {
		return "unknown"
	}
	return outcomeNames[o]
}
