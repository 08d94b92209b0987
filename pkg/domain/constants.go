package domain

import "strconv"

// StepID indexes a step inside a SequenceTable.
type StepID int16

const (
	// MaxSteps bounds the number of steps a single sequence table may hold.
	MaxSteps = 32

	// End marks "no further step". It never indexes a step.
	End StepID = 0xFF

	// Undefined is never a legal transition target.
	Undefined StepID = -1
)

// Valid reports whether id can index a step (it says nothing about a particular table's size).
func (id StepID) Valid() bool {
	return id >= 0 && id < MaxSteps
}

func (id StepID) String() string {
	switch id {
	case End:
		return "end"
	case Undefined:
		return "undefined"
	default:
		return strconv.Itoa(int(id))
	}
}

// DefaultRetryCeiling is the number of Redo occurrences that escalates to Critical.
const DefaultRetryCeiling = 3
