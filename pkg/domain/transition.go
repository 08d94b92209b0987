package domain

// Transition documents an edge of a sequence: when the step reports On, the sequence may move
// to To. Transitions are descriptive metadata for rendering; the controller only follows
// the Commands returned by reactions.
type Transition struct {
	On StepOutcome `json:"on" yaml:"on"`
	To StepID      `json:"to" yaml:"to"`
}
