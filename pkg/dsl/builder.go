package dsl

import (
	"fmt"
	"sort"

	"github.com/aretw0/pendant/pkg/domain"
)

// Builder manages the sequence table construction.
type Builder struct {
	name    string
	initial domain.StepID
	steps   map[domain.StepID]*StepBuilder
}

// New creates a new sequence builder. The initial step defaults to 0.
func New(name string) *Builder {
	return &Builder{
		name:  name,
		steps: make(map[domain.StepID]*StepBuilder),
	}
}

// Initial sets the step the sequence starts from on every load.
func (b *Builder) Initial(id domain.StepID) *Builder {
	b.initial = id
	return b
}

// Add creates a new step in the sequence.
// If the step already exists, it returns the existing builder.
func (b *Builder) Add(id domain.StepID, name string, body domain.StepBody) *StepBuilder {
	if sb, ok := b.steps[id]; ok {
		return sb
	}
	sb := &StepBuilder{
		id:   id,
		step: domain.Step{Name: name, Body: body},
	}
	b.steps[id] = sb
	return sb
}

// Build compiles the declared steps into a sequence table.
// Step IDs must be contiguous from 0 since the table indexes steps by ID.
func (b *Builder) Build() (*domain.SequenceTable, error) {
	if len(b.steps) == 0 {
		return nil, fmt.Errorf("sequence %q has no steps", b.name)
	}
	if len(b.steps) > domain.MaxSteps {
		return nil, fmt.Errorf("sequence %q has %d steps, max is %d", b.name, len(b.steps), domain.MaxSteps)
	}

	ids := make([]int, 0, len(b.steps))
	for id := range b.steps {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	steps := make([]domain.Step, len(ids))
	for i, id := range ids {
		if id != i {
			return nil, fmt.Errorf("sequence %q: step ids must be contiguous from 0, missing %d", b.name, i)
		}
		sb := b.steps[domain.StepID(id)]
		if sb.step.Body == nil {
			return nil, fmt.Errorf("sequence %q: step %d (%s) has no body", b.name, id, sb.step.Name)
		}
		if sb.step.Reactions[domain.OutcomeNextStep] == nil {
			return nil, fmt.Errorf("sequence %q: step %d (%s) has no successor", b.name, id, sb.step.Name)
		}
		steps[i] = sb.build()
	}

	for _, s := range steps {
		for _, tr := range s.Transitions {
			if tr.To == domain.End {
				continue
			}
			if int(tr.To) >= len(steps) || !tr.To.Valid() {
				return nil, fmt.Errorf("sequence %q: step %s transitions to missing step %s", b.name, s.Name, tr.To)
			}
		}
	}

	if int(b.initial) >= len(steps) || !b.initial.Valid() {
		return nil, fmt.Errorf("sequence %q: initial step %s does not exist", b.name, b.initial)
	}

	return &domain.SequenceTable{
		Name:    b.name,
		Initial: b.initial,
		Current: b.initial,
		Steps:   steps,
	}, nil
}

// MustBuild is Build for statically known sequences; it panics on a wiring defect.
func (b *Builder) MustBuild() *domain.SequenceTable {
	t, err := b.Build()
	if err != nil {
		panic(err)
	}
	return t
}
