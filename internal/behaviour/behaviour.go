package behaviour

import (
	"fmt"

	"github.com/aretw0/pendant/internal/steps"
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/aretw0/pendant/pkg/dsl"
)

// Behaviour names.
const (
	NameAlert                 = "alert"
	NameBroadcastOnly         = "broadcast_only"
	NameResetAlert            = "reset_alert"
	NameSetAllCharacteristics = "set_all_characteristics"
)

// Behaviour is one complete device task.
type Behaviour interface {
	Name() string
	// Prepare resets the run state and returns the table ready to be loaded.
	Prepare() *domain.SequenceTable
	// Table returns the table without touching run state.
	Table() *domain.SequenceTable
}

// Option configures the behaviours built by a Catalog.
type Option func(*options)

type options struct {
	ceiling int
}

// WithRetryCeiling sets the retry ceiling of every retryable step.
func WithRetryCeiling(n int) Option {
	return func(o *options) {
		o.ceiling = n
	}
}

func buildOptions(opts []Option) options {
	o := options{ceiling: domain.DefaultRetryCeiling}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// base carries what every composition shares.
type base struct {
	name    string
	env     *steps.Env
	ceiling int
	table   *domain.SequenceTable
	retries []*Retry
}

func newBase(name string, env *steps.Env, o options) *base {
	return &base{name: name, env: env, ceiling: o.ceiling}
}

func (b *base) Name() string { return b.name }

func (b *base) Table() *domain.SequenceTable { return b.table }

func (b *base) Prepare() *domain.SequenceTable {
	for _, r := range b.retries {
		r.Reset()
	}
	b.env.Shared.Reset()
	return b.table
}

// retry registers a counter for one step purpose and returns its Redo reaction.
func (b *base) retry(purpose string) domain.Reaction {
	r := NewRetry(b.name+"/"+purpose, b.ceiling, b.env.Logger)
	b.retries = append(b.retries, r)
	return r.Redo
}

// Tables are static: a failed build is a programming error.
func (b *base) build(builder *dsl.Builder) {
	table, err := builder.Build()
	if err != nil {
		panic(fmt.Sprintf("behaviour %s: %v", b.name, err))
	}
	b.table = table
}

// Catalog holds one instance of every behaviour, keyed by name.
type Catalog struct {
	order  []string
	byName map[string]Behaviour
}

// NewCatalog builds every behaviour on env.
func NewCatalog(env *steps.Env, opts ...Option) *Catalog {
	c := &Catalog{byName: make(map[string]Behaviour)}
	for _, b := range []Behaviour{
		NewAlert(env, opts...),
		NewBroadcastOnly(env, opts...),
		NewResetAlert(env, opts...),
		NewSetAllCharacteristics(env, opts...),
	} {
		c.order = append(c.order, b.Name())
		c.byName[b.Name()] = b
	}
	return c
}

// Get looks up a behaviour by name.
func (c *Catalog) Get(name string) (Behaviour, error) {
	b, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBehaviour, name)
	}
	return b, nil
}

// Names lists the behaviours in catalog order.
func (c *Catalog) Names() []string {
	return append([]string(nil), c.order...)
}
