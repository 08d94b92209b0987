package observability

import (
	"github.com/aretw0/pendant/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the controller hooks and run reports.
type Metrics struct {
	StepEntries *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	Halts       *prometheus.CounterVec
	Runs        *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StepEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pendant_step_entries_total",
				Help: "Steps entered with a fresh init, including reloads.",
			},
			[]string{"sequence", "step"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pendant_transitions_total",
				Help: "Step transitions by the outcome that caused them.",
			},
			[]string{"sequence", "outcome"},
		),
		Halts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pendant_halts_total",
				Help: "Sequences that reached a terminal result.",
			},
			[]string{"sequence", "result", "failure"},
		),
		Runs: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pendant_run_duration_seconds",
				Help:    "Wall time of complete behaviour runs.",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"behaviour", "result"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.StepEntries, m.Transitions, m.Halts, m.Runs)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(e *domain.StepEvent) {
			m.StepEntries.WithLabelValues(e.Sequence, e.StepName).Inc()
		},
		OnTransition: func(e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.Sequence, e.Outcome.String()).Inc()
		},
		OnHalt: func(e *domain.HaltEvent) {
			failure := ""
			if e.Failure != nil {
				failure = string(e.Failure.Kind)
			}
			m.Halts.WithLabelValues(e.Sequence, e.Result.String(), failure).Inc()
		},
	}
}

// ObserveReport records the duration of a finished run.
func (m *Metrics) ObserveReport(r *domain.Report) {
	if r == nil {
		return
	}
	m.Runs.WithLabelValues(r.Behaviour, r.Result.String()).Observe(r.Duration.Seconds())
}
