package call

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	sideInput  = "input"
	sideOutput = "output"
)

// Metrics counts checked calls and conversion failures per function.
type Metrics struct {
	// Calls counts calls made through a bound function, labeled by function
	// name.
	Calls *prometheus.CounterVec
	// Overflows counts conversion failures, labeled by function name and side
	// ("input" or "output").
	Overflows *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkedcall",
			Name:      "calls_total",
			Help:      "Total number of checked calls",
		}, []string{"func"}),
		Overflows: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "checkedcall",
			Name:      "overflows_total",
			Help:      "Total number of checked conversion failures",
		}, []string{"func", "side"}),
	}
}

func (m *Metrics) observeCall(name string) {
	if m == nil {
		return
	}

	m.Calls.WithLabelValues(name).Inc()
}

func (m *Metrics) observeOverflow(name, side string) {
	if m == nil {
		return
	}

	m.Overflows.WithLabelValues(name, side).Inc()
}
