package circuit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors shared by all breakers of a process.
type Metrics struct {
	State    *prometheus.GaugeVec
	Rejected *prometheus.CounterVec
}

// NewMetrics registers the breaker collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		State: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "delivery_tracking_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=open, 2=half-open)",
		}, []string{"breaker"}),
		Rejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_tracking_circuit_breaker_rejected_total",
			Help: "Total number of calls rejected by an open circuit breaker",
		}, []string{"breaker"}),
	}
}

func (m *Metrics) setState(name string, s State) {
	if m == nil {
		return
	}
	m.State.WithLabelValues(name).Set(float64(s))
}

func (m *Metrics) incRejected(name string) {
	if m == nil {
		return
	}
	m.Rejected.WithLabelValues(name).Inc()
}
