package publisher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for tip announcements.
type Metrics struct {
	Published    *prometheus.CounterVec
	Dropped      prometheus.Counter
	BreakerState *prometheus.GaugeVec
}

// NewMetrics registers the publisher metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Published: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auditarmor_chain_publish_total",
			Help: "Total tip announcements by sink and result (ok, error, skipped)",
		}, []string{"sink", "result"}),
		Dropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "auditarmor_chain_publish_dropped_total",
			Help: "Total tip announcements dropped before reaching any sink",
		}),
		BreakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "auditarmor_chain_publish_circuit_state",
			Help: "Circuit breaker state per sink (0=closed, 1=open)",
		}, []string{"sink"}),
	}
}

func (m *Metrics) IncPublished(sink, result string) {
	if m == nil {
		return
	}
	m.Published.WithLabelValues(sink, result).Inc()
}

func (m *Metrics) IncDropped() {
	if m == nil {
		return
	}
	m.Dropped.Inc()
}

func (m *Metrics) SetBreakerState(sink string, open bool) {
	if m == nil {
		return
	}
	v := 0.0
	if open {
		v = 1
	}
	m.BreakerState.WithLabelValues(sink).Set(v)
}
