package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the audit chain.
type Metrics struct {
	// Appends by event and result ("ok" or "error")
	Appends *prometheus.CounterVec

	// Time spent inside the append critical section, lock wait included
	AppendLatency prometheus.Histogram

	// Verification runs by outcome ("valid", "tampered", "error")
	Verifications *prometheus.CounterVec
}

// New registers the chain metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Appends: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auditarmor_chain_appends_total",
			Help: "Total chain append attempts by event and result",
		}, []string{"event", "result"}),

		AppendLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "auditarmor_chain_append_duration_seconds",
			Help:    "Duration of chain appends including lock acquisition and fsync",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		Verifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auditarmor_chain_verifications_total",
			Help: "Total chain verification runs by outcome",
		}, []string{"outcome"}),
	}
}

// ObserveAppend records one append attempt.
func (m *Metrics) ObserveAppend(event string, err error, d time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Appends.WithLabelValues(event, result).Inc()
	m.AppendLatency.Observe(d.Seconds())
}

// IncrementVerification records a verification outcome.
func (m *Metrics) IncrementVerification(outcome string) {
	if m != nil {
		m.Verifications.WithLabelValues(outcome).Inc()
	}
}
