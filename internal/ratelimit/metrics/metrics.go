package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Checks *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Checks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "auditarmor_ratelimit_checks_total",
			Help: "Rate limit checks by limiter and outcome (allowed, denied, error)",
		}, []string{"limiter", "outcome"}),
	}
}

func (m *Metrics) IncrementCheck(limiter, outcome string) {
	if m == nil {
		return
	}
	m.Checks.WithLabelValues(limiter, outcome).Inc()
}
