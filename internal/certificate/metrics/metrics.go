package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CertificatesIssued    prometheus.Counter
	IssuanceFailures      *prometheus.CounterVec
	IssuanceLockContended prometheus.Counter
	Verifications         *prometheus.CounterVec
	IssuanceDuration      prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		CertificatesIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "originstamp_certificates_issued_total",
			Help: "Total number of certificates issued",
		}),
		IssuanceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "originstamp_certificate_issuance_failures_total",
			Help: "Total number of failed issuance attempts by reason",
		}, []string{"reason"}),
		IssuanceLockContended: promauto.NewCounter(prometheus.CounterOpts{
			Name: "originstamp_certificate_issuance_lock_contended_total",
			Help: "Total number of issuance attempts rejected by the per-session lock",
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "originstamp_certificate_verifications_total",
			Help: "Total number of certificate verifications by result",
		}, []string{"result"}),
		IssuanceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "originstamp_certificate_issuance_duration_seconds",
			Help:    "Time spent issuing a certificate",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncrementIssued() {
	m.CertificatesIssued.Inc()
}

func (m *Metrics) IncrementFailures(reason string) {
	m.IssuanceFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncrementLockContended() {
	m.IssuanceLockContended.Inc()
}

func (m *Metrics) IncrementVerifications(result string) {
	m.Verifications.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveIssuanceDuration(seconds float64) {
	m.IssuanceDuration.Observe(seconds)
}
