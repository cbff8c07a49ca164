package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	CertifiersAuthorized prometheus.Counter
	CertifiersRevoked    prometheus.Counter
	CertificationsAdded  prometheus.Counter
	CertificationDenied  *prometheus.CounterVec
	ProjectLookupCache   *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CertifiersAuthorized: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_certifiers_authorized_total",
			Help: "Certifier authorizations, including rebinds",
		}),
		CertifiersRevoked: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_certifiers_revoked_total",
			Help: "Certifier revocations",
		}),
		CertificationsAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_certifications_added_total",
			Help: "Certifications appended to project logs",
		}),
		CertificationDenied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carbonledger_certifications_denied_total",
			Help: "Certification attempts rejected by the certifier check",
		}, []string{"reason"}),
		ProjectLookupCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carbonledger_project_lookup_cache_total",
			Help: "Project existence cache lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncrementAuthorized() {
	m.CertifiersAuthorized.Inc()
}

func (m *Metrics) IncrementRevoked() {
	m.CertifiersRevoked.Inc()
}

func (m *Metrics) IncrementAdded() {
	m.CertificationsAdded.Inc()
}

func (m *Metrics) IncrementDenied(reason string) {
	m.CertificationDenied.WithLabelValues(reason).Inc()
}

// ObserveCacheLookup counts a project cache lookup as hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ProjectLookupCache.WithLabelValues(result).Inc()
}
