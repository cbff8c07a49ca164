package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ProjectsCreated   prometheus.Counter
	ProjectsVerified  prometheus.Counter
	CreditsIssued     prometheus.Counter
	CreditsRetired    prometheus.Counter
	IssueDuration     prometheus.Histogram
	ProjectsTotal     prometheus.Gauge
	IssuedCreditsNow  prometheus.Gauge
	RetiredCreditsNow prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ProjectsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_projects_created_total",
			Help: "Total number of projects registered",
		}),
		ProjectsVerified: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_projects_verified_total",
			Help: "Total number of projects verified",
		}),
		CreditsIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_credits_issued_units_total",
			Help: "Credit units issued across all batches",
		}),
		CreditsRetired: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_credits_retired_units_total",
			Help: "Credit units retired across all batches",
		}),
		IssueDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "carbonledger_issue_credits_duration_seconds",
			Help:    "Duration of IssueCredits including the mint",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ProjectsTotal: f.NewGauge(prometheus.GaugeOpts{
			Name: "carbonledger_projects",
			Help: "Registered projects, refreshed by the stats job",
		}),
		IssuedCreditsNow: f.NewGauge(prometheus.GaugeOpts{
			Name: "carbonledger_issued_credits",
			Help: "Credit units issued to date, refreshed by the stats job",
		}),
		RetiredCreditsNow: f.NewGauge(prometheus.GaugeOpts{
			Name: "carbonledger_retired_credits",
			Help: "Credit units retired to date, refreshed by the stats job",
		}),
	}
}

func (m *Metrics) IncrementProjectCreated() {
	m.ProjectsCreated.Inc()
}

func (m *Metrics) IncrementProjectVerified() {
	m.ProjectsVerified.Inc()
}

func (m *Metrics) AddIssued(amount uint64) {
	m.CreditsIssued.Add(float64(amount))
}

func (m *Metrics) AddRetired(amount uint64) {
	m.CreditsRetired.Add(float64(amount))
}

func (m *Metrics) ObserveIssue(start time.Time) {
	m.IssueDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) SetStats(projects, issued, retired uint64) {
	m.ProjectsTotal.Set(float64(projects))
	m.IssuedCreditsNow.Set(float64(issued))
	m.RetiredCreditsNow.Set(float64(retired))
}
