package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ListingsCreated   prometheus.Counter
	ListingsCancelled prometheus.Counter
	Purchases         prometheus.Counter
	UnitsSold         prometheus.Counter
	FeesCollected     *prometheus.CounterVec
	SettleFailures    *prometheus.CounterVec
	SettleDuration    prometheus.Histogram
	ActiveListings    prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ListingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_listings_created_total",
			Help: "Marketplace listings created",
		}),
		ListingsCancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_listings_cancelled_total",
			Help: "Marketplace listings cancelled",
		}),
		Purchases: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_purchases_total",
			Help: "Settled purchases",
		}),
		UnitsSold: f.NewCounter(prometheus.CounterOpts{
			Name: "carbonledger_credits_sold_units_total",
			Help: "Credit units moved to buyers",
		}),
		FeesCollected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carbonledger_platform_fees_total",
			Help: "Platform fees collected, in payment asset base units",
		}, []string{"payment_asset"}),
		SettleFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "carbonledger_settlement_failures_total",
			Help: "Purchases rejected at the settlement step by error code",
		}, []string{"code"}),
		SettleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "carbonledger_settlement_duration_seconds",
			Help:    "Duration of the settlement call",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
		ActiveListings: f.NewGauge(prometheus.GaugeOpts{
			Name: "carbonledger_active_listings",
			Help: "Active listings, refreshed by the stats job",
		}),
	}
}

func (m *Metrics) IncrementCreated() {
	m.ListingsCreated.Inc()
}

func (m *Metrics) IncrementCancelled() {
	m.ListingsCancelled.Inc()
}

func (m *Metrics) RecordPurchase(units, fee uint64, paymentAsset string) {
	m.Purchases.Inc()
	m.UnitsSold.Add(float64(units))
	m.FeesCollected.WithLabelValues(paymentAsset).Add(float64(fee))
}

func (m *Metrics) IncrementSettleFailure(code string) {
	m.SettleFailures.WithLabelValues(code).Inc()
}

func (m *Metrics) ObserveSettle(start time.Time) {
	m.SettleDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) SetActiveListings(n uint64) {
	m.ActiveListings.Set(float64(n))
}
