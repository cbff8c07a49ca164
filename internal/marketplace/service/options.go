package service

import (
	"log/slog"

	"carbonledger/internal/audit"
	marketmetrics "carbonledger/internal/marketplace/metrics"
	"carbonledger/internal/marketplace/models"
	"carbonledger/internal/platform/tracer"
	"carbonledger/pkg/domain"
)

type serviceConfig struct {
	logger          *slog.Logger
	auditPublisher  audit.EventPublisher
	metrics         *marketmetrics.Metrics
	tx              StoreTx
	tracer          tracer.Tracer
	sellerGate      models.SellerGate
	cancelAuthority models.CancelAuthority
	paymentAssets   []domain.PaymentAsset
}

// Option configures the service.
type Option func(c *serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithAuditPublisher(publisher audit.EventPublisher) Option {
	return func(c *serviceConfig) {
		c.auditPublisher = publisher
	}
}

func WithMetrics(m *marketmetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

func WithTx(t StoreTx) Option {
	return func(c *serviceConfig) {
		c.tx = t
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(c *serviceConfig) {
		c.tracer = t
	}
}

// WithSellerGate selects the listing policy. Default open.
func WithSellerGate(gate models.SellerGate) Option {
	return func(c *serviceConfig) {
		c.sellerGate = gate
	}
}

// WithCancelAuthority selects who may cancel. Default seller only.
func WithCancelAuthority(authority models.CancelAuthority) Option {
	return func(c *serviceConfig) {
		c.cancelAuthority = authority
	}
}

// WithPaymentAssets sets the payment whitelist. Default USDC and USDT.
func WithPaymentAssets(kinds ...domain.PaymentAsset) Option {
	return func(c *serviceConfig) {
		c.paymentAssets = kinds
	}
}
