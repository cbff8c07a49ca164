package service

import (
	"log/slog"

	"carbonledger/internal/audit"
	ledgermetrics "carbonledger/internal/ledger/metrics"
	"carbonledger/internal/platform/tracer"
	"carbonledger/pkg/domain"
)

// serviceConfig holds optional dependencies for the service.
type serviceConfig struct {
	logger          *slog.Logger
	auditPublisher  audit.EventPublisher
	metrics         *ledgermetrics.Metrics
	tx              StoreTx
	tracer          tracer.Tracer
	codec           *domain.AssetCodec
	metadataBaseURI string
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

func WithMetrics(m *ledgermetrics.Metrics) Option {
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

// WithAssetCodec sets the asset-id multiplier K.
func WithAssetCodec(codec domain.AssetCodec) Option {
	return func(c *serviceConfig) {
		c.codec = &codec
	}
}

func WithMetadataBaseURI(uri string) Option {
	return func(c *serviceConfig) {
		c.metadataBaseURI = uri
	}
}
