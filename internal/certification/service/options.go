package service

import (
	"log/slog"

	"carbonledger/internal/audit"
	certmetrics "carbonledger/internal/certification/metrics"
)

type serviceConfig struct {
	logger         *slog.Logger
	auditPublisher audit.EventPublisher
	metrics        *certmetrics.Metrics
	tx             StoreTx
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

func WithMetrics(m *certmetrics.Metrics) Option {
	return func(c *serviceConfig) {
		c.metrics = m
	}
}

func WithTx(t StoreTx) Option {
	return func(c *serviceConfig) {
		c.tx = t
	}
}
