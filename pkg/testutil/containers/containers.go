//go:build integration

// Package containers starts the Postgres and Kafka dependencies of the ledger
// once per test binary and hands the same instances to every suite.
package containers

import (
	"sync"
	"testing"
)

// Manager hands out shared containers, starting each on first use.
type Manager struct {
	mu       sync.Mutex
	postgres *PostgresContainer
	kafka    *KafkaContainer
}

var manager = sync.OnceValue(func() *Manager { return &Manager{} })

// GetManager returns the process-wide manager.
func GetManager() *Manager {
	return manager()
}

func (m *Manager) GetPostgres(t *testing.T) *PostgresContainer {
	t.Helper()
	return startOnce(m, &m.postgres, func() *PostgresContainer { return NewPostgresContainer(t) })
}

func (m *Manager) GetKafka(t *testing.T) *KafkaContainer {
	t.Helper()
	return startOnce(m, &m.kafka, func() *KafkaContainer { return NewKafkaContainer(t) })
}

func startOnce[T any](m *Manager, slot **T, start func() *T) *T {
	m.mu.Lock()
	defer m.mu.Unlock()
	if *slot == nil {
		*slot = start()
	}
	return *slot
}
