package access

import (
	"context"
	"slices"
	"sync"

	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"
)

// Store persists role membership.
type Store interface {
	// Add grants role to principal and reports whether it was newly added.
	Add(ctx context.Context, principal domain.Address, role domain.Role) (bool, error)
	// Remove revokes role from principal and reports whether it was held.
	Remove(ctx context.Context, principal domain.Address, role domain.Role) (bool, error)
	Has(ctx context.Context, principal domain.Address, role domain.Role) (bool, error)
	ListByPrincipal(ctx context.Context, principal domain.Address) ([]domain.Role, error)
}

// InMemoryStore keeps role membership in memory. Writes made inside a
// transaction are undone if the transaction fails.
type InMemoryStore struct {
	mu    sync.RWMutex
	roles map[domain.Address]map[domain.Role]struct{}
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{roles: make(map[domain.Address]map[domain.Role]struct{})}
}

func (s *InMemoryStore) Add(ctx context.Context, principal domain.Address, role domain.Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	held := s.roles[principal]
	if _, ok := held[role]; ok {
		return false, nil
	}
	if held == nil {
		held = make(map[domain.Role]struct{})
		s.roles[principal] = held
	}
	held[role] = struct{}{}
	tx.Record(ctx, func() { s.remove(principal, role) })
	return true, nil
}

func (s *InMemoryStore) Remove(ctx context.Context, principal domain.Address, role domain.Role) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roles[principal][role]; !ok {
		return false, nil
	}
	delete(s.roles[principal], role)
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.roles[principal] == nil {
			s.roles[principal] = make(map[domain.Role]struct{})
		}
		s.roles[principal][role] = struct{}{}
	})
	return true, nil
}

func (s *InMemoryStore) remove(principal domain.Address, role domain.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.roles[principal], role)
}

func (s *InMemoryStore) Has(_ context.Context, principal domain.Address, role domain.Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[principal][role]
	return ok, nil
}

func (s *InMemoryStore) ListByPrincipal(_ context.Context, principal domain.Address) ([]domain.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Role, 0, len(s.roles[principal]))
	for role := range s.roles[principal] {
		out = append(out, role)
	}
	slices.Sort(out)
	return out, nil
}
