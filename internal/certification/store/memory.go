package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"carbonledger/internal/certification/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"
)

// Error Contract:
// - FindCertifier returns sentinel.ErrNotFound for a name never saved
// - Owner returns sentinel.ErrNotFound until SetOwner is called
// - Every write records an undo step

type revokedKey struct {
	name string
	addr domain.Address
}

// InMemoryStore holds the registry: certifiers, revocation flags, the
// per-project certification logs and the owner.
type InMemoryStore struct {
	mu             sync.RWMutex
	certifiers     map[string]*models.Certifier
	revoked        map[revokedKey]struct{}
	certifications map[domain.ProjectID][]*models.Certification
	owner          domain.Address
}

func New() *InMemoryStore {
	return &InMemoryStore{
		certifiers:     make(map[string]*models.Certifier),
		revoked:        make(map[revokedKey]struct{}),
		certifications: make(map[domain.ProjectID][]*models.Certification),
	}
}

func (s *InMemoryStore) FindCertifier(_ context.Context, name string) (*models.Certifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.certifiers[name]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *InMemoryStore) SaveCertifier(ctx context.Context, certifier *models.Certifier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.certifiers[certifier.Name]
	c := *certifier
	s.certifiers[certifier.Name] = &c
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if existed {
			s.certifiers[prev.Name] = prev
			return
		}
		delete(s.certifiers, certifier.Name)
	})
	return nil
}

func (s *InMemoryStore) IsRevoked(_ context.Context, name string, addr domain.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.revoked[revokedKey{name, addr}]
	return ok, nil
}

func (s *InMemoryStore) MarkRevoked(ctx context.Context, name string, addr domain.Address) error {
	s.setRevoked(ctx, revokedKey{name, addr}, true)
	return nil
}

func (s *InMemoryStore) ClearRevoked(ctx context.Context, name string, addr domain.Address) error {
	s.setRevoked(ctx, revokedKey{name, addr}, false)
	return nil
}

func (s *InMemoryStore) setRevoked(ctx context.Context, key revokedKey, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, was := s.revoked[key]
	if was == on {
		return
	}
	if on {
		s.revoked[key] = struct{}{}
	} else {
		delete(s.revoked, key)
	}
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if was {
			s.revoked[key] = struct{}{}
			return
		}
		delete(s.revoked, key)
	})
}

// ListRevoked returns the addresses flagged under name, sorted.
func (s *InMemoryStore) ListRevoked(_ context.Context, name string) ([]domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Address
	for key := range s.revoked {
		if key.name == name {
			out = append(out, key.addr)
		}
	}
	slices.SortFunc(out, func(a, b domain.Address) int { return cmp.Compare(a, b) })
	return out, nil
}

func (s *InMemoryStore) AppendCertification(ctx context.Context, c *models.Certification) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	log := s.certifications[c.ProjectID]
	index := uint64(len(log))
	s.certifications[c.ProjectID] = append(log, &cp)
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.certifications[c.ProjectID] = s.certifications[c.ProjectID][:index]
	})
	return index, nil
}

func (s *InMemoryStore) ListCertifications(_ context.Context, projectID domain.ProjectID) ([]*models.Certification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	log := s.certifications[projectID]
	out := make([]*models.Certification, 0, len(log))
	for _, c := range log {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (s *InMemoryStore) CountCertifications(_ context.Context, projectID domain.ProjectID) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.certifications[projectID])), nil
}

func (s *InMemoryStore) Owner(_ context.Context) (domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.owner.IsZero() {
		return "", sentinel.ErrNotFound
	}
	return s.owner, nil
}

func (s *InMemoryStore) SetOwner(ctx context.Context, owner domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.owner
	s.owner = owner
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.owner = prev
	})
	return nil
}
