package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"carbonledger/internal/ledger/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"
)

// Error Contract:
// - Find methods return sentinel.ErrNotFound when the record does not exist
// - Create methods return sentinel.ErrAlreadyExists on duplicate keys
// - Every write records an undo step so a failed transaction leaves no trace

type batchKey struct {
	project domain.ProjectID
	batch   domain.BatchID
}

// InMemoryStore keeps projects, batches and retirements in memory. It
// implements the project, batch and retirement stores in one place so a
// single lock covers them.
type InMemoryStore struct {
	mu            sync.RWMutex
	nextProjectID domain.ProjectID
	projects      map[domain.ProjectID]*models.Project
	batches       map[batchKey]*models.CreditBatch
	retirements   map[domain.AssetID][]*models.Retirement
	retired       map[domain.AssetID]uint64
}

func New() *InMemoryStore {
	return &InMemoryStore{
		nextProjectID: 1,
		projects:      make(map[domain.ProjectID]*models.Project),
		batches:       make(map[batchKey]*models.CreditBatch),
		retirements:   make(map[domain.AssetID][]*models.Retirement),
		retired:       make(map[domain.AssetID]uint64),
	}
}

func (s *InMemoryStore) NextProjectID(ctx context.Context) (domain.ProjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextProjectID
	s.nextProjectID++
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.nextProjectID = id
	})
	return id, nil
}

func (s *InMemoryStore) CreateProject(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; ok {
		return sentinel.ErrAlreadyExists
	}
	p := *project
	s.projects[project.ID] = &p
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.projects, project.ID)
	})
	return nil
}

func (s *InMemoryStore) UpdateProject(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.projects[project.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	p := *project
	s.projects[project.ID] = &p
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.projects[prev.ID] = prev
	})
	return nil
}

func (s *InMemoryStore) FindProject(_ context.Context, projectID domain.ProjectID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[projectID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (s *InMemoryStore) ProjectStats(_ context.Context) (*models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &models.Stats{Projects: uint64(len(s.projects))}
	for _, p := range s.projects {
		if p.Verified {
			stats.VerifiedProjects++
		}
		stats.IssuedCredits += p.IssuedCredits
	}
	for _, total := range s.retired {
		stats.RetiredCredits += total
	}
	return stats, nil
}

func (s *InMemoryStore) CreateBatch(ctx context.Context, batch *models.CreditBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := batchKey{batch.ProjectID, batch.BatchID}
	if _, ok := s.batches[key]; ok {
		return sentinel.ErrAlreadyExists
	}
	b := *batch
	s.batches[key] = &b
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.batches, key)
	})
	return nil
}

func (s *InMemoryStore) UpdateBatch(ctx context.Context, batch *models.CreditBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := batchKey{batch.ProjectID, batch.BatchID}
	prev, ok := s.batches[key]
	if !ok {
		return sentinel.ErrNotFound
	}
	b := *batch
	s.batches[key] = &b
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.batches[key] = prev
	})
	return nil
}

func (s *InMemoryStore) FindBatch(_ context.Context, projectID domain.ProjectID, batchID domain.BatchID) (*models.CreditBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.batches[batchKey{projectID, batchID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *b
	return &out, nil
}

// ListBatches returns a project's batches in issuance order.
func (s *InMemoryStore) ListBatches(_ context.Context, projectID domain.ProjectID) ([]*models.CreditBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.CreditBatch{}
	for key, b := range s.batches {
		if key.project == projectID {
			c := *b
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.CreditBatch) int {
		return cmp.Compare(a.BatchID, b.BatchID)
	})
	return out, nil
}

func (s *InMemoryStore) AddRetirement(ctx context.Context, r *models.Retirement) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prevTotal := s.retired[r.AssetID]
	total, err := domain.AddAmount(prevTotal, r.Amount)
	if err != nil {
		return 0, err
	}
	c := *r
	s.retirements[r.AssetID] = append(s.retirements[r.AssetID], &c)
	s.retired[r.AssetID] = total
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		log := s.retirements[r.AssetID]
		s.retirements[r.AssetID] = log[:len(log)-1]
		if prevTotal == 0 {
			delete(s.retired, r.AssetID)
			return
		}
		s.retired[r.AssetID] = prevTotal
	})
	return total, nil
}

func (s *InMemoryStore) RetiredAmount(_ context.Context, assetID domain.AssetID) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.retired[assetID], nil
}

func (s *InMemoryStore) ListRetirements(_ context.Context, assetID domain.AssetID) ([]*models.Retirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Retirement, 0, len(s.retirements[assetID]))
	for _, r := range s.retirements[assetID] {
		c := *r
		out = append(out, &c)
	}
	return out, nil
}

func (s *InMemoryStore) TotalRetired(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total uint64
	for _, v := range s.retired {
		total += v
	}
	return total, nil
}
