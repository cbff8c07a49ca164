package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"carbonledger/internal/marketplace/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/tx"
)

// InMemoryStore keeps listings and the fee configuration. Writes record undo
// steps so a purchase whose settlement fails leaves the listing untouched.
type InMemoryStore struct {
	mu       sync.RWMutex
	nextID   domain.ListingID
	listings map[domain.ListingID]*models.Listing
	fees     *models.FeeConfig
}

func New() *InMemoryStore {
	return &InMemoryStore{
		nextID:   1,
		listings: make(map[domain.ListingID]*models.Listing),
	}
}

func (s *InMemoryStore) NextListingID(ctx context.Context) (domain.ListingID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.nextID = id
	})
	return id, nil
}

func (s *InMemoryStore) CreateListing(ctx context.Context, listing *models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listings[listing.ID]; ok {
		return sentinel.ErrAlreadyExists
	}
	l := *listing
	s.listings[listing.ID] = &l
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listings, listing.ID)
	})
	return nil
}

func (s *InMemoryStore) UpdateListing(ctx context.Context, listing *models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.listings[listing.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	l := *listing
	s.listings[listing.ID] = &l
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.listings[prev.ID] = prev
	})
	return nil
}

func (s *InMemoryStore) FindListing(_ context.Context, id domain.ListingID) (*models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.listings[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *l
	return &out, nil
}

// ListActiveListings returns active listings ordered by id.
func (s *InMemoryStore) ListActiveListings(_ context.Context) ([]*models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Listing
	for _, l := range s.listings {
		if l.Active {
			c := *l
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *models.Listing) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *InMemoryStore) ListingStats(_ context.Context) (*models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := &models.Stats{Listings: uint64(len(s.listings))}
	for _, l := range s.listings {
		if l.Active {
			stats.ActiveListings++
		}
	}
	return stats, nil
}

func (s *InMemoryStore) FeeConfig(_ context.Context) (*models.FeeConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.fees == nil {
		return nil, sentinel.ErrNotFound
	}
	out := *s.fees
	return &out, nil
}

func (s *InMemoryStore) SaveFeeConfig(ctx context.Context, cfg *models.FeeConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.fees
	c := *cfg
	s.fees = &c
	tx.Record(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.fees = prev
	})
	return nil
}
