package service

import (
	"context"

	"carbonledger/internal/certification/models"
	"carbonledger/pkg/domain"
)

// Store interfaces define persistence contracts.

type CertifierStore interface {
	// FindCertifier returns sentinel.ErrNotFound for a name never authorized.
	FindCertifier(ctx context.Context, name string) (*models.Certifier, error)
	SaveCertifier(ctx context.Context, certifier *models.Certifier) error
	IsRevoked(ctx context.Context, name string, addr domain.Address) (bool, error)
	MarkRevoked(ctx context.Context, name string, addr domain.Address) error
	ClearRevoked(ctx context.Context, name string, addr domain.Address) error
	ListRevoked(ctx context.Context, name string) ([]domain.Address, error)
}

type CertificationStore interface {
	// AppendCertification returns the zero-based index of the new entry
	// within its project's log.
	AppendCertification(ctx context.Context, c *models.Certification) (uint64, error)
	ListCertifications(ctx context.Context, projectID domain.ProjectID) ([]*models.Certification, error)
	CountCertifications(ctx context.Context, projectID domain.ProjectID) (uint64, error)
}

// OwnerStore holds the registry owner. Owner returns sentinel.ErrNotFound
// until one is set.
type OwnerStore interface {
	Owner(ctx context.Context) (domain.Address, error)
	SetOwner(ctx context.Context, owner domain.Address) error
}

// ProjectLookup is the read-only view of the Credit Ledger used for
// existence checks.
type ProjectLookup interface {
	ProjectExists(ctx context.Context, projectID domain.ProjectID) (bool, error)
}

// StoreTx provides the transactional boundary for registry mutations.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}
