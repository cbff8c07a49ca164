package service

import (
	"context"
	"errors"

	"carbonledger/internal/ledger/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

// Store interfaces define persistence contracts.

type ProjectStore interface {
	// NextProjectID allocates the next id. The first id is 1 and ids are
	// never reused.
	NextProjectID(ctx context.Context) (domain.ProjectID, error)
	CreateProject(ctx context.Context, project *models.Project) error
	UpdateProject(ctx context.Context, project *models.Project) error
	FindProject(ctx context.Context, projectID domain.ProjectID) (*models.Project, error)
	ProjectStats(ctx context.Context) (*models.Stats, error)
}

type BatchStore interface {
	CreateBatch(ctx context.Context, batch *models.CreditBatch) error
	UpdateBatch(ctx context.Context, batch *models.CreditBatch) error
	FindBatch(ctx context.Context, projectID domain.ProjectID, batchID domain.BatchID) (*models.CreditBatch, error)
	ListBatches(ctx context.Context, projectID domain.ProjectID) ([]*models.CreditBatch, error)
}

type RetirementStore interface {
	// AddRetirement appends r to the retirement log and returns the new
	// cumulative retired amount for its asset-id.
	AddRetirement(ctx context.Context, r *models.Retirement) (uint64, error)
	RetiredAmount(ctx context.Context, assetID domain.AssetID) (uint64, error)
	ListRetirements(ctx context.Context, assetID domain.AssetID) ([]*models.Retirement, error)
	TotalRetired(ctx context.Context) (uint64, error)
}

// AssetLedger is the multi-asset balance collaborator credits are minted into.
type AssetLedger interface {
	BalanceOf(ctx context.Context, owner domain.Address, asset domain.AssetID) (uint64, error)
	Mint(ctx context.Context, operator, to domain.Address, asset domain.AssetID, amount uint64) error
	Burn(ctx context.Context, operator, from domain.Address, asset domain.AssetID, amount uint64) error
}

// Policy is the capability check applied to gated operations.
type Policy interface {
	Require(ctx context.Context, principal domain.Address, role domain.Role) error
}

// StoreTx provides the transactional boundary for ledger mutations. View
// gives a consistent read across stores.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

// Error wrapping helpers translate sentinel errors to domain errors.

func wrapProjectErr(err error, projectID domain.ProjectID, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.NewReason(dErrors.CodeNotFound, dErrors.ReasonProjectNotFound,
			"project not found", "project_id", projectID)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

func wrapBatchErr(err error, projectID domain.ProjectID, batchID domain.BatchID, action string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.NewReason(dErrors.CodeNotFound, "", "credit batch not found",
			"project_id", projectID, "batch_id", batchID)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}

func wrapAssetErr(err error, action string) error {
	return dErrors.Wrap(err, dErrors.CodeInternal, action)
}
