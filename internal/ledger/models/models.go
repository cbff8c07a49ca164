package models

import (
	"time"

	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

// ProjectMetadata is free-text description of an emission-reduction project.
// StartDate and EndDate are not ordered against each other.
type ProjectMetadata struct {
	Name        string
	Description string
	Location    string
	Methodology string
	StartDate   time.Time
	EndDate     time.Time
}

// Project is a registered emission-reduction project. A zero ID means the
// project does not exist.
type Project struct {
	ID domain.ProjectID
	ProjectMetadata
	TotalCredits  uint64
	IssuedCredits uint64
	BatchCount    uint64
	Owner         domain.Address
	Verified      bool
	CreatedAt     time.Time
}

func NewProject(projectID domain.ProjectID, meta ProjectMetadata, totalCredits uint64, owner domain.Address, now time.Time) (*Project, error) {
	if projectID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInternal, "project id 0 is reserved")
	}
	if meta.Name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "project name cannot be empty")
	}
	if totalCredits == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "total credits must be greater than zero")
	}
	if owner.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "project owner cannot be the zero address")
	}
	return &Project{
		ID:              projectID,
		ProjectMetadata: meta,
		TotalCredits:    totalCredits,
		Owner:           owner,
		CreatedAt:       now,
	}, nil
}

func (p *Project) Exists() bool { return !p.ID.IsZero() }

// Remaining is the issuance headroom left under the ceiling.
func (p *Project) Remaining() uint64 {
	return p.TotalCredits - p.IssuedCredits
}

// Verify flips verified once. There is no way back.
func (p *Project) Verify() error {
	if p.Verified {
		return dErrors.NewReason(dErrors.CodeTerminalState, dErrors.ReasonAlreadyVerified,
			"project is already verified", "project_id", p.ID)
	}
	p.Verified = true
	return nil
}

// ReserveIssuance checks the preconditions for issuing amount and, if they
// hold, allocates the next batch id and raises IssuedCredits.
func (p *Project) ReserveIssuance(amount uint64) (domain.BatchID, error) {
	if !p.Verified {
		return 0, dErrors.NewReason(dErrors.CodePrecondition, dErrors.ReasonNotVerified,
			"project is not verified", "project_id", p.ID)
	}
	if amount > p.Remaining() {
		return 0, dErrors.NewReason(dErrors.CodeCapacityExceeded, dErrors.ReasonExceedsCeiling,
			"issuance exceeds project credit ceiling",
			"project_id", p.ID, "requested", amount, "remaining", p.Remaining())
	}
	issued, err := domain.AddAmount(p.IssuedCredits, amount)
	if err != nil {
		return 0, err
	}
	batchID := domain.BatchID(p.BatchCount)
	p.IssuedCredits = issued
	p.BatchCount++
	return batchID, nil
}

// CreditBatch is one issuance against a project. Amount is the immutable face
// value; Retired flips once cumulative retirement reaches it.
type CreditBatch struct {
	ProjectID    domain.ProjectID
	BatchID      domain.BatchID
	AssetID      domain.AssetID
	Amount       uint64
	Vintage      int
	SerialNumber string
	Retired      bool
	IssuedAt     time.Time
}

// Exists reports whether the batch was issued. Amount is never zero for an
// issued batch.
func (b *CreditBatch) Exists() bool { return b.Amount != 0 }

// ApplyRetirement marks the batch retired once retiredTotal reaches Amount.
// It reports whether the flag changed.
func (b *CreditBatch) ApplyRetirement(retiredTotal uint64) bool {
	if b.Retired || retiredTotal < b.Amount {
		return false
	}
	b.Retired = true
	return true
}

// Retirement is one holder's retirement of units of a batch.
type Retirement struct {
	AssetID   domain.AssetID
	ProjectID domain.ProjectID
	BatchID   domain.BatchID
	Holder    domain.Address
	Amount    uint64
	RetiredAt time.Time
}

// RetirementResult is returned by a successful retirement.
type RetirementResult struct {
	Batch        *CreditBatch
	Retirement   *Retirement
	RetiredTotal uint64
}

// AssetMetadata decomposes an asset-id for external consumers.
type AssetMetadata struct {
	AssetID   domain.AssetID
	ProjectID domain.ProjectID
	BatchID   domain.BatchID
	URI       string
}

// Stats summarizes ledger totals for gauges.
type Stats struct {
	Projects         uint64
	VerifiedProjects uint64
	IssuedCredits    uint64
	RetiredCredits   uint64
}
