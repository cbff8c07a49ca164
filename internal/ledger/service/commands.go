package service

import (
	"strings"

	"carbonledger/internal/ledger/models"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

// CreateProjectCommand registers a project owned by Caller.
type CreateProjectCommand struct {
	Caller       domain.Address
	Metadata     models.ProjectMetadata
	TotalCredits uint64
}

func (c *CreateProjectCommand) normalize() {
	c.Metadata.Name = strings.TrimSpace(c.Metadata.Name)
	c.Metadata.Location = strings.TrimSpace(c.Metadata.Location)
	c.Metadata.Methodology = strings.TrimSpace(c.Metadata.Methodology)
}

// IssueCreditsCommand issues a new batch against a verified project.
type IssueCreditsCommand struct {
	Caller       domain.Address
	ProjectID    domain.ProjectID
	Amount       uint64
	Vintage      int
	SerialNumber string
}

func (c *IssueCreditsCommand) validate() error {
	if c.Amount == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "amount must be greater than zero")
	}
	return nil
}

// RetireCreditsCommand burns units of a batch held by Caller.
type RetireCreditsCommand struct {
	Caller    domain.Address
	ProjectID domain.ProjectID
	BatchID   domain.BatchID
	Amount    uint64
}

func (c *RetireCreditsCommand) validate() error {
	if c.Amount == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "amount must be greater than zero")
	}
	return nil
}
