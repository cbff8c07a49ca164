package handler

import (
	"strings"
	"time"

	dErrors "carbonledger/pkg/domain-errors"
)

type CreateProjectRequest struct {
	Name         string    `json:"name" validate:"required,max=200"`
	Description  string    `json:"description" validate:"max=4000"`
	Location     string    `json:"location" validate:"max=200"`
	Methodology  string    `json:"methodology" validate:"max=200"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	TotalCredits uint64    `json:"total_credits" validate:"gt=0"`
}

func (r *CreateProjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

type IssueCreditsRequest struct {
	Amount       uint64 `json:"amount" validate:"gt=0"`
	Vintage      int    `json:"vintage" validate:"gte=0"`
	SerialNumber string `json:"serial_number" validate:"max=128"`
}

type RetireCreditsRequest struct {
	Amount uint64 `json:"amount"`
}

func (r *RetireCreditsRequest) Validate() error {
	if r.Amount == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "amount must be greater than zero")
	}
	return nil
}
