package handler

import (
	"time"

	"carbonledger/internal/ledger/models"
)

type ProjectResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	Methodology   string    `json:"methodology"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	TotalCredits  uint64    `json:"total_credits"`
	IssuedCredits uint64    `json:"issued_credits"`
	BatchCount    uint64    `json:"batch_count"`
	Owner         string    `json:"owner"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func toProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		Location:      p.Location,
		Methodology:   p.Methodology,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		TotalCredits:  p.TotalCredits,
		IssuedCredits: p.IssuedCredits,
		BatchCount:    p.BatchCount,
		Owner:         p.Owner.String(),
		Verified:      p.Verified,
		CreatedAt:     p.CreatedAt,
	}
}

type BatchResponse struct {
	ProjectID    string    `json:"project_id"`
	BatchID      string    `json:"batch_id"`
	AssetID      string    `json:"asset_id"`
	Amount       uint64    `json:"amount"`
	Vintage      int       `json:"vintage"`
	SerialNumber string    `json:"serial_number"`
	Retired      bool      `json:"retired"`
	IssuedAt     time.Time `json:"issued_at"`
}

func toBatchResponse(b *models.CreditBatch) BatchResponse {
	return BatchResponse{
		ProjectID:    b.ProjectID.String(),
		BatchID:      b.BatchID.String(),
		AssetID:      b.AssetID.String(),
		Amount:       b.Amount,
		Vintage:      b.Vintage,
		SerialNumber: b.SerialNumber,
		Retired:      b.Retired,
		IssuedAt:     b.IssuedAt,
	}
}

type BatchListResponse struct {
	Batches []BatchResponse `json:"batches"`
	Total   int             `json:"total"`
}

type RetirementResponse struct {
	Batch        BatchResponse `json:"batch"`
	Holder       string        `json:"holder"`
	Amount       uint64        `json:"amount"`
	RetiredTotal uint64        `json:"retired_total"`
	RetiredAt    time.Time     `json:"retired_at"`
}

type AssetMetadataResponse struct {
	AssetID   string `json:"asset_id"`
	ProjectID string `json:"project_id"`
	BatchID   string `json:"batch_id"`
	URI       string `json:"uri"`
}

type RetiredAmountResponse struct {
	AssetID      string `json:"asset_id"`
	RetiredTotal uint64 `json:"retired_total"`
}
