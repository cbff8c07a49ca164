package handler

import (
	"time"

	"carbonledger/internal/certification/models"
)

type CertifierResponse struct {
	Name           string   `json:"name"`
	Authorized     bool     `json:"authorized"`
	BoundAddress   string   `json:"bound_address,omitempty"`
	EverAuthorized bool     `json:"ever_authorized"`
	Revoked        []string `json:"revoked_addresses,omitempty"`
}

type CertificationResponse struct {
	Index            uint64    `json:"index"`
	ProjectID        string    `json:"project_id"`
	CertifierName    string    `json:"certifier_name"`
	Standard         string    `json:"standard"`
	CertificateID    string    `json:"certificate_id"`
	IssuanceDate     time.Time `json:"issuance_date"`
	ExpiryDate       time.Time `json:"expiry_date"`
	MetadataURI      string    `json:"metadata_uri"`
	CertifierAddress string    `json:"certifier_address"`
	RecordedAt       time.Time `json:"recorded_at"`
}

type CertificationListResponse struct {
	Certifications []CertificationResponse `json:"certifications"`
	Total          int                     `json:"total"`
}

type OwnerResponse struct {
	Owner string `json:"owner"`
}

func toCertifierResponse(c *models.Certifier, revoked []string) CertifierResponse {
	return CertifierResponse{
		Name:           c.Name,
		Authorized:     c.Authorized,
		BoundAddress:   c.BoundAddress.String(),
		EverAuthorized: c.EverAuthorized,
		Revoked:        revoked,
	}
}

func toCertificationResponse(index uint64, c *models.Certification) CertificationResponse {
	return CertificationResponse{
		Index:            index,
		ProjectID:        c.ProjectID.String(),
		CertifierName:    c.CertifierName,
		Standard:         c.Standard,
		CertificateID:    c.CertificateID,
		IssuanceDate:     c.IssuanceDate,
		ExpiryDate:       c.ExpiryDate,
		MetadataURI:      c.MetadataURI,
		CertifierAddress: c.CertifierAddress.String(),
		RecordedAt:       c.RecordedAt,
	}
}
