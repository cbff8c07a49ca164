package handler

import (
	"strings"
	"time"

	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

type AuthorizeCertifierRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"required"`

	address domain.Address
}

func (r *AuthorizeCertifierRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
}

func (r *AuthorizeCertifierRequest) Validate() error {
	addr, err := domain.ParseAddress(r.Address)
	if err != nil {
		return err
	}
	if addr.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "certifier address cannot be the zero address")
	}
	r.address = addr
	return nil
}

type AddCertificationRequest struct {
	CertifierName string    `json:"certifier_name" validate:"required,max=200"`
	Standard      string    `json:"standard" validate:"max=200"`
	CertificateID string    `json:"certificate_id" validate:"required,max=200"`
	IssuanceDate  time.Time `json:"issuance_date" validate:"required"`
	ExpiryDate    time.Time `json:"expiry_date" validate:"required"`
	MetadataURI   string    `json:"metadata_uri" validate:"max=2048"`
}

func (r *AddCertificationRequest) Normalize() {
	r.CertifierName = strings.TrimSpace(r.CertifierName)
	r.CertificateID = strings.TrimSpace(r.CertificateID)
	r.Standard = strings.TrimSpace(r.Standard)
	r.MetadataURI = strings.TrimSpace(r.MetadataURI)
}

type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner" validate:"required"`

	newOwner domain.Address
}

func (r *TransferOwnershipRequest) Validate() error {
	addr, err := domain.ParseAddress(strings.TrimSpace(r.NewOwner))
	if err != nil {
		return err
	}
	r.newOwner = addr
	return nil
}
