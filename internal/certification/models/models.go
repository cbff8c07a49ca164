package models

import (
	"strings"
	"time"

	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

// Certifier is the registry state for one certifier name. The name is the
// identity key; the bound address can change across authorizations.
type Certifier struct {
	Name           string
	Authorized     bool
	BoundAddress   domain.Address
	EverAuthorized bool
}

// NewCertifier returns the record of a name nobody has claimed yet.
func NewCertifier(name string) *Certifier {
	return &Certifier{Name: name}
}

// Authorize binds addr to the name. EverAuthorized never resets.
func (c *Certifier) Authorize(addr domain.Address) {
	c.Authorized = true
	c.BoundAddress = addr
	c.EverAuthorized = true
}

// Revoke unbinds the name and returns the address that was bound, which the
// caller must flag as revoked under this name.
func (c *Certifier) Revoke() (domain.Address, error) {
	if !c.Authorized {
		return "", dErrors.NewReason(dErrors.CodeInvalidInput, "", "certifier is not currently authorized",
			"certifier", c.Name)
	}
	revoked := c.BoundAddress
	c.Authorized = false
	c.BoundAddress = ""
	return revoked, nil
}

// CanCertify applies the name's authorization rules to caller.
//
// A never-authorized name is open to anyone. While authorized only the bound
// address may certify. After revocation only addresses flagged revoked under
// the name are blocked; everyone else passes.
func (c *Certifier) CanCertify(caller domain.Address, callerRevoked bool) error {
	if !c.EverAuthorized {
		return nil
	}
	if c.Authorized {
		if caller != c.BoundAddress {
			return dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonPrincipalMismatch,
				"caller is not the address bound to this certifier",
				"certifier", c.Name, "actor", caller, "expected", c.BoundAddress)
		}
		return nil
	}
	if callerRevoked {
		return dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonRevokedCertifier,
			"caller was revoked for this certifier",
			"certifier", c.Name, "actor", caller)
	}
	return nil
}

// Certification is an immutable attestation attached to a project.
type Certification struct {
	ProjectID        domain.ProjectID
	CertifierName    string
	Standard         string
	CertificateID    string
	IssuanceDate     time.Time
	ExpiryDate       time.Time
	MetadataURI      string
	CertifierAddress domain.Address
	RecordedAt       time.Time
}

// NewCertification validates the attestation fields. The project existence
// check is the caller's job.
func NewCertification(projectID domain.ProjectID, certifierName, standard, certificateID string,
	issuance, expiry time.Time, metadataURI string, caller domain.Address, now time.Time) (*Certification, error) {
	certifierName = strings.TrimSpace(certifierName)
	certificateID = strings.TrimSpace(certificateID)
	if certifierName == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "certifier name cannot be empty")
	}
	if certificateID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "certificate id cannot be empty")
	}
	if !issuance.Before(expiry) {
		return nil, dErrors.NewReason(dErrors.CodeInvalidInput, "", "expiry date must be after issuance date",
			"issuance_date", issuance.UTC().Format(time.RFC3339), "expiry_date", expiry.UTC().Format(time.RFC3339))
	}
	return &Certification{
		ProjectID:        projectID,
		CertifierName:    certifierName,
		Standard:         strings.TrimSpace(standard),
		CertificateID:    certificateID,
		IssuanceDate:     issuance,
		ExpiryDate:       expiry,
		MetadataURI:      strings.TrimSpace(metadataURI),
		CertifierAddress: caller,
		RecordedAt:       now,
	}, nil
}

// CertifierView is a certifier record plus its revoked-address set.
type CertifierView struct {
	Certifier
	Revoked []domain.Address
}
