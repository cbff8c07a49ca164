// Package service implements the Certification Registry: certifier
// authorization with per-name revocation memory and the per-project
// certification log.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"carbonledger/internal/audit"
	certmetrics "carbonledger/internal/certification/metrics"
	"carbonledger/internal/certification/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/tx"
	"carbonledger/pkg/requestcontext"
)

type Service struct {
	certifiers     CertifierStore
	certifications CertificationStore
	owner          OwnerStore
	projects       ProjectLookup
	tx             StoreTx
	emitter        *audit.Emitter
	metrics        *certmetrics.Metrics
}

func New(certifiers CertifierStore, certifications CertificationStore, owner OwnerStore, projects ProjectLookup, opts ...Option) (*Service, error) {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if certifiers == nil || certifications == nil || owner == nil {
		return nil, fmt.Errorf("registry stores are required")
	}
	if projects == nil {
		return nil, fmt.Errorf("project lookup is required")
	}
	t := cfg.tx
	if t == nil {
		t = tx.NewMemory()
	}
	return &Service{
		certifiers:     certifiers,
		certifications: certifications,
		owner:          owner,
		projects:       projects,
		tx:             t,
		emitter:        audit.NewEmitter(cfg.logger, cfg.auditPublisher),
		metrics:        cfg.metrics,
	}, nil
}

// AddCertificationCommand attaches an attestation to a project.
type AddCertificationCommand struct {
	Caller        domain.Address
	ProjectID     domain.ProjectID
	CertifierName string
	Standard      string
	CertificateID string
	IssuanceDate  time.Time
	ExpiryDate    time.Time
	MetadataURI   string
}

// InitOwner sets the registry owner if none is recorded yet.
func (s *Service) InitOwner(ctx context.Context, owner domain.Address) error {
	if owner.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "registry owner cannot be the zero address")
	}
	return s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.owner.Owner(txCtx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registry owner")
		}
		if err := s.owner.SetOwner(txCtx, owner); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to set registry owner")
		}
		return nil
	})
}

// AuthorizeCertifier binds name to addr. Owner only. Rebinding to an address
// previously revoked under name clears that address's flag.
func (s *Service) AuthorizeCertifier(ctx context.Context, caller domain.Address, name string, addr domain.Address) (*models.Certifier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "certifier name cannot be empty")
	}
	if addr.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "certifier address cannot be the zero address")
	}

	var (
		certifier *models.Certifier
		cleared   bool
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requireOwner(txCtx, caller); err != nil {
			return err
		}
		c, err := s.loadCertifier(txCtx, name)
		if err != nil {
			return err
		}
		revoked, err := s.certifiers.IsRevoked(txCtx, name, addr)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read revocation state")
		}
		if revoked {
			if err := s.certifiers.ClearRevoked(txCtx, name, addr); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear revocation")
			}
		}
		c.Authorize(addr)
		if err := s.certifiers.SaveCertifier(txCtx, c); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save certifier")
		}
		certifier = c
		cleared = revoked
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, audit.EventCertifierAuthorized, caller,
		"certifier", name, "address", addr, "cleared_revocation", cleared)
	if s.metrics != nil {
		s.metrics.IncrementAuthorized()
	}
	return certifier, nil
}

// RevokeCertifier unbinds name and flags its bound address as revoked under
// name. Owner only.
func (s *Service) RevokeCertifier(ctx context.Context, caller domain.Address, name string) (*models.Certifier, error) {
	name = strings.TrimSpace(name)

	var (
		certifier *models.Certifier
		revoked   domain.Address
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requireOwner(txCtx, caller); err != nil {
			return err
		}
		c, err := s.loadCertifier(txCtx, name)
		if err != nil {
			return err
		}
		addr, err := c.Revoke()
		if err != nil {
			return err
		}
		if err := s.certifiers.MarkRevoked(txCtx, name, addr); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record revocation")
		}
		if err := s.certifiers.SaveCertifier(txCtx, c); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save certifier")
		}
		certifier = c
		revoked = addr
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, audit.EventCertifierRevoked, caller, "certifier", name, "address", revoked)
	if s.metrics != nil {
		s.metrics.IncrementRevoked()
	}
	return certifier, nil
}

// AddCertification appends an attestation to the project's log, recording
// the caller as the certifier address.
func (s *Service) AddCertification(ctx context.Context, cmd *AddCertificationCommand) (*models.Certification, uint64, error) {
	var (
		cert  *models.Certification
		index uint64
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		exists, err := s.projects.ProjectExists(txCtx, cmd.ProjectID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up project")
		}
		if !exists {
			return dErrors.NewReason(dErrors.CodeNotFound, dErrors.ReasonProjectNotFound,
				"project not found", "project_id", cmd.ProjectID)
		}
		c, err := models.NewCertification(cmd.ProjectID, cmd.CertifierName, cmd.Standard, cmd.CertificateID,
			cmd.IssuanceDate, cmd.ExpiryDate, cmd.MetadataURI, cmd.Caller, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.checkCertifier(txCtx, c.CertifierName, cmd.Caller); err != nil {
			return err
		}
		idx, err := s.certifications.AppendCertification(txCtx, c)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append certification")
		}
		cert = c
		index = idx
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	s.emitter.Emit(ctx, audit.EventCertificationAdded, cmd.Caller,
		"project_id", cert.ProjectID,
		"index", index,
		"certifier", cert.CertifierName,
		"standard", cert.Standard,
		"certificate_id", cert.CertificateID,
		"issuance_date", cert.IssuanceDate.UTC().Format(time.RFC3339),
		"expiry_date", cert.ExpiryDate.UTC().Format(time.RFC3339),
		"metadata_uri", cert.MetadataURI,
		"certifier_address", cert.CertifierAddress,
	)
	if s.metrics != nil {
		s.metrics.IncrementAdded()
	}
	return cert, index, nil
}

// TransferOwnership hands the registry to newOwner. Owner only.
func (s *Service) TransferOwnership(ctx context.Context, caller, newOwner domain.Address) error {
	if newOwner.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "new owner cannot be the zero address")
	}
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.requireOwner(txCtx, caller); err != nil {
			return err
		}
		if err := s.owner.SetOwner(txCtx, newOwner); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to transfer ownership")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.emitter.Emit(ctx, audit.EventOwnershipTransferred, caller, "previous_owner", caller, "new_owner", newOwner)
	return nil
}

func (s *Service) checkCertifier(ctx context.Context, name string, caller domain.Address) error {
	c, err := s.loadCertifier(ctx, name)
	if err != nil {
		return err
	}
	var callerRevoked bool
	if c.EverAuthorized && !c.Authorized {
		if callerRevoked, err = s.certifiers.IsRevoked(ctx, name, caller); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to read revocation state")
		}
	}
	if err := c.CanCertify(caller, callerRevoked); err != nil {
		if s.metrics != nil {
			var de *dErrors.Error
			if errors.As(err, &de) {
				s.metrics.IncrementDenied(string(de.Reason))
			}
		}
		return err
	}
	return nil
}

// loadCertifier returns the stored record or a fresh never-authorized one.
func (s *Service) loadCertifier(ctx context.Context, name string) (*models.Certifier, error) {
	c, err := s.certifiers.FindCertifier(ctx, name)
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.NewCertifier(name), nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certifier")
	}
	return c, nil
}

func (s *Service) requireOwner(ctx context.Context, caller domain.Address) error {
	owner, err := s.owner.Owner(ctx)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registry owner")
	}
	if owner.IsZero() || caller != owner {
		return dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonPrincipalMismatch,
			"caller is not the registry owner", "actor", caller, "expected", owner)
	}
	return nil
}
