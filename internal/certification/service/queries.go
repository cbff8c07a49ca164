package service

import (
	"context"
	"errors"
	"strings"

	"carbonledger/internal/certification/models"
	"carbonledger/internal/sentinel"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
)

// GetCertifier returns the record for name with its revoked addresses. A
// name never authorized comes back with every flag false.
func (s *Service) GetCertifier(ctx context.Context, name string) (*models.CertifierView, error) {
	name = strings.TrimSpace(name)
	view := &models.CertifierView{Certifier: *models.NewCertifier(name)}
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		c, err := s.certifiers.FindCertifier(viewCtx, name)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certifier")
		}
		revoked, err := s.certifiers.ListRevoked(viewCtx, name)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list revoked addresses")
		}
		view.Certifier = *c
		view.Revoked = revoked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) ListCertifications(ctx context.Context, projectID domain.ProjectID) ([]*models.Certification, error) {
	var out []*models.Certification
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		var err error
		if out, err = s.certifications.ListCertifications(viewCtx, projectID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to list certifications")
		}
		return nil
	})
	return out, err
}

func (s *Service) CertificationCount(ctx context.Context, projectID domain.ProjectID) (uint64, error) {
	var n uint64
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		var err error
		if n, err = s.certifications.CountCertifications(viewCtx, projectID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to count certifications")
		}
		return nil
	})
	return n, err
}

// Owner returns the registry owner, or the zero address if none is set.
func (s *Service) Owner(ctx context.Context) (domain.Address, error) {
	var owner domain.Address
	err := s.tx.View(ctx, func(viewCtx context.Context) error {
		o, err := s.owner.Owner(viewCtx)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load registry owner")
		}
		owner = o
		return nil
	})
	return owner, err
}
