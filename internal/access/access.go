// Package access is the Access Control collaborator: role membership plus the
// single policy check every gated ledger operation goes through.
package access

import (
	"context"
	"log/slog"

	"carbonledger/internal/audit"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/tx"
)

// StoreTx provides the transactional boundary for role mutations.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceConfig struct {
	logger         *slog.Logger
	auditPublisher audit.EventPublisher
	tx             StoreTx
}

// Option configures a Service.
type Option func(c *serviceConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

func WithAuditPublisher(publisher audit.EventPublisher) Option {
	return func(c *serviceConfig) {
		c.auditPublisher = publisher
	}
}

func WithTx(t StoreTx) Option {
	return func(c *serviceConfig) {
		c.tx = t
	}
}

// Service answers capability checks and manages grants. Grant and Revoke
// require the caller to hold RoleAdmin.
type Service struct {
	roles   Store
	tx      StoreTx
	emitter *audit.Emitter
}

func New(roles Store, opts ...Option) *Service {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	t := cfg.tx
	if t == nil {
		t = tx.NewMemory()
	}
	return &Service{
		roles:   roles,
		tx:      t,
		emitter: audit.NewEmitter(cfg.logger, cfg.auditPublisher),
	}
}

// Bootstrap grants RoleAdmin to admin if it does not hold it yet.
func (s *Service) Bootstrap(ctx context.Context, admin domain.Address) error {
	if admin.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "bootstrap admin cannot be the zero address")
	}
	var added bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		added, err = s.roles.Add(txCtx, admin, domain.RoleAdmin)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to bootstrap admin")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if added {
		s.emitter.Emit(ctx, audit.EventRoleGranted, admin, "role", domain.RoleAdmin, "principal", admin)
	}
	return nil
}

func (s *Service) HasCapability(ctx context.Context, principal domain.Address, role domain.Role) (bool, error) {
	ok, err := s.roles.Has(ctx, principal, role)
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check capability")
	}
	return ok, nil
}

// Require fails with unauthorized unless principal holds role.
func (s *Service) Require(ctx context.Context, principal domain.Address, role domain.Role) error {
	ok, err := s.HasCapability(ctx, principal, role)
	if err != nil {
		return err
	}
	if !ok {
		return dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonMissingCapability,
			"caller lacks required role", "actor", principal, "role", role)
	}
	return nil
}

// Grant gives role to principal. Granting a held role is a no-op.
func (s *Service) Grant(ctx context.Context, actor domain.Address, role domain.Role, principal domain.Address) error {
	if principal.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "principal cannot be the zero address")
	}
	var added bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.Require(txCtx, actor, domain.RoleAdmin); err != nil {
			return err
		}
		var err error
		added, err = s.roles.Add(txCtx, principal, role)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to grant role")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if added {
		s.emitter.Emit(ctx, audit.EventRoleGranted, actor, "role", role, "principal", principal)
	}
	return nil
}

// Revoke removes role from principal. Revoking a role that is not held is a
// no-op.
func (s *Service) Revoke(ctx context.Context, actor domain.Address, role domain.Role, principal domain.Address) error {
	var removed bool
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.Require(txCtx, actor, domain.RoleAdmin); err != nil {
			return err
		}
		var err error
		removed, err = s.roles.Remove(txCtx, principal, role)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke role")
		}
		return nil
	})
	if err != nil {
		return err
	}
	if removed {
		s.emitter.Emit(ctx, audit.EventRoleRevoked, actor, "role", role, "principal", principal)
	}
	return nil
}

func (s *Service) ListRoles(ctx context.Context, principal domain.Address) ([]domain.Role, error) {
	roles, err := s.roles.ListByPrincipal(ctx, principal)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list roles")
	}
	return roles, nil
}
