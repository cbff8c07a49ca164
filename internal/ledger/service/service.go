// Package service implements the Credit Ledger: project registry, batch
// issuance, retirement accounting and asset-id derivation.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carbonledger/internal/audit"
	ledgermetrics "carbonledger/internal/ledger/metrics"
	"carbonledger/internal/ledger/models"
	"carbonledger/internal/platform/tracer"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/tx"
	"carbonledger/pkg/requestcontext"
)

type Service struct {
	projects    ProjectStore
	batches     BatchStore
	retirements RetirementStore
	assets      AssetLedger
	policy      Policy
	tx          StoreTx
	emitter     *audit.Emitter
	metrics     *ledgermetrics.Metrics
	tracer      tracer.Tracer
	codec       domain.AssetCodec
	baseURI     string
}

func New(projects ProjectStore, batches BatchStore, retirements RetirementStore, assets AssetLedger, policy Policy, opts ...Option) (*Service, error) {
	cfg := &serviceConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if projects == nil || batches == nil || retirements == nil {
		return nil, fmt.Errorf("ledger stores are required")
	}
	if assets == nil || policy == nil {
		return nil, fmt.Errorf("asset ledger and policy are required")
	}
	t := cfg.tx
	if t == nil {
		t = tx.NewMemory()
	}
	tr := cfg.tracer
	if tr == nil {
		tr = tracer.NewNoop()
	}
	codec := cfg.codec
	if codec == nil {
		c, err := domain.NewAssetCodec(domain.DefaultAssetMultiplier)
		if err != nil {
			return nil, err
		}
		codec = &c
	}
	return &Service{
		projects:    projects,
		batches:     batches,
		retirements: retirements,
		assets:      assets,
		policy:      policy,
		tx:          t,
		emitter:     audit.NewEmitter(cfg.logger, cfg.auditPublisher),
		metrics:     cfg.metrics,
		tracer:      tr,
		codec:       *codec,
		baseURI:     cfg.metadataBaseURI,
	}, nil
}

// CreateProject registers a project owned by the caller. Issuer only.
func (s *Service) CreateProject(ctx context.Context, cmd *CreateProjectCommand) (*models.Project, error) {
	cmd.normalize()

	var project *models.Project
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.policy.Require(txCtx, cmd.Caller, domain.RoleIssuer); err != nil {
			return err
		}
		projectID, err := s.projects.NextProjectID(txCtx)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to allocate project id")
		}
		p, err := models.NewProject(projectID, cmd.Metadata, cmd.TotalCredits, cmd.Caller, requestcontext.Now(txCtx))
		if err != nil {
			return err
		}
		if err := s.projects.CreateProject(txCtx, p); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create project")
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, audit.EventProjectCreated, cmd.Caller,
		"project_id", project.ID,
		"name", project.Name,
		"description", project.Description,
		"location", project.Location,
		"methodology", project.Methodology,
		"start_date", project.StartDate.UTC().Format(time.RFC3339),
		"end_date", project.EndDate.UTC().Format(time.RFC3339),
		"total_credits", project.TotalCredits,
		"owner", project.Owner,
	)
	if s.metrics != nil {
		s.metrics.IncrementProjectCreated()
	}
	return project, nil
}

// VerifyProject marks a project verified. Verifier only; one-way.
func (s *Service) VerifyProject(ctx context.Context, caller domain.Address, projectID domain.ProjectID) (*models.Project, error) {
	var project *models.Project
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.policy.Require(txCtx, caller, domain.RoleVerifier); err != nil {
			return err
		}
		p, err := s.projects.FindProject(txCtx, projectID)
		if err != nil {
			return wrapProjectErr(err, projectID, "failed to load project")
		}
		if err := p.Verify(); err != nil {
			return err
		}
		if err := s.projects.UpdateProject(txCtx, p); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update project")
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, audit.EventProjectVerified, caller, "project_id", project.ID, "verifier", caller)
	if s.metrics != nil {
		s.metrics.IncrementProjectVerified()
	}
	return project, nil
}

// IssueCredits records a new batch and mints its units to the project owner.
// Issuer only. The mint is the last step of the transaction.
func (s *Service) IssueCredits(ctx context.Context, cmd *IssueCreditsCommand) (*models.CreditBatch, error) {
	start := time.Now()
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	var (
		batch *models.CreditBatch
		owner domain.Address
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.policy.Require(txCtx, cmd.Caller, domain.RoleIssuer); err != nil {
			return err
		}
		p, err := s.projects.FindProject(txCtx, cmd.ProjectID)
		if err != nil {
			return wrapProjectErr(err, cmd.ProjectID, "failed to load project")
		}
		batchID, err := p.ReserveIssuance(cmd.Amount)
		if err != nil {
			return err
		}
		assetID, err := s.codec.Encode(domain.AssetKey{ProjectID: p.ID, BatchID: batchID})
		if err != nil {
			return err
		}
		b := &models.CreditBatch{
			ProjectID:    p.ID,
			BatchID:      batchID,
			AssetID:      assetID,
			Amount:       cmd.Amount,
			Vintage:      cmd.Vintage,
			SerialNumber: strings.TrimSpace(cmd.SerialNumber),
			IssuedAt:     requestcontext.Now(txCtx),
		}
		if err := s.projects.UpdateProject(txCtx, p); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update project")
		}
		if err := s.batches.CreateBatch(txCtx, b); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record batch")
		}
		if err := s.mint(txCtx, cmd.Caller, p.Owner, assetID, cmd.Amount); err != nil {
			return err
		}
		batch = b
		owner = p.Owner
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, audit.EventCreditsIssued, cmd.Caller,
		"project_id", batch.ProjectID,
		"batch_id", batch.BatchID,
		"asset_id", batch.AssetID,
		"amount", batch.Amount,
		"vintage", batch.Vintage,
		"serial_number", batch.SerialNumber,
		"owner", owner,
	)
	if s.metrics != nil {
		s.metrics.AddIssued(batch.Amount)
		s.metrics.ObserveIssue(start)
	}
	return batch, nil
}

// RetireCredits burns amount units of a batch held by the caller and adds them
// to the asset's retirement counter. Any holder may retire.
func (s *Service) RetireCredits(ctx context.Context, cmd *RetireCreditsCommand) (*models.RetirementResult, error) {
	if err := cmd.validate(); err != nil {
		return nil, err
	}

	var result *models.RetirementResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		b, err := s.batches.FindBatch(txCtx, cmd.ProjectID, cmd.BatchID)
		if err != nil {
			return wrapBatchErr(err, cmd.ProjectID, cmd.BatchID, "failed to load batch")
		}
		available, err := s.balanceOf(txCtx, cmd.Caller, b.AssetID)
		if err != nil {
			return err
		}
		if available < cmd.Amount {
			return dErrors.NewReason(dErrors.CodeInsufficientBalance, "", "insufficient credit balance to retire",
				"holder", cmd.Caller, "asset_id", b.AssetID, "requested", cmd.Amount, "available", available)
		}
		if b.Retired {
			return dErrors.NewReason(dErrors.CodeTerminalState, dErrors.ReasonAlreadyFullyRetired,
				"batch is already fully retired", "project_id", b.ProjectID, "batch_id", b.BatchID)
		}

		r := &models.Retirement{
			AssetID:   b.AssetID,
			ProjectID: b.ProjectID,
			BatchID:   b.BatchID,
			Holder:    cmd.Caller,
			Amount:    cmd.Amount,
			RetiredAt: requestcontext.Now(txCtx),
		}
		total, err := s.retirements.AddRetirement(txCtx, r)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record retirement")
		}
		if b.ApplyRetirement(total) {
			if err := s.batches.UpdateBatch(txCtx, b); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update batch")
			}
		}
		if err := s.burn(txCtx, cmd.Caller, b.AssetID, cmd.Amount); err != nil {
			return err
		}
		result = &models.RetirementResult{Batch: b, Retirement: r, RetiredTotal: total}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, audit.EventCreditsRetired, cmd.Caller,
		"project_id", result.Batch.ProjectID,
		"batch_id", result.Batch.BatchID,
		"asset_id", result.Batch.AssetID,
		"holder", cmd.Caller,
		"amount", cmd.Amount,
		"retired_total", result.RetiredTotal,
		"batch_retired", result.Batch.Retired,
	)
	if s.metrics != nil {
		s.metrics.AddRetired(cmd.Amount)
	}
	return result, nil
}

// Collaborator calls, each wrapped in a span.

func (s *Service) mint(ctx context.Context, operator, to domain.Address, assetID domain.AssetID, amount uint64) (err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanAssetMint,
		tracer.Uint64(tracer.AttrAssetID, uint64(assetID)),
		tracer.Uint64(tracer.AttrAmount, amount),
		tracer.String(tracer.AttrHolder, to.String()),
	)
	defer func() { span.End(err) }()
	if err = s.assets.Mint(ctx, operator, to, assetID, amount); err != nil {
		return wrapAssetErr(err, "failed to mint credits")
	}
	return nil
}

func (s *Service) burn(ctx context.Context, holder domain.Address, assetID domain.AssetID, amount uint64) (err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanAssetBurn,
		tracer.Uint64(tracer.AttrAssetID, uint64(assetID)),
		tracer.Uint64(tracer.AttrAmount, amount),
		tracer.String(tracer.AttrHolder, holder.String()),
	)
	defer func() { span.End(err) }()
	if err = s.assets.Burn(ctx, holder, holder, assetID, amount); err != nil {
		return wrapAssetErr(err, "failed to burn credits")
	}
	return nil
}

func (s *Service) balanceOf(ctx context.Context, holder domain.Address, assetID domain.AssetID) (balance uint64, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanAssetBalance,
		tracer.Uint64(tracer.AttrAssetID, uint64(assetID)),
		tracer.String(tracer.AttrHolder, holder.String()),
	)
	defer func() { span.End(err) }()
	balance, err = s.assets.BalanceOf(ctx, holder, assetID)
	if err != nil {
		return 0, wrapAssetErr(err, "failed to read credit balance")
	}
	return balance, nil
}
