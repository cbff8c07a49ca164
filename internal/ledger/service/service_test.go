package service

//go:generate mockgen -source=common.go -destination=mocks/mocks.go -package=mocks ProjectStore,BatchStore,RetirementStore,AssetLedger,Policy,StoreTx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"carbonledger/internal/audit"
	"carbonledger/internal/ledger/models"
	"carbonledger/internal/ledger/service/mocks"
	"carbonledger/internal/ledger/store"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/platform/tx"
	"carbonledger/pkg/testutil"
)

type ServiceSuite struct {
	suite.Suite
	ctx    context.Context
	ctrl   *gomock.Controller
	assets *mocks.MockAssetLedger
	policy *mocks.MockPolicy
	store  *store.InMemoryStore
	events *audit.InMemoryStore
	svc    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.assets = mocks.NewMockAssetLedger(s.ctrl)
	s.policy = mocks.NewMockPolicy(s.ctrl)
	s.store = store.New()
	s.events = audit.NewInMemoryStore(100)
	s.svc = s.newService()
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) newService(opts ...Option) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := []Option{
		WithLogger(logger),
		WithAuditPublisher(audit.NewPublisher(s.events)),
		WithTx(tx.NewMemory()),
		WithMetadataBaseURI("https://registry.example/meta"),
	}
	svc, err := New(s.store, s.store, s.store, s.assets, s.policy, append(base, opts...)...)
	s.Require().NoError(err)
	return svc
}

func (s *ServiceSuite) allow(principal domain.Address, role domain.Role) {
	s.policy.EXPECT().Require(gomock.Any(), principal, role).Return(nil).AnyTimes()
}

func (s *ServiceSuite) createProject(total uint64) *models.Project {
	p, err := s.svc.CreateProject(s.ctx, &CreateProjectCommand{
		Caller: testutil.Issuer,
		Metadata: models.ProjectMetadata{
			Name:        "  Kasigau Corridor ",
			Location:    "Kenya",
			Methodology: "VM0009",
			StartDate:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		TotalCredits: total,
	})
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) verifiedProject(total uint64) *models.Project {
	p := s.createProject(total)
	_, err := s.svc.VerifyProject(s.ctx, testutil.Verifier, p.ID)
	s.Require().NoError(err)
	return p
}

func (s *ServiceSuite) eventNames() []audit.EventName {
	events, err := s.events.Recent(s.ctx, 100)
	s.Require().NoError(err)
	names := make([]audit.EventName, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		names = append(names, events[i].Name)
	}
	return names
}

func (s *ServiceSuite) TestCreateProject() {
	s.allow(testutil.Issuer, domain.RoleIssuer)

	s.Run("allocates ids from 1 and records the caller as owner", func() {
		first := s.createProject(1_000)
		second := s.createProject(500)
		s.Equal(domain.ProjectID(1), first.ID)
		s.Equal(domain.ProjectID(2), second.ID)
		s.Equal(testutil.Issuer, first.Owner)
		s.Equal("Kasigau Corridor", first.Name)
		s.False(first.Verified)
		s.Zero(first.IssuedCredits)

		count, err := s.svc.ProjectCount(s.ctx)
		s.Require().NoError(err)
		s.Equal(uint64(2), count)
	})

	s.Run("accepts an end date before the start date", func() {
		p := s.createProject(1)
		s.True(p.EndDate.Before(p.StartDate))
	})

	s.Run("emits project_created with full metadata", func() {
		events, err := s.events.Recent(s.ctx, 1)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(audit.EventProjectCreated, events[0].Name)
		s.Equal("Kenya", events[0].Fields["location"])
		s.Equal("1", events[0].Fields["total_credits"])
	})

	s.Run("rejects zero ceiling and empty name", func() {
		_, err := s.svc.CreateProject(s.ctx, &CreateProjectCommand{Caller: testutil.Issuer, Metadata: models.ProjectMetadata{Name: "x"}})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
		_, err = s.svc.CreateProject(s.ctx, &CreateProjectCommand{Caller: testutil.Issuer, Metadata: models.ProjectMetadata{Name: "  "}, TotalCredits: 1})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *ServiceSuite) TestCreateProjectRequiresIssuer() {
	denied := dErrors.NewReason(dErrors.CodeUnauthorized, dErrors.ReasonMissingCapability, "missing role",
		"actor", testutil.Stranger, "role", domain.RoleIssuer)
	s.policy.EXPECT().Require(gomock.Any(), testutil.Stranger, domain.RoleIssuer).Return(denied)

	_, err := s.svc.CreateProject(s.ctx, &CreateProjectCommand{
		Caller: testutil.Stranger, Metadata: models.ProjectMetadata{Name: "x"}, TotalCredits: 10,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	count, err := s.svc.ProjectCount(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)
	s.Zero(s.events.Len())
}

func (s *ServiceSuite) TestVerifyProject() {
	s.allow(testutil.Issuer, domain.RoleIssuer)
	s.allow(testutil.Verifier, domain.RoleVerifier)

	s.Run("unknown project is not found", func() {
		_, err := s.svc.VerifyProject(s.ctx, testutil.Verifier, 42)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.True(dErrors.HasReason(err, dErrors.ReasonProjectNotFound))
	})

	s.Run("verifying twice is a terminal state", func() {
		p := s.createProject(10)
		verified, err := s.svc.VerifyProject(s.ctx, testutil.Verifier, p.ID)
		s.Require().NoError(err)
		s.True(verified.Verified)

		_, err = s.svc.VerifyProject(s.ctx, testutil.Verifier, p.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeTerminalState))
		s.True(dErrors.HasReason(err, dErrors.ReasonAlreadyVerified))
	})
}

func (s *ServiceSuite) TestIssueCredits() {
	s.allow(testutil.Issuer, domain.RoleIssuer)
	s.allow(testutil.Verifier, domain.RoleVerifier)

	s.Run("unverified project cannot issue", func() {
		p := s.createProject(100)
		_, err := s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, Amount: 1})
		s.True(dErrors.HasCode(err, dErrors.CodePrecondition))
		s.True(dErrors.HasReason(err, dErrors.ReasonNotVerified))
	})

	s.Run("unknown project is not found", func() {
		_, err := s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: 999, Amount: 1})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("zero amount is rejected", func() {
		_, err := s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: 1, Amount: 0})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("sequential batches mint to the owner under derived asset ids", func() {
		p := s.verifiedProject(100)
		base := uint64(p.ID) * domain.DefaultAssetMultiplier
		s.assets.EXPECT().Mint(gomock.Any(), testutil.Issuer, p.Owner, domain.AssetID(base), uint64(60)).Return(nil)
		s.assets.EXPECT().Mint(gomock.Any(), testutil.Issuer, p.Owner, domain.AssetID(base+1), uint64(40)).Return(nil)

		first, err := s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, Amount: 60, Vintage: 2023, SerialNumber: "KC-2023-001"})
		s.Require().NoError(err)
		s.Equal(domain.BatchID(0), first.BatchID)
		second, err := s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, Amount: 40, Vintage: 2024})
		s.Require().NoError(err)
		s.Equal(domain.BatchID(1), second.BatchID)

		fetched, err := s.svc.GetProject(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(uint64(100), fetched.IssuedCredits)

		s.Run("one unit over the ceiling fails with remaining headroom", func() {
			_, err := s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, Amount: 1})
			s.True(dErrors.HasCode(err, dErrors.CodeCapacityExceeded))
			s.True(dErrors.HasReason(err, dErrors.ReasonExceedsCeiling))
			requested, _ := dErrors.Detail(err, "requested")
			remaining, _ := dErrors.Detail(err, "remaining")
			s.Equal(uint64(1), requested)
			s.Equal(uint64(0), remaining)
		})
	})
}

func (s *ServiceSuite) TestIssueCreditsRollsBackWhenMintFails() {
	s.allow(testutil.Issuer, domain.RoleIssuer)
	s.allow(testutil.Verifier, domain.RoleVerifier)
	p := s.verifiedProject(100)
	before := len(s.eventNames())

	s.assets.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("ledger unavailable"))

	_, err := s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, Amount: 10})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	fetched, err := s.svc.GetProject(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Zero(fetched.IssuedCredits)
	s.Zero(fetched.BatchCount)
	batch, err := s.svc.GetBatch(s.ctx, p.ID, 0)
	s.Require().NoError(err)
	s.False(batch.Exists())
	s.Len(s.eventNames(), before, "failed issuance emits nothing")
}

func (s *ServiceSuite) TestBatchIndexExhausted() {
	s.allow(testutil.Issuer, domain.RoleIssuer)
	s.allow(testutil.Verifier, domain.RoleVerifier)
	codec, err := domain.NewAssetCodec(2)
	s.Require().NoError(err)
	s.svc = s.newService(WithAssetCodec(codec))

	p := s.verifiedProject(100)
	s.assets.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	for range 2 {
		_, err := s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, Amount: 1})
		s.Require().NoError(err)
	}
	_, err = s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, Amount: 1})
	s.True(dErrors.HasCode(err, dErrors.CodeCapacityExceeded))
	s.True(dErrors.HasReason(err, dErrors.ReasonBatchIndexExhausted))

	fetched, err := s.svc.GetProject(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(uint64(2), fetched.IssuedCredits)
}

func (s *ServiceSuite) TestRetireCredits() {
	s.allow(testutil.Issuer, domain.RoleIssuer)
	s.allow(testutil.Verifier, domain.RoleVerifier)
	p := s.verifiedProject(100)
	asset := domain.AssetID(uint64(p.ID) * domain.DefaultAssetMultiplier)
	s.assets.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any(), asset, uint64(10)).Return(nil)
	_, err := s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, Amount: 10})
	s.Require().NoError(err)

	s.Run("unknown batch is not found", func() {
		_, err := s.svc.RetireCredits(s.ctx, &RetireCreditsCommand{Caller: testutil.Buyer, ProjectID: p.ID, BatchID: 7, Amount: 1})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("insufficient balance reports requested and available", func() {
		s.assets.EXPECT().BalanceOf(gomock.Any(), testutil.Buyer, asset).Return(uint64(2), nil)
		_, err := s.svc.RetireCredits(s.ctx, &RetireCreditsCommand{Caller: testutil.Buyer, ProjectID: p.ID, BatchID: 0, Amount: 3})
		s.True(dErrors.HasCode(err, dErrors.CodeInsufficientBalance))
		available, _ := dErrors.Detail(err, "available")
		s.Equal(uint64(2), available)
	})

	s.Run("partial retirements accumulate until the batch is retired", func() {
		s.assets.EXPECT().BalanceOf(gomock.Any(), testutil.Issuer, asset).Return(uint64(10), nil)
		s.assets.EXPECT().Burn(gomock.Any(), testutil.Issuer, testutil.Issuer, asset, uint64(4)).Return(nil)
		res, err := s.svc.RetireCredits(s.ctx, &RetireCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, BatchID: 0, Amount: 4})
		s.Require().NoError(err)
		s.False(res.Batch.Retired)
		s.Equal(uint64(4), res.RetiredTotal)

		s.assets.EXPECT().BalanceOf(gomock.Any(), testutil.Issuer, asset).Return(uint64(6), nil)
		s.assets.EXPECT().Burn(gomock.Any(), testutil.Issuer, testutil.Issuer, asset, uint64(6)).Return(nil)
		res, err = s.svc.RetireCredits(s.ctx, &RetireCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, BatchID: 0, Amount: 6})
		s.Require().NoError(err)
		s.True(res.Batch.Retired)

		retired, err := s.svc.RetiredAmount(s.ctx, asset)
		s.Require().NoError(err)
		s.Equal(uint64(10), retired)
	})

	s.Run("a fully retired batch rejects further retirement", func() {
		s.assets.EXPECT().BalanceOf(gomock.Any(), testutil.Buyer, asset).Return(uint64(5), nil)
		_, err := s.svc.RetireCredits(s.ctx, &RetireCreditsCommand{Caller: testutil.Buyer, ProjectID: p.ID, BatchID: 0, Amount: 1})
		s.True(dErrors.HasCode(err, dErrors.CodeTerminalState))
		s.True(dErrors.HasReason(err, dErrors.ReasonAlreadyFullyRetired))
	})
}

func (s *ServiceSuite) TestRetireCreditsRollsBackWhenBurnFails() {
	s.allow(testutil.Issuer, domain.RoleIssuer)
	s.allow(testutil.Verifier, domain.RoleVerifier)
	p := s.verifiedProject(10)
	asset := domain.AssetID(uint64(p.ID) * domain.DefaultAssetMultiplier)
	s.assets.EXPECT().Mint(gomock.Any(), gomock.Any(), gomock.Any(), asset, uint64(10)).Return(nil)
	_, err := s.svc.IssueCredits(s.ctx, &IssueCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, Amount: 10})
	s.Require().NoError(err)

	s.assets.EXPECT().BalanceOf(gomock.Any(), testutil.Issuer, asset).Return(uint64(10), nil)
	s.assets.EXPECT().Burn(gomock.Any(), gomock.Any(), gomock.Any(), asset, uint64(10)).Return(errors.New("burn failed"))
	_, err = s.svc.RetireCredits(s.ctx, &RetireCreditsCommand{Caller: testutil.Issuer, ProjectID: p.ID, BatchID: 0, Amount: 10})
	s.Require().Error(err)

	retired, err := s.svc.RetiredAmount(s.ctx, asset)
	s.Require().NoError(err)
	s.Zero(retired)
	batch, err := s.svc.GetBatch(s.ctx, p.ID, 0)
	s.Require().NoError(err)
	s.False(batch.Retired)
}

func (s *ServiceSuite) TestQueriesReturnZeroValuesForUnknownIDs() {
	p, err := s.svc.GetProject(s.ctx, 12)
	s.Require().NoError(err)
	s.False(p.Exists())
	s.Empty(p.Name)

	b, err := s.svc.GetBatch(s.ctx, 12, 0)
	s.Require().NoError(err)
	s.False(b.Exists())

	batches, err := s.svc.ListBatches(s.ctx, 12)
	s.Require().NoError(err)
	s.Empty(batches)
}

func (s *ServiceSuite) TestAssetMetadata() {
	id, err := s.svc.AssetID(7, 3)
	s.Require().NoError(err)
	s.Equal(domain.AssetID(7_000_003), id)

	meta := s.svc.AssetMetadata(id)
	s.Equal(domain.ProjectID(7), meta.ProjectID)
	s.Equal(domain.BatchID(3), meta.BatchID)
	s.Equal("https://registry.example/meta/projects/7/batches/3", meta.URI)
}
