package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonledger/internal/assets"
	"carbonledger/internal/marketplace/models"
	"carbonledger/pkg/domain"
	dErrors "carbonledger/pkg/domain-errors"
	"carbonledger/pkg/testutil"
)

const asset = domain.AssetID(1_000_001)

type stubBalances struct {
	held uint64
	err  error
}

func (s stubBalances) BalanceOf(context.Context, domain.Address, domain.AssetID) (uint64, error) {
	return s.held, s.err
}

type recordingSettler struct {
	operator domain.Address
	legs     []assets.Leg
}

func (r *recordingSettler) Settle(_ context.Context, operator domain.Address, legs ...assets.Leg) error {
	r.operator = operator
	r.legs = legs
	return nil
}

func TestBalanceValidator(t *testing.T) {
	listing := &models.Listing{Seller: testutil.Seller, AssetID: asset, Amount: 10}

	t.Run("enough balance", func(t *testing.T) {
		assert.NoError(t, NewBalanceValidator(stubBalances{held: 10}).ValidateListing(context.Background(), listing))
	})

	t.Run("short balance reports requested and available", func(t *testing.T) {
		err := NewBalanceValidator(stubBalances{held: 4}).ValidateListing(context.Background(), listing)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInsufficientBalance))
		requested, _ := dErrors.Detail(err, "requested")
		available, _ := dErrors.Detail(err, "available")
		assert.Equal(t, uint64(10), requested)
		assert.Equal(t, uint64(4), available)
	})

	t.Run("read failure is internal", func(t *testing.T) {
		err := NewBalanceValidator(stubBalances{err: errors.New("rail down")}).ValidateListing(context.Background(), listing)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func TestRailSettlerLegs(t *testing.T) {
	operator := testutil.AddressN(900)
	base := models.Settlement{
		Buyer:        testutil.Buyer,
		Seller:       testutil.Seller,
		FeeCollector: testutil.FeeCollector,
		AssetID:      asset,
		Amount:       3,
		PaymentAsset: domain.PaymentAsset("USDC"),
	}

	t.Run("fee leg between payment and credit", func(t *testing.T) {
		rec := &recordingSettler{}
		st := base
		st.Quote = models.Quote{Total: 300, Fee: 7, SellerPayment: 293}

		require.NoError(t, NewRailSettler(rec, operator).Settle(context.Background(), &st))

		assert.Equal(t, operator, rec.operator)
		assert.Equal(t, []assets.Leg{
			assets.PaymentLeg("USDC", testutil.Buyer, testutil.Seller, 293),
			assets.PaymentLeg("USDC", testutil.Buyer, testutil.FeeCollector, 7),
			assets.CreditLeg(testutil.Seller, testutil.Buyer, asset, 3),
		}, rec.legs)
	})

	t.Run("zero fee has no fee leg", func(t *testing.T) {
		rec := &recordingSettler{}
		st := base
		st.Quote = models.Quote{Total: 300, SellerPayment: 300}

		require.NoError(t, NewRailSettler(rec, operator).Settle(context.Background(), &st))
		assert.Len(t, rec.legs, 2)
	})
}

func TestRailSettlerIsAtomicOnLedger(t *testing.T) {
	ctx := context.Background()
	operator := testutil.AddressN(900)
	ledger := assets.New(assets.WithPaymentAssets("USDC"))
	require.NoError(t, ledger.Mint(ctx, testutil.Admin, testutil.Seller, asset, 2))
	require.NoError(t, ledger.SetApprovalForAll(ctx, testutil.Seller, operator, true))
	require.NoError(t, ledger.Deposit(ctx, testutil.Buyer, "USDC", 1_000))
	require.NoError(t, ledger.Approve(ctx, testutil.Buyer, operator, "USDC", 1_000))

	st := &models.Settlement{
		Buyer:        testutil.Buyer,
		Seller:       testutil.Seller,
		FeeCollector: testutil.FeeCollector,
		AssetID:      asset,
		Amount:       3,
		PaymentAsset: "USDC",
		Quote:        models.Quote{Total: 300, Fee: 7, SellerPayment: 293},
	}
	err := NewRailSettler(ledger, operator).Settle(ctx, st)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInsufficientBalance))

	paid, err := ledger.PaymentBalanceOf(ctx, testutil.Seller, "USDC")
	require.NoError(t, err)
	assert.Zero(t, paid)
	held, err := ledger.BalanceOf(ctx, testutil.Seller, asset)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), held)
}
