package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbonledger/pkg/domain"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, domain.DefaultAssetMultiplier, cfg.Ledger.AssetMultiplier)
	assert.Equal(t, uint64(DefaultFeeBps), cfg.Market.FeeBps)
	assert.Equal(t, SellerGateOpen, cfg.Market.SellerGate)
	assert.Equal(t, CancelSellerOnly, cfg.Market.CancelAuthority)
	assert.Equal(t, []domain.PaymentAsset{"USDC", "USDT"}, cfg.Market.PaymentAssets)
	assert.Equal(t, cfg.Ledger.AdminAddress, cfg.Market.FeeCollector)
	assert.Equal(t, domain.Address(DefaultOperatorAddress), cfg.Market.OperatorAddress)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ProjectCacheTTL)
	assert.Empty(t, cfg.Database.URL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("ASSET_ID_MULTIPLIER", "10_000_000")
	t.Setenv("MARKET_FEE_BPS", "100")
	t.Setenv("MARKET_SELLER_GATE", "verified_only")
	t.Setenv("MARKET_CANCEL_AUTHORITY", "admin_only")
	t.Setenv("MARKET_PAYMENT_ASSETS", "usdc, dai")
	t.Setenv("MARKET_FEE_COLLECTOR", "0x00000000000000000000000000000000000000FE")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, uint64(10_000_000), cfg.Ledger.AssetMultiplier)
	assert.Equal(t, uint64(100), cfg.Market.FeeBps)
	assert.Equal(t, SellerGateVerifiedOnly, cfg.Market.SellerGate)
	assert.Equal(t, CancelAdminOnly, cfg.Market.CancelAuthority)
	assert.Equal(t, []domain.PaymentAsset{"USDC", "DAI"}, cfg.Market.PaymentAssets)
	assert.Equal(t, domain.Address("0x00000000000000000000000000000000000000fe"), cfg.Market.FeeCollector)
}

func TestFromEnv_RejectsUnknownPolicies(t *testing.T) {
	t.Setenv("MARKET_SELLER_GATE", "sometimes")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "MARKET_SELLER_GATE")
}

func TestFromEnv_RejectsZeroOperator(t *testing.T) {
	t.Setenv("MARKET_OPERATOR_ADDRESS", string(domain.ZeroAddress))
	_, err := FromEnv()
	assert.ErrorContains(t, err, "MARKET_OPERATOR_ADDRESS")
}

func TestFromEnv_RejectsZeroAdmin(t *testing.T) {
	t.Setenv("ADMIN_ADDRESS", string(domain.ZeroAddress))
	_, err := FromEnv()
	assert.ErrorContains(t, err, "ADMIN_ADDRESS")
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("KAFKA_TOPIC=ledger.test\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("KAFKA_TOPIC") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ledger.test", cfg.Kafka.Topic)
}

func TestLoad_MissingEnvFileIsIgnored(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}
