package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"carbonledger/pkg/domain"
	liststrings "carbonledger/pkg/platform/strings"
)

// SellerGate decides who may create marketplace listings.
type SellerGate string

const (
	SellerGateOpen         SellerGate = "open"
	SellerGateVerifiedOnly SellerGate = "verified_only"
)

// CancelAuthority decides who may cancel an active listing.
type CancelAuthority string

const (
	CancelSellerOnly CancelAuthority = "seller_only"
	CancelAdminOnly  CancelAuthority = "admin_only"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	MetricsAddr   string
	LogLevel      string
	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration
}

type Database struct {
	URL string
}

type Redis struct {
	URL             string
	PoolSize        int
	MinIdleConns    int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ProjectCacheTTL time.Duration
}

type Kafka struct {
	Brokers string
	Topic   string
}

// Ledger holds Credit Ledger parameters.
type Ledger struct {
	AssetMultiplier uint64
	MetadataBaseURI string
	AdminAddress    domain.Address
}

// Market holds Marketplace policy and fee parameters.
type Market struct {
	FeeBps          uint64
	FeeCollector    domain.Address
	SellerGate      SellerGate
	CancelAuthority CancelAuthority
	PaymentAssets   []domain.PaymentAsset
	// OperatorAddress is the identity the marketplace settles as. Buyers
	// approve it for payment and sellers for credits.
	OperatorAddress domain.Address
}

type Jobs struct {
	StatsSchedule string
}

// Config is the full process configuration.
type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	Kafka    Kafka
	Ledger   Ledger
	Market   Market
	Jobs     Jobs
}

// Default values.
const (
	DefaultAdminAddress    = "0x0000000000000000000000000000000000000001"
	DefaultOperatorAddress = "0x000000000000000000000000000000000000000a"
	DefaultFeeBps          = 250
	DefaultStatsSchedule   = "@every 1m"
)

// Load reads an optional .env file and then the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	var err error

	cfg.Server = Server{
		Addr:          getenv("LEDGER_ADDR", ":8080"),
		MetricsAddr:   getenv("METRICS_ADDR", ":9090"),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		JWTSigningKey: getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     getenv("JWT_ISSUER", "carbonledger"),
	}
	if cfg.Server.TokenTTL, err = durationEnv("TOKEN_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}

	cfg.Database = Database{URL: os.Getenv("DATABASE_URL")}

	cfg.Redis = Redis{
		URL:          os.Getenv("REDIS_URL"),
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	if cfg.Redis.ProjectCacheTTL, err = durationEnv("PROJECT_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}

	cfg.Kafka = Kafka{
		Brokers: os.Getenv("KAFKA_BROKERS"),
		Topic:   getenv("KAFKA_TOPIC", "carbonledger.events"),
	}

	if cfg.Ledger, err = ledgerFromEnv(); err != nil {
		return Config{}, err
	}
	if cfg.Market, err = marketFromEnv(cfg.Ledger.AdminAddress); err != nil {
		return Config{}, err
	}

	cfg.Jobs = Jobs{StatsSchedule: getenv("STATS_SCHEDULE", DefaultStatsSchedule)}
	return cfg, nil
}

func ledgerFromEnv() (Ledger, error) {
	multiplier, err := uintEnv("ASSET_ID_MULTIPLIER", domain.DefaultAssetMultiplier)
	if err != nil {
		return Ledger{}, err
	}
	admin, err := domain.ParseAddress(getenv("ADMIN_ADDRESS", DefaultAdminAddress))
	if err != nil {
		return Ledger{}, fmt.Errorf("ADMIN_ADDRESS: %w", err)
	}
	if admin.IsZero() {
		return Ledger{}, fmt.Errorf("ADMIN_ADDRESS cannot be the zero address")
	}
	return Ledger{
		AssetMultiplier: multiplier,
		MetadataBaseURI: getenv("METADATA_BASE_URI", "https://carbonledger.example/metadata/"),
		AdminAddress:    admin,
	}, nil
}

func marketFromEnv(admin domain.Address) (Market, error) {
	fee, err := uintEnv("MARKET_FEE_BPS", DefaultFeeBps)
	if err != nil {
		return Market{}, err
	}
	collector := admin
	if raw := os.Getenv("MARKET_FEE_COLLECTOR"); raw != "" {
		if collector, err = domain.ParseAddress(raw); err != nil {
			return Market{}, fmt.Errorf("MARKET_FEE_COLLECTOR: %w", err)
		}
	}

	gate := SellerGate(getenv("MARKET_SELLER_GATE", string(SellerGateOpen)))
	if gate != SellerGateOpen && gate != SellerGateVerifiedOnly {
		return Market{}, fmt.Errorf("MARKET_SELLER_GATE: unknown value %q", gate)
	}
	cancel := CancelAuthority(getenv("MARKET_CANCEL_AUTHORITY", string(CancelSellerOnly)))
	if cancel != CancelSellerOnly && cancel != CancelAdminOnly {
		return Market{}, fmt.Errorf("MARKET_CANCEL_AUTHORITY: unknown value %q", cancel)
	}

	operator, err := domain.ParseAddress(getenv("MARKET_OPERATOR_ADDRESS", DefaultOperatorAddress))
	if err != nil || operator.IsZero() {
		return Market{}, fmt.Errorf("MARKET_OPERATOR_ADDRESS: invalid value")
	}

	var assets []domain.PaymentAsset
	for _, raw := range liststrings.SplitList(getenv("MARKET_PAYMENT_ASSETS", "USDC,USDT")) {
		kind, err := domain.ParsePaymentAsset(raw)
		if err != nil {
			return Market{}, fmt.Errorf("MARKET_PAYMENT_ASSETS: %w", err)
		}
		assets = append(assets, kind)
	}

	return Market{
		FeeBps:          fee,
		FeeCollector:    collector,
		SellerGate:      gate,
		CancelAuthority: cancel,
		PaymentAssets:   assets,
		OperatorAddress: operator,
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func uintEnv(key string, fallback uint64) (uint64, error) {
	raw := strings.ReplaceAll(os.Getenv(key), "_", "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
