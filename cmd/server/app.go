package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"carbonledger/internal/access"
	"carbonledger/internal/assets"
	"carbonledger/internal/audit"
	certadapters "carbonledger/internal/certification/adapters"
	certmetrics "carbonledger/internal/certification/metrics"
	certservice "carbonledger/internal/certification/service"
	certstore "carbonledger/internal/certification/store"
	ledgermetrics "carbonledger/internal/ledger/metrics"
	ledgerservice "carbonledger/internal/ledger/service"
	ledgerstore "carbonledger/internal/ledger/store"
	marketadapters "carbonledger/internal/marketplace/adapters"
	marketmetrics "carbonledger/internal/marketplace/metrics"
	marketmodels "carbonledger/internal/marketplace/models"
	marketservice "carbonledger/internal/marketplace/service"
	marketstore "carbonledger/internal/marketplace/store"
	"carbonledger/internal/platform/config"
	"carbonledger/internal/platform/database"
	"carbonledger/internal/platform/health"
	"carbonledger/internal/platform/jobs"
	"carbonledger/internal/platform/kafka/producer"
	redisclient "carbonledger/internal/platform/redis"
	"carbonledger/internal/platform/tracer"
	"carbonledger/migrations"
	"carbonledger/pkg/domain"
	"carbonledger/pkg/platform/circuit"
	"carbonledger/pkg/platform/tx"
)

const (
	auditBuffer    = 256
	auditMemoryCap = 10_000
	jobTimeout     = 30 * time.Second
	modeMemory     = "memory"
	modePostgres   = "postgres"
	statsJobName   = "stats"
)

type storeTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

// app holds the wired services shared by the router and the scheduler.
type app struct {
	mode      string
	tx        storeTx
	assets    *assets.Ledger
	access    *access.Service
	ledger    *ledgerservice.Service
	registry  *certservice.Service
	market    *marketservice.Service
	events    *audit.Publisher
	health    *health.Handler
	scheduler *jobs.Scheduler

	closers []func() error
}

// stores groups the per-component persistence for one mode.
type stores struct {
	tx     storeTx
	roles  access.Store
	audit  audit.Store
	ledger interface {
		ledgerservice.ProjectStore
		ledgerservice.BatchStore
		ledgerservice.RetirementStore
	}
	registry interface {
		certservice.CertifierStore
		certservice.CertificationStore
		certservice.OwnerStore
	}
	market interface {
		marketservice.ListingStore
		marketservice.SettingsStore
	}
}

func memoryStores() stores {
	ls, cs, ms := ledgerstore.New(), certstore.New(), marketstore.New()
	return stores{
		tx:       tx.NewMemory(),
		roles:    access.NewInMemoryStore(),
		audit:    audit.NewInMemoryStore(auditMemoryCap),
		ledger:   ls,
		registry: cs,
		market:   ms,
	}
}

func postgresStores(db *sql.DB) stores {
	ls, cs, ms := ledgerstore.NewPostgres(db), certstore.NewPostgres(db), marketstore.NewPostgres(db)
	return stores{
		tx:       tx.NewPostgres(db),
		roles:    access.NewPostgresStore(db),
		audit:    audit.NewPostgresStore(db),
		ledger:   ls,
		registry: cs,
		market:   ms,
	}
}

func newApp(ctx context.Context, cfg config.Config, log *slog.Logger, reg prometheus.Registerer) (*app, error) {
	a := &app{mode: modeMemory, scheduler: jobs.New(log, jobTimeout)}
	st := memoryStores()

	var pool *database.Pool
	if cfg.Database.URL != "" {
		var err error
		if pool, err = database.New(database.DefaultConfig(cfg.Database.URL), reg); err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := database.Migrate(ctx, pool.DB(), migrations.FS); err != nil {
			a.close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		a.mode = modePostgres
		st = postgresStores(pool.DB())
	}
	a.tx = st.tx
	a.health = health.New(a.mode)
	if pool != nil {
		a.health.RegisterCheck("postgres", pool.Health)
	}

	if err := a.wireEvents(cfg, log, st.audit); err != nil {
		a.close()
		return nil, err
	}

	cache, err := redisclient.New(cfg.Redis, reg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if cache != nil {
		a.closers = append(a.closers, cache.Close)
		a.health.RegisterCheck("redis", cache.Health)
	}

	if err := a.wireServices(ctx, cfg, log, reg, st, cache); err != nil {
		a.close()
		return nil, err
	}
	if err := a.wireJobs(cfg, pool, cache); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

// wireEvents builds the audit publisher, fanning out to Kafka when brokers
// are configured.
func (a *app) wireEvents(cfg config.Config, log *slog.Logger, store audit.Store) error {
	opts := []audit.PublisherOption{audit.WithPublisherLogger(log)}
	if cfg.Kafka.Brokers != "" {
		p, err := producer.New(producer.DefaultConfig(cfg.Kafka.Brokers), log)
		if err != nil {
			return fmt.Errorf("create kafka producer: %w", err)
		}
		a.closers = append(a.closers, p.Close)
		a.health.RegisterCheck("kafka", func(ctx context.Context) error {
			if !p.Healthy(ctx) {
				return errors.New("kafka brokers unreachable")
			}
			return nil
		})
		sink := audit.NewKafkaSink(p, cfg.Kafka.Topic, circuit.New("kafka-events"), log)
		opts = append(opts, audit.WithSink(sink), audit.WithAsyncBuffer(auditBuffer))
	}
	a.events = audit.NewPublisher(store, opts...)
	// Closed before the producer so buffered events still reach Kafka.
	a.closers = append(a.closers, func() error { a.events.Close(); return nil })
	return nil
}

func (a *app) wireServices(ctx context.Context, cfg config.Config, log *slog.Logger, reg prometheus.Registerer,
	st stores, cache *redisclient.Client) error {
	tr := tracer.NewOTel()

	a.assets = assets.New(assets.WithPaymentAssets(cfg.Market.PaymentAssets...))

	a.access = access.New(st.roles,
		access.WithLogger(log),
		access.WithAuditPublisher(a.events),
		access.WithTx(a.tx),
	)
	if err := a.access.Bootstrap(ctx, cfg.Ledger.AdminAddress); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	codec, err := domain.NewAssetCodec(cfg.Ledger.AssetMultiplier)
	if err != nil {
		return fmt.Errorf("asset codec: %w", err)
	}
	a.ledger, err = ledgerservice.New(st.ledger, st.ledger, st.ledger, a.assets, a.access,
		ledgerservice.WithLogger(log),
		ledgerservice.WithAuditPublisher(a.events),
		ledgerservice.WithMetrics(ledgermetrics.New(reg)),
		ledgerservice.WithTx(a.tx),
		ledgerservice.WithTracer(tr),
		ledgerservice.WithAssetCodec(codec),
		ledgerservice.WithMetadataBaseURI(cfg.Ledger.MetadataBaseURI),
	)
	if err != nil {
		return fmt.Errorf("create ledger service: %w", err)
	}

	certMetrics := certmetrics.New(reg)
	var lookup certadapters.Lookup = certadapters.NewLedgerProjectLookup(a.ledger)
	if cache != nil {
		var cacheOpts []certadapters.CacheOption
		if a.mode == modeMemory {
			// In-memory project ids restart at 1 with every process.
			cacheOpts = append(cacheOpts, certadapters.WithKeyScope(uuid.NewString()))
		}
		lookup = certadapters.NewCachedProjectLookup(lookup, cache, cfg.Redis.ProjectCacheTTL, certMetrics, tr, cacheOpts...)
	}
	a.registry, err = certservice.New(st.registry, st.registry, st.registry, lookup,
		certservice.WithLogger(log),
		certservice.WithAuditPublisher(a.events),
		certservice.WithMetrics(certMetrics),
		certservice.WithTx(a.tx),
	)
	if err != nil {
		return fmt.Errorf("create certification service: %w", err)
	}
	if err := a.registry.InitOwner(ctx, cfg.Ledger.AdminAddress); err != nil {
		return fmt.Errorf("init registry owner: %w", err)
	}

	a.market, err = marketservice.New(st.market, st.market,
		marketadapters.NewBalanceValidator(a.assets),
		marketadapters.NewRailSettler(a.assets, cfg.Market.OperatorAddress),
		a.access,
		marketservice.WithLogger(log),
		marketservice.WithAuditPublisher(a.events),
		marketservice.WithMetrics(marketmetrics.New(reg)),
		marketservice.WithTx(a.tx),
		marketservice.WithTracer(tr),
		marketservice.WithSellerGate(marketmodels.SellerGate(cfg.Market.SellerGate)),
		marketservice.WithCancelAuthority(marketmodels.CancelAuthority(cfg.Market.CancelAuthority)),
		marketservice.WithPaymentAssets(cfg.Market.PaymentAssets...),
	)
	if err != nil {
		return fmt.Errorf("create marketplace service: %w", err)
	}
	err = a.market.InitFeeConfig(ctx, marketmodels.FeeConfig{
		FeeBps:       cfg.Market.FeeBps,
		FeeCollector: cfg.Market.FeeCollector,
	})
	if err != nil {
		return fmt.Errorf("init market fees: %w", err)
	}
	return nil
}

func (a *app) wireJobs(cfg config.Config, pool *database.Pool, cache *redisclient.Client) error {
	stats := func(ctx context.Context) error {
		if pool != nil {
			pool.RecordPoolStats()
		}
		if cache != nil {
			cache.RecordPoolStats()
		}
		return errors.Join(a.ledger.RecordStats(ctx), a.market.RecordStats(ctx))
	}
	if err := a.scheduler.Add(statsJobName, cfg.Jobs.StatsSchedule, stats); err != nil {
		return err
	}
	a.scheduler.RunNow(statsJobName, stats)
	return nil
}

// close releases resources in reverse acquisition order.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]() //nolint:errcheck // best-effort teardown
	}
}
