// Command server runs the credit scoring API.
//
// main wires configuration, the model registry, storage, and the HTTP
// surface, then owns the process lifecycle. Business logic lives in the
// internal service packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"

	"altscore/internal/adspend"
	"altscore/internal/assessment"
	assessmenthandler "altscore/internal/assessment/handler"
	"altscore/internal/audit"
	httpapi "altscore/internal/http"
	"altscore/internal/ledger"
	"altscore/internal/model"
	"altscore/internal/platform/config"
	"altscore/internal/platform/httpserver"
	"altscore/internal/platform/logger"
	"altscore/internal/platform/metrics"
	"altscore/internal/platform/middleware"
	platformredis "altscore/internal/platform/redis"
	"altscore/internal/reference"
	"altscore/internal/resultcache"
	"altscore/internal/scoring"
	scoringhandler "altscore/internal/scoring/handler"
	scoringmetrics "altscore/internal/scoring/metrics"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Model artifact: the server refuses to start without a loadable model.
	registry := model.NewRegistry(cfg.ModelDir)
	classifier, meta, err := registry.Load(cfg.ModelVersion)
	if err != nil {
		return err
	}
	log.Info("model loaded", "version", meta.Version, "trained_at", meta.Timestamp)

	scoringMetrics := scoringmetrics.New()
	scoringOpts := []scoring.Option{
		scoring.WithLogger(log),
		scoring.WithMetrics(scoringMetrics),
		scoring.WithModelVersion(meta.Version),
	}

	// Reference population is optional; without it explanations fall back to
	// tier-only summaries.
	if cfg.ReferencePath != "" {
		population, err := reference.LoadCSV(cfg.ReferencePath)
		if err != nil {
			return err
		}
		log.Info("reference population loaded", "path", cfg.ReferencePath, "rows", population.Size())
		scoringOpts = append(scoringOpts, scoring.WithRanker(population))
	} else {
		log.Warn("no reference population configured, summaries degrade to tier only")
	}

	// Assessment storage: Postgres when configured, in-memory otherwise.
	var assessmentStore assessment.Store = assessment.NewMemoryStore()
	var db *sql.DB
	if cfg.PostgresDSN != "" {
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		pgStore := assessment.NewPostgresStore(db)
		if err := pgStore.Migrate(ctx); err != nil {
			return err
		}
		assessmentStore = pgStore
		log.Info("assessment store: postgres")
	} else {
		log.Info("assessment store: memory")
	}
	scoringOpts = append(scoringOpts, scoring.WithRecorder(assessmentStore))

	auditEmitter, auditCleanup, err := buildAuditTrail(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer auditCleanup()
	scoringOpts = append(scoringOpts, scoring.WithAuditEmitter(auditEmitter))

	// Result cache: Redis when configured, bounded in-process cache otherwise.
	var cache resultcache.Cache = resultcache.NewMemory(cfg.Cache.MaxEntries)
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache = resultcache.NewRedis(redisClient.Client)
		log.Info("result cache: redis")
	} else {
		log.Info("result cache: memory", "max_entries", cfg.Cache.MaxEntries)
	}

	svc := scoring.NewService(
		classifier,
		ledger.NewAggregator(cfg.Scoring.BurnRatePenalty),
		adspend.NewAggregator(cfg.Scoring.AvgConversionValue),
		scoringOpts...,
	)

	router := httpapi.NewRouter(httpapi.Deps{
		Scoring:     scoringhandler.New(svc, cache, cfg.Cache.TTL, log, scoringMetrics),
		Assessments: assessmenthandler.New(assessmentStore, log),
		Auth:        middleware.NewHS256Validator(cfg.JWTSigningKey),
		Logger:      log,
		Metrics:     metrics.New(),
	})

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting altscore server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

// buildAuditTrail selects the audit sink: Kafka when brokers are configured,
// then Postgres, then an in-process store fed by a background worker. The
// emitter is always fail-open.
func buildAuditTrail(ctx context.Context, cfg config.Config, log *slog.Logger) (scoring.AuditEmitter, func(), error) {
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := audit.NewKafkaPublisher(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, nil, err
		}
		log.Info("audit trail: kafka", "topic", cfg.Kafka.Topic)
		return audit.NewFailOpen(publisher, log), publisher.Close, nil
	}

	var store audit.Store = audit.NewMemoryStore()
	cleanup := func() {}
	if cfg.PostgresDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		pgStore := audit.NewPostgresStore(pool)
		if err := pgStore.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		store = pgStore
		cleanup = pool.Close
		log.Info("audit trail: postgres")
	} else {
		log.Info("audit trail: memory")
	}

	inbox := make(chan audit.Event, 256)
	worker := audit.NewWorker(store, inbox, log)
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	return audit.NewChannelEmitter(inbox), cleanup, nil
}
