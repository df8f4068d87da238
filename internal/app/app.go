// Package app assembles the bounded contexts from configuration. Both the
// HTTP server and the operator CLI build on it.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"

	alertHandler "feder/internal/alerts/handler"
	alertMetrics "feder/internal/alerts/metrics"
	alertService "feder/internal/alerts/service"
	alertStore "feder/internal/alerts/store"
	caseHandler "feder/internal/cases/handler"
	caseMetrics "feder/internal/cases/metrics"
	caseService "feder/internal/cases/service"
	caseStore "feder/internal/cases/store"
	logHandler "feder/internal/deliverylogs/handler"
	logMetrics "feder/internal/deliverylogs/metrics"
	logService "feder/internal/deliverylogs/service"
	logStore "feder/internal/deliverylogs/store"
	"feder/internal/letters/dedup"
	letterHandler "feder/internal/letters/handler"
	"feder/internal/letters/mailer"
	letterMetrics "feder/internal/letters/metrics"
	letterModels "feder/internal/letters/models"
	letterService "feder/internal/letters/service"
	letterStore "feder/internal/letters/store"
	monitoringHandler "feder/internal/monitorings/handler"
	monitoringService "feder/internal/monitorings/service"
	monitoringStore "feder/internal/monitorings/store"
	"feder/internal/platform/blob"
	"feder/internal/platform/blob/fs"
	"feder/internal/platform/blob/s3"
	"feder/internal/platform/config"
	"feder/internal/platform/jwttoken"
	"feder/internal/platform/kafka"
	"feder/internal/platform/metrics"
	"feder/internal/platform/postgres"
	"feder/internal/platform/redis"
	recordHandler "feder/internal/records/handler"
	recordService "feder/internal/records/service"
	recordStore "feder/internal/records/store"
	"feder/internal/virusscan/engine"
	scanHandler "feder/internal/virusscan/handler"
	scanMetrics "feder/internal/virusscan/metrics"
	scanService "feder/internal/virusscan/service"
	scanStore "feder/internal/virusscan/store"
	scanWorker "feder/internal/virusscan/worker"
	httptransport "feder/internal/transport/http"
	id "feder/pkg/domain"
	"feder/pkg/platform/outbox"
	outboxMemory "feder/pkg/platform/outbox/store/memory"
	outboxPostgres "feder/pkg/platform/outbox/store/postgres"
	outboxWorker "feder/pkg/platform/outbox/worker"
	"feder/pkg/platform/tx"
)

// letterStorage is what the letters and virus-scan contexts need from the
// letter store together.
type letterStorage interface {
	letterService.Store
	FindAttachmentByID(ctx context.Context, attachmentID id.AttachmentID) (*letterModels.Attachment, error)
}

type stores struct {
	monitorings monitoringService.Store
	cases       caseService.Store
	records     recordService.Store
	letters     letterStorage
	logs        logService.Store
	scans       scanService.Store
	alerts      alertService.Store
	outbox      outbox.Store
	runner      tx.Runner
}

// Services exposes the domain services for callers outside HTTP.
type Services struct {
	Monitorings *monitoringService.Service
	Cases       *caseService.Service
	Records     *recordService.Service
	Letters     *letterService.Service
	Logs        *logService.Service
	Scans       *scanService.Service
	Alerts      *alertService.Service
}

// Handlers are the HTTP adapters for each context.
type Handlers struct {
	Monitorings *monitoringHandler.Handler
	Cases       *caseHandler.Handler
	Records     *recordHandler.Handler
	Letters     *letterHandler.Handler
	Logs        *logHandler.Handler
	Scans       *scanHandler.Handler
	Alerts      *alertHandler.Handler
}

// App owns every long-lived resource the process opened.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Services Services
	Handlers Handlers
	Tokens   *jwttoken.JWTService

	// DB and Redis are nil when the in-memory backends are in use.
	DB    *sql.DB
	Redis *redis.Client

	kafka  *kgo.Client
	outbox outbox.Store
	runner tx.Runner
}

// New opens the configured backends and wires the services over them.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
		Tokens: jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer),
	}

	st, err := a.openStores(ctx)
	if err != nil {
		return nil, err
	}
	a.outbox = st.outbox
	a.runner = st.runner

	blobs, err := openBlobs(ctx, cfg.Blob)
	if err != nil {
		a.Close()
		return nil, err
	}

	var dd letterService.Dedup = dedup.NewMemory()
	a.Redis, err = redis.New(ctx, cfg.Redis)
	if err != nil {
		a.Close()
		return nil, err
	}
	if a.Redis != nil {
		if err := a.Redis.RegisterPoolMetrics(prometheus.DefaultRegisterer); err != nil {
			a.Close()
			return nil, err
		}
		dd = dedup.NewRedis(a.Redis.Client)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		a.kafka, err = kafka.NewClient(ctx, cfg.Kafka)
		if err != nil {
			a.Close()
			return nil, err
		}
		if err := kafka.EnsureTopics(ctx, a.kafka, cfg.Kafka.Partitions, cfg.Kafka.ReplicationFactor,
			cfg.Kafka.RecordsTopic, cfg.Kafka.AlertsTopic); err != nil {
			a.Close()
			return nil, err
		}
	}

	eng, err := engine.New(cfg.VirusScan.Engine)
	if err != nil {
		a.Close()
		return nil, err
	}
	sm := scanMetrics.New()
	guarded := engine.WithBreaker(eng, engine.BreakerSettings{
		ConsecutiveFailures: cfg.VirusScan.BreakerFailures,
		OpenDelay:           cfg.VirusScan.BreakerOpenDelay,
	}, logger, sm.ObserveBreaker)

	svc := &a.Services
	svc.Monitorings = monitoringService.New(st.monitorings, monitoringService.WithLogger(logger))
	svc.Cases = caseService.New(st.cases, svc.Monitorings, cfg.Cases.EmailDomain,
		caseService.WithLogger(logger),
		caseService.WithMetrics(caseMetrics.New()),
	)
	svc.Records = recordService.New(st.records, st.outbox, st.runner, cfg.Kafka.RecordsTopic,
		recordService.WithLogger(logger))
	svc.Scans = scanService.New(st.scans, st.letters, blobs, guarded,
		scanService.WithLogger(logger),
		scanService.WithMetrics(sm),
		scanService.WithBatchSize(cfg.VirusScan.BatchSize),
	)

	letterOpts := []letterService.Option{
		letterService.WithLogger(logger),
		letterService.WithMetrics(letterMetrics.New()),
		letterService.WithScans(svc.Scans),
		letterService.WithDedup(dd, cfg.Webhook.DedupTTL),
	}
	if cfg.SMTP.Addr != "" {
		letterOpts = append(letterOpts, letterService.WithMailer(mailer.NewSMTP(cfg.SMTP)))
	}
	svc.Letters = letterService.New(st.letters, blobs, svc.Cases, svc.Monitorings, svc.Records, st.runner, letterOpts...)

	svc.Logs = logService.New(st.logs, svc.Cases, svc.Letters, st.runner,
		logService.WithLogger(logger),
		logService.WithMetrics(logMetrics.New()),
	)
	svc.Alerts = alertService.New(st.alerts, svc.Letters, svc.Cases, svc.Monitorings, st.outbox, st.runner,
		cfg.Kafka.AlertsTopic,
		alertService.WithLogger(logger),
		alertService.WithMetrics(alertMetrics.New()),
	)

	a.Handlers = Handlers{
		Monitorings: monitoringHandler.New(svc.Monitorings, logger),
		Cases:       caseHandler.New(svc.Cases, logger),
		Records:     recordHandler.New(svc.Records, logger),
		Letters:     letterHandler.New(svc.Letters, logger, cfg.Webhook.MaxBodyBytes),
		Logs:        logHandler.New(svc.Logs, logger, cfg.Webhook.MaxBodyBytes),
		Scans:       scanHandler.New(svc.Scans),
		Alerts:      alertHandler.New(svc.Alerts, logger),
	}
	return a, nil
}

func (a *App) openStores(ctx context.Context) (*stores, error) {
	if a.Config.Database.URL == "" {
		a.Logger.WarnContext(ctx, "no database configured, using in-memory stores")
		return &stores{
			monitorings: monitoringStore.NewInMemoryStore(),
			cases:       caseStore.NewInMemoryStore(),
			records:     recordStore.NewInMemoryStore(),
			letters:     letterStore.NewInMemoryStore(),
			logs:        logStore.NewInMemoryStore(),
			scans:       scanStore.NewInMemoryStore(),
			alerts:      alertStore.NewInMemoryStore(),
			outbox:      outboxMemory.NewInMemoryStore(),
			runner:      tx.NewLocalRunner(),
		}, nil
	}

	db, err := postgres.Open(ctx, a.Config.Database)
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	a.DB = db
	return &stores{
		monitorings: monitoringStore.NewPostgres(db),
		cases:       caseStore.NewPostgres(db),
		records:     recordStore.NewPostgres(db),
		letters:     letterStore.NewPostgres(db),
		logs:        logStore.NewPostgres(db),
		scans:       scanStore.NewPostgres(db),
		alerts:      alertStore.NewPostgres(db),
		outbox:      outboxPostgres.New(db),
		runner:      tx.NewSQLRunner(db),
	}, nil
}

func openBlobs(ctx context.Context, cfg config.BlobConfig) (blob.Store, error) {
	if cfg.Backend == "s3" {
		store, err := s3.New(cfg.S3)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := fs.New(cfg.FSRoot)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Router mounts every context's routes. m may be nil to skip HTTP metrics.
func (a *App) Router(m *metrics.Metrics) http.Handler {
	h := a.Handlers
	return httptransport.NewRouter(httptransport.Config{
		Logger:            a.Logger,
		Tokens:            a.Tokens,
		Metrics:           m,
		Health:            a,
		Webhook:           h.Letters,
		WebhookSecret:     a.Config.Webhook.Secret,
		WebhookRateLimit:  a.Config.Webhook.RateLimit,
		WebhookRateWindow: a.Config.Webhook.RateWindow,
		Public: []httptransport.Mount{
			h.Cases.RegisterPublic,
			h.Records.Register,
			h.Letters.RegisterPublic,
			h.Alerts.RegisterPublic,
		},
		Admin: []httptransport.Mount{
			h.Monitorings.Register,
			h.Cases.RegisterAdmin,
			h.Letters.RegisterAdmin,
			h.Logs.RegisterAdmin,
			h.Alerts.RegisterAdmin,
			h.Scans.RegisterAdmin,
		},
	})
}

// OutboxWorker returns the publisher loop, or nil when no brokers are
// configured.
func (a *App) OutboxWorker() *outboxWorker.Worker {
	if a.kafka == nil {
		return nil
	}
	return outboxWorker.New(a.outbox, kafka.NewPublisher(a.kafka), a.runner, a.Logger,
		outboxWorker.WithInterval(a.Config.Kafka.PublishInterval),
		outboxWorker.WithBatchSize(a.Config.Kafka.BatchSize),
	)
}

func (a *App) ScanWorker() *scanWorker.Worker {
	return scanWorker.New(a.Services.Scans, a.Logger, a.Config.VirusScan.Interval)
}

// Health reports whether the external backends answer.
func (a *App) Health(ctx context.Context) error {
	var errs []error
	if a.DB != nil {
		if err := a.DB.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Health(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) Close() {
	if a.kafka != nil {
		a.kafka.Close()
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}
