package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nde-labs/campusecho/internal/adapters/cache"
	eventadapter "github.com/nde-labs/campusecho/internal/adapters/events"
	"github.com/nde-labs/campusecho/internal/adapters/feeds"
	httpadapter "github.com/nde-labs/campusecho/internal/adapters/http"
	"github.com/nde-labs/campusecho/internal/adapters/postgres"
	"github.com/nde-labs/campusecho/internal/application"
	"github.com/nde-labs/campusecho/internal/domain"
	"github.com/nde-labs/campusecho/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	outbox     *eventadapter.OutboxWorker
	sync       *eventadapter.SyncWorker
	streams    []*feeds.WebsocketProvider
	cleanupFn  func(context.Context)
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := postgres.RunMigrations(ctx, db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	redisClient, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	cacheStore := cache.NewRedisCache(redisClient)

	providers, streams, err := buildProviders(cfg.FeedSources, logger)
	if err != nil {
		_ = redisClient.Close()
		_ = sqlDB.Close()
		return nil, err
	}

	stores := postgres.NewStores(db)
	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName:        cfg.ServiceID,
			StatusWriteRetries: cfg.StatusWriteRetries,
			FeedCacheTTL:       cfg.FeedCacheTTL,
			FeedPageSize:       cfg.FeedPageSize,
		},
		Users:       stores.Users,
		Posts:       stores.Posts,
		Reports:     stores.Reports,
		Validations: stores.Validations,
		UnitOfWork:  postgres.NewUnitOfWork(db),
		Outbox:      stores.Outbox,
		Cache:       cacheStore,
		Providers:   providers,
	})

	auth := httpadapter.NewAuthenticator(cfg.JWTSecret, logger)
	handler := httpadapter.NewHandler(service, logger)
	router := httpadapter.NewRouter(handler, auth, logger)
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	publisher := ports.EventPublisher(eventadapter.NewLoggingPublisher(logger))
	var closers []io.Closer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, pubErr := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
			"post.status_changed": cfg.KafkaTopicPostEvents,
			"post.quarantined":    cfg.KafkaTopicPostEvents,
			"post.removed":        cfg.KafkaTopicPostEvents,
			"post.ingested":       cfg.KafkaTopicPostEvents,
			"user.trust_adjusted": cfg.KafkaTopicTrustEvents,
			"report.validated":    cfg.KafkaTopicReportEvents,
			"report.rejected":     cfg.KafkaTopicReportEvents,
		})
		if pubErr != nil {
			logger.WarnContext(ctx, "kafka publisher disabled, using logging publisher", "error", pubErr)
		} else {
			publisher = kafkaPublisher
			closers = append(closers, kafkaPublisher)
		}
	}
	outbox := eventadapter.NewOutboxWorker(logger, stores.Outbox, publisher, cfg.OutboxPollInterval, cfg.OutboxBatchSize)
	syncWorker := eventadapter.NewSyncWorker(logger, service, cfg.SyncInterval)

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		outbox:     outbox,
		sync:       syncWorker,
		streams:    streams,
		cleanupFn: func(ctx context.Context) {
			for _, closer := range closers {
				_ = closer.Close()
			}
			_ = redisClient.Close()
			_ = sqlDB.Close()
		},
	}, nil
}

func buildProviders(sources []FeedSource, logger *slog.Logger) ([]ports.ExternalInformationProvider, []*feeds.WebsocketProvider, error) {
	providers := make([]ports.ExternalInformationProvider, 0, len(sources))
	var streams []*feeds.WebsocketProvider
	for _, src := range sources {
		var establishment *domain.Establishment
		if src.Establishment != "" {
			if !domain.IsValidEstablishment(src.Establishment) {
				return nil, nil, fmt.Errorf("feed source %q: unknown establishment %q", src.Name, src.Establishment)
			}
			e := domain.Establishment(src.Establishment)
			establishment = &e
		}
		switch src.Kind {
		case "http":
			providers = append(providers, feeds.NewHTTPProvider(src.Name, src.URL, establishment, 15*time.Second))
		case "websocket":
			stream := feeds.NewWebsocketProvider(src.Name, src.URL, establishment, logger)
			providers = append(providers, stream)
			streams = append(streams, stream)
		default:
			return nil, nil, fmt.Errorf("feed source %q: unknown kind %q", src.Name, src.Kind)
		}
	}
	return providers, streams, nil
}

func (r *Runtime) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 2)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.outbox.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.sync.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.ErrorContext(ctx, "sync worker stopped", "error", err)
		}
	}()
	for _, stream := range r.streams {
		go func(s *feeds.WebsocketProvider) {
			if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				r.logger.ErrorContext(ctx, "stream provider stopped",
					"source", s.SourceName(), "error", err)
			}
		}(stream)
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.cleanupFn(shutdownCtx)
	return nil
}
