package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/domain/invite"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/notify"
	cacherepo "github.com/riskibarqy/pickem-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pickem-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type repositories struct {
	league league.Repository
	invite invite.Repository
	pick   pick.Repository
	event  pick.EventRepository
}

// NewHTTPServer wires repositories, services and the HTTP router. The
// returned cleanup closes the database handle when Postgres is in use.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	inviteCache := cache.NewStore(cfg.CacheTTL)
	principalCache := cache.NewStore(cfg.CacheTTL)

	notifier := notify.NewWebhookNotifier(notify.WebhookConfig{
		URL:     cfg.WebhookURL,
		Token:   cfg.WebhookToken,
		Timeout: cfg.WebhookTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.WebhookCircuitEnabled,
			FailureThreshold: cfg.WebhookCircuitFailureCount,
			OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMax,
		},
	}, logger)

	leagueSvc := usecase.NewLeagueService(repos.league, repos.invite, repos.pick, idgen.NewRandomGenerator(), logger)
	inviteSvc := usecase.NewInviteService(repos.league, repos.invite, notifier, inviteCache, idgen.NewRandomGenerator(), logger)
	pickSvc := usecase.NewPickService(repos.league, repos.pick, repos.event, logger)
	standingsSvc := usecase.NewStandingsService(repos.league, repos.pick, repos.event, logger)

	anubisClient := anubis.NewClient(
		&http.Client{Timeout: cfg.AnubisTimeout},
		anubis.Config{
			BaseURL:        cfg.AnubisBaseURL,
			IntrospectPath: cfg.AnubisIntrospectPath,
			Timeout:        cfg.AnubisTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AnubisCircuitEnabled,
				FailureThreshold: cfg.AnubisCircuitFailureCount,
				OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
			},
		},
		principalCache,
		logger,
	)

	handler := httpapi.NewHandler(leagueSvc, inviteSvc, pickSvc, standingsSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	if cfg.UseInMemoryStorage() {
		logger.Info("storage mode", "mode", "memory", "reason", "DB_URL is empty")
		return repositories{
			league: memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMembers()),
			invite: memory.NewInviteRepository(),
			pick:   memory.NewPickRepository(),
			event:  memory.NewEventRepository(memory.SeedEvents()),
		}, func() error { return nil }, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, nil, err
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}

	repos := repositories{
		league: postgres.NewLeagueRepository(db),
		invite: postgres.NewInviteRepository(db),
		pick:   postgres.NewPickRepository(db),
		event:  postgres.NewEventRepository(db),
	}
	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.league = cacherepo.NewLeagueRepository(repos.league, store)
		repos.event = cacherepo.NewEventRepository(repos.event, store)
	}

	logger.Info("storage mode", "mode", "postgres", "db", dbNameFromURL(cfg.DBURL), "cache_enabled", cfg.CacheEnabled)

	return repos, db.Close, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
