package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/chainfoot/nft-fantasy/external/multiversx"
	"github.com/chainfoot/nft-fantasy/internal/config"
	"github.com/chainfoot/nft-fantasy/internal/domain/player"
	"github.com/chainfoot/nft-fantasy/internal/domain/roster"
	"github.com/chainfoot/nft-fantasy/internal/domain/user"
	"github.com/chainfoot/nft-fantasy/internal/infrastructure/repository/memory"
	"github.com/chainfoot/nft-fantasy/internal/infrastructure/repository/postgres"
	"github.com/chainfoot/nft-fantasy/internal/interfaces/httpapi"
	"github.com/chainfoot/nft-fantasy/internal/platform/cache"
	"github.com/chainfoot/nft-fantasy/internal/platform/logging"
	"github.com/chainfoot/nft-fantasy/internal/platform/resilience"
	"github.com/chainfoot/nft-fantasy/internal/usecase"
)

type repositories struct {
	users   user.Repository
	rosters roster.Repository
	players player.Repository
}

// NewHTTPServer wires repositories, the chain gateway and every service into
// a ready-to-run HTTP server. The returned cleanup closes the database pool.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = slog.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	chainClient := multiversx.NewClient(multiversx.ClientConfig{
		BaseURL:             cfg.ChainAPIBaseURL,
		MarketplaceContract: cfg.MarketplaceContract,
		Timeout:             cfg.ChainTimeout,
		MaxRetries:          cfg.ChainMaxRetries,
		Logger:              logging.Default().With("component", "multiversx"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ChainCircuitEnabled,
			FailureThreshold: cfg.ChainCircuitFailureCount,
			OpenTimeout:      cfg.ChainCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ChainCircuitHalfOpenMaxReq,
		},
	})

	pointsSvc := usecase.NewPointsService(repos.users, repos.rosters, repos.players, logger)
	feeSvc := usecase.NewFeeService(repos.rosters, chainClient, usecase.FeeConfig{
		PerSlotFee:        cfg.PerSlotFee,
		TeamNameCreateFee: cfg.TeamNameCreateFee,
		TeamNameEditFee:   cfg.TeamNameEditFee,
		GasReserve:        cfg.GasReserve,
	}, logger)
	paymentSvc := usecase.NewPaymentService(chainClient, usecase.PaymentConfig{
		ReceiverAddress: cfg.PaymentReceiverAddress,
		PollInterval:    cfg.ConfirmPollInterval,
		MaxAttempts:     cfg.ConfirmMaxAttempts,
	}, logger)
	teamSvc := usecase.NewTeamService(
		repos.users,
		repos.rosters,
		repos.players,
		feeSvc,
		paymentSvc,
		pointsSvc,
		logger,
	)
	adminSvc := usecase.NewAdminService(repos.players, repos.rosters, pointsSvc, logger)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}
	leaderboardSvc := usecase.NewLeaderboardService(repos.users, repos.rosters, repos.players, store, logger)
	marketSvc := usecase.NewMarketService(chainClient, cfg.NFTCollection, logger)

	handler := httpapi.NewHandler(teamSvc, feeSvc, adminSvc, leaderboardSvc, marketSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.AdminToken)

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

func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, func(), error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("DB_URL empty, using in-memory repositories", "seed_players", len(memory.SeedPlayers()))
		rosterRepo := memory.NewRosterRepository(nil)
		return repositories{
			users:   memory.NewUserRepository(nil, rosterRepo),
			rosters: rosterRepo,
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
		}, func() {}, nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return repositories{}, nil, err
	}
	logger.Info("database connected", "db_name", dbNameFromURL(cfg.DBURL))

	cleanup := func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("close database", "error", closeErr)
		}
	}

	return repositories{
		users:   postgres.NewUserRepository(db),
		rosters: postgres.NewRosterRepository(db),
		players: postgres.NewPlayerRepository(db),
	}, cleanup, nil
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return db, nil
}
