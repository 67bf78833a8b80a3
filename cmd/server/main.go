package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpAdapter "github.com/ivlev/moneta/internal/adapter/http"
	"github.com/ivlev/moneta/internal/adapter/http/handler"
	"github.com/ivlev/moneta/internal/adapter/http/middleware"
	"github.com/ivlev/moneta/internal/adapter/oracle"
	postgresRepo "github.com/ivlev/moneta/internal/adapter/repository/postgres"
	redisRepo "github.com/ivlev/moneta/internal/adapter/repository/redis"
	"github.com/ivlev/moneta/internal/domain"
	"github.com/ivlev/moneta/internal/infrastructure/auth"
	"github.com/ivlev/moneta/internal/infrastructure/config"
	"github.com/ivlev/moneta/internal/infrastructure/logger"
	"github.com/ivlev/moneta/internal/infrastructure/metrics"
	"github.com/ivlev/moneta/internal/infrastructure/postgres"
	"github.com/ivlev/moneta/internal/infrastructure/redis"
	"github.com/ivlev/moneta/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Repositories and infrastructure
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	operationRepo := postgresRepo.NewOperationRepository(pool)
	refGen := postgresRepo.NewReferenceGenerator()
	retrier := postgresRepo.NewRetrier(log)
	rateCache := redisRepo.NewCache(redisClient)

	oracleClient := oracle.NewClient(cfg.OracleURL, cfg.OracleTimeout, log, m)
	converter := usecase.NewConversionUseCase(oracleClient, rateCache, cfg.RateCacheTTL)

	// Use cases wrapped with permission checks
	accountUC := usecase.NewAuthorizedAccountService(
		usecase.NewAccountUseCase(accountRepo), accountRepo)
	replenishmentUC := usecase.NewAuthorizedReplenishmentService(
		usecase.NewReplenishmentUseCase(txManager, accountRepo, operationRepo, converter, refGen, retrier), accountRepo)
	withdrawalUC := usecase.NewAuthorizedWithdrawalService(
		usecase.NewWithdrawalUseCase(txManager, accountRepo, operationRepo, converter, refGen, retrier), accountRepo)
	transferUC := usecase.NewAuthorizedTransferService(
		usecase.NewTransferUseCase(txManager, accountRepo, operationRepo, converter, refGen, retrier), accountRepo)
	operationUC := usecase.NewAuthorizedOperationService(
		usecase.NewOperationUseCase(operationRepo), operationRepo, accountRepo)

	// Handlers
	accountHandler := handler.NewAccountHandler(accountUC, m)
	operationHandler := handler.NewOperationHandler(replenishmentUC, withdrawalUC, transferUC, operationUC, m)
	rateHandler := handler.NewRateHandler(converter)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   accountHandler,
		OperationHandler: operationHandler,
		RateHandler:      rateHandler,
		HealthHandler:    healthHandler,
		Identity:         identityMiddleware(cfg, m),
		Logger:           log,
		Metrics:          m,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// identityMiddleware picks the identity source for API routes: JWT
// verification when auth is enabled, otherwise a static identity with
// full grants for local development.
func identityMiddleware(cfg *config.Config, m *metrics.Metrics) func(http.Handler) http.Handler {
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		return middleware.AuthMiddleware(auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration), m)
	}

	return middleware.StaticIdentity(domain.Identity{
		Grants: []domain.Grant{
			domain.GrantAccountViewAny,
			domain.GrantAccountEditAny,
			domain.GrantOperationViewAny,
			domain.GrantOperationEditAny,
		},
	})
}
