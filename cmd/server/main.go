// @title        Astro Consulting Platform API
// @version      1.0
// @description  Multi-tenant astrological consulting platform: clients, natal
// @description  charts, transits, and solar returns behind JWT authentication.
// @BasePath     /
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/astroconsulta/platform-api/docs"
	"github.com/astroconsulta/platform-api/internal/api"
	"github.com/astroconsulta/platform-api/internal/core/service"
	"github.com/astroconsulta/platform-api/internal/infrastructure/config"
	mongodb "github.com/astroconsulta/platform-api/internal/infrastructure/db/mongo"
	redisdb "github.com/astroconsulta/platform-api/internal/infrastructure/db/redis"
	"github.com/astroconsulta/platform-api/internal/infrastructure/ephemeris"
	"github.com/astroconsulta/platform-api/internal/infrastructure/http/handlers"
	"github.com/astroconsulta/platform-api/internal/infrastructure/interpreter"
	"github.com/astroconsulta/platform-api/internal/infrastructure/queue"
	"github.com/astroconsulta/platform-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:         cfg.Redis.Addr,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	chartRepo := mongodb.NewNatalChartRepository(db)
	transitRepo := mongodb.NewTransitRepository(db)
	solarReturnRepo := mongodb.NewSolarReturnRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{userRepo, clientRepo, chartRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Adapters ---
	engine := ephemeris.NewClient(cfg.Ephemeris.BaseURL, cfg.Ephemeris.Timeout, log)
	interp := interpreter.NewYAMLInterpreter(cfg.TranslationsDir, log)
	revoker := redisdb.NewTokenRevoker(rdb)

	auditWriter := queue.NewAuditWriter(cfg.AuditWorkers, auditRepo, log)
	auditWriter.Start(ctx)

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(userRepo, tokens, revoker, auditWriter, log)
	clientService := service.NewClientService(clientRepo, auditWriter, log)
	chartService := service.NewChartService(clientRepo, chartRepo, transitRepo, solarReturnRepo,
		engine, interp, auditWriter, log)

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		AuthService: authService,
		ClientSvc:   clientService,
		ChartSvc:    chartService,
		Users:       userRepo,
		Health:      handlers.NewHealthHandler(),
		Readiness:   handlers.NewHealthDependenciesHandler(db, rdb, engine),
		JWTSecret:   cfg.JWTSecret,
		Log:         log,
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}
