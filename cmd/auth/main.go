package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmsforum/forum/internal/authapi"
	"github.com/dmsforum/forum/internal/core/service"
	mongodb "github.com/dmsforum/forum/internal/infrastructure/db/mongo"
	infrahttp "github.com/dmsforum/forum/internal/infrastructure/http"
	"github.com/dmsforum/forum/internal/infrastructure/http/handlers"
	"github.com/dmsforum/forum/internal/pkg/config"
	"github.com/dmsforum/forum/pkg/logger"
)

func main() {
	cfg := config.LoadAuth()

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty()}).
		With().Str("service", "auth").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "forum-auth",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongodb.EnsureUserIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	authService := service.NewAuthService(mongodb.NewAuthRepository(db), cfg.JWTSecret, cfg.TokenTTL, log)

	if cfg.AdminUsername != "" {
		if err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to bootstrap administrator")
		}
	}
	if len(cfg.APIKeys) == 0 {
		log.Warn().Msg("no auth api keys configured, api key check disabled")
	}

	e := authapi.NewRouter(authapi.Dependencies{
		Auth:         authService,
		APIKeyHeader: cfg.APIKeyHeader,
		APIKeys:      cfg.APIKeys,
		Checks:       []handlers.Check{{Name: "mongo", Ping: mongodb.Pinger(client)}},
		Logger:       log,
	})

	if err := infrahttp.Run(ctx, e, ":"+cfg.Port, log); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
