package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	redisdb "github.com/dmsforum/forum/internal/infrastructure/db/redis"
	infrahttp "github.com/dmsforum/forum/internal/infrastructure/http"
	"github.com/dmsforum/forum/internal/infrastructure/http/handlers"
	"github.com/dmsforum/forum/internal/infrastructure/rest"
	"github.com/dmsforum/forum/internal/pkg/config"
	"github.com/dmsforum/forum/internal/web"
	"github.com/dmsforum/forum/pkg/logger"
)

func main() {
	cfg := config.LoadFrontend()

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty()}).
		With().Str("service", "frontend").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}()

	authClient := rest.NewAuthClient(rest.Config{
		BaseURL:      cfg.AuthService.BaseURL(),
		APIKeyHeader: cfg.AuthService.APIKeyHeader,
		APIKey:       cfg.AuthService.APIKey,
		Timeout:      cfg.AuthService.Timeout,
		Retries:      cfg.AuthService.Retries,
	}, nil, log)

	backendClient := rest.NewBackendClient(rest.Config{
		BaseURL:      cfg.BackendService.BaseURL(),
		APIKeyHeader: cfg.BackendService.APIKeyHeader,
		APIKey:       cfg.BackendService.APIKey,
		Timeout:      cfg.BackendService.Timeout,
		Retries:      cfg.BackendService.Retries,
	}, nil, log)

	e, err := web.NewRouter(web.Dependencies{
		Sessions:     redisdb.NewSessionStore(rdb, cfg.SessionTTL),
		Auth:         authClient,
		Backend:      backendClient,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.CookieSecure,
		Checks:       []handlers.Check{{Name: "redis", Ping: redisdb.Pinger(rdb)}},
		Logger:       log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	if err := infrahttp.Run(ctx, e, ":"+cfg.Port, log); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
