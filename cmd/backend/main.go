// @title           Forum Backend API
// @version         1.0
// @description     Discussions, answers, comments and moderation reports.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in                         header
// @name                       X-ApiKey-Backend
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmsforum/forum/internal/api"
	"github.com/dmsforum/forum/internal/api/middleware"
	"github.com/dmsforum/forum/internal/core/service"
	mongodb "github.com/dmsforum/forum/internal/infrastructure/db/mongo"
	infrahttp "github.com/dmsforum/forum/internal/infrastructure/http"
	"github.com/dmsforum/forum/internal/infrastructure/http/handlers"
	"github.com/dmsforum/forum/internal/infrastructure/rest"
	"github.com/dmsforum/forum/internal/pkg/config"
	"github.com/dmsforum/forum/pkg/logger"
)

func main() {
	cfg := config.LoadBackend()

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty()}).
		With().Str("service", "backend").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "forum-backend",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongodb.EnsureForumIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	authClient := rest.NewAuthClient(rest.Config{
		BaseURL:      cfg.AuthService.BaseURL(),
		APIKeyHeader: cfg.AuthService.APIKeyHeader,
		APIKey:       cfg.AuthService.APIKey,
		Timeout:      cfg.AuthService.Timeout,
		Retries:      cfg.AuthService.Retries,
	}, nil, log)

	discussions := mongodb.NewDiscussionRepository(db)
	answers := mongodb.NewAnswerRepository(db)
	comments := mongodb.NewCommentRepository(db)
	reports := mongodb.NewReportRepository(db)

	if len(cfg.APIKeys) == 0 {
		log.Warn().Msg("no backend api keys configured, api key callers will be rejected")
	}

	e := api.NewRouter(api.Dependencies{
		Comments:    service.NewCommentService(comments, answers, authClient, log),
		Discussions: service.NewDiscussionService(discussions, answers, authClient, log),
		Reports:     service.NewReportService(reports, discussions, answers, comments, authClient, log),
		Security: middleware.SecurityConfig{
			APIKeyHeader: cfg.APIKeyHeader,
			Keys:         middleware.NewAPIKeys(cfg.APIKeys...),
			Tokens:       middleware.NewTokenCheck(authClient, cfg.AuthService.Timeout, log),
		},
		Checks: []handlers.Check{{Name: "mongo", Ping: mongodb.Pinger(client)}},
		Logger: log,
	})

	if err := infrahttp.Run(ctx, e, ":"+cfg.Port, log); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
