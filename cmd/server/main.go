package main

import (
	"context"
	"fmt"

	"github.com/dmarkin/habitrack/internal/config"
	handlerhttp "github.com/dmarkin/habitrack/internal/handler/http"
	"github.com/dmarkin/habitrack/internal/logger"
	"github.com/dmarkin/habitrack/internal/server"
	"github.com/dmarkin/habitrack/internal/service"
	"github.com/dmarkin/habitrack/internal/store"
	"github.com/dmarkin/habitrack/internal/utils"
	"github.com/dmarkin/habitrack/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("habitrack-server")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing database connection")
		}
	}()

	if err = migrations.Migrate(db.DB); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	accessSigner, err := utils.NewTokenSigner(cfg.Auth.AccessTokenKey, cfg.Auth.TokenIssuer, cfg.Auth.AccessTokenDuration)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating access token signer")
	}

	refreshSigner, err := utils.NewTokenSigner(cfg.Auth.RefreshTokenKey, cfg.Auth.TokenIssuer, cfg.Auth.RefreshTokenDuration)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating refresh token signer")
	}

	repos := store.NewRepositories(db, log)
	services := service.NewServices(repos, accessSigner, refreshSigner, log)
	handler := handlerhttp.NewHandler(services, db, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
