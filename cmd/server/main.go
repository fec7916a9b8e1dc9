package main

import (
	"context"
	"fmt"

	"github.com/motormarket/go-mobile-sync/internal/config"
	myHTTP "github.com/motormarket/go-mobile-sync/internal/handler/http"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/server"
	"github.com/motormarket/go-mobile-sync/internal/service"
	"github.com/motormarket/go-mobile-sync/internal/store"
	"github.com/motormarket/go-mobile-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("sync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, *cfg, log)

	auditWriter := workers.NewAuditWriter(storages.SyncLogRepository, db.ErrorClassifier(), cfg.Audit, log)
	workers.NewWorkers(auditWriter).Run()

	handler := myHTTP.NewHandler(services, auditWriter, cfg.App, log)

	srv, err := server.NewServer(handler, cfg.Server, auditWriter, log)
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
