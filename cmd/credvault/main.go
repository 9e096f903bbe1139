package main

import (
	"context"
	"fmt"

	"github.com/ebalakin/credvault/internal/adapter"
	"github.com/ebalakin/credvault/internal/config"
	"github.com/ebalakin/credvault/internal/handler/http"
	"github.com/ebalakin/credvault/internal/logger"
	"github.com/ebalakin/credvault/internal/server"
	"github.com/ebalakin/credvault/internal/service"
	"github.com/ebalakin/credvault/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("credvault")

	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	recordStore, err := newRecordStore(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create record store")
	}

	services := service.NewServices(recordStore, log)

	handler := http.NewHandler(services, log)
	httpServer := server.NewHTTPServer(cfg.Server, handler.Init(), log)

	if err = httpServer.Run(); err != nil {
		log.Fatal().Err(err).Msg("http server run error")
	}
}

// newRecordStore wires exactly one backend behind the shared store
// contract, per STORAGE_BACKEND. There is no fallback and no
// reconciliation between backends.
func newRecordStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (store.RecordStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return store.NewSQLiteStore(ctx, cfg.Storage, log)
	case config.BackendPostgres:
		return store.NewPostgresStore(ctx, cfg.Storage, log)
	case config.BackendRemote:
		return adapter.NewRemoteRecordClient(cfg.Remote, log), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
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
