package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aditi/profilecore/internal/config"
	"github.com/aditi/profilecore/internal/logging"
	"github.com/aditi/profilecore/internal/server"
	"github.com/aditi/profilecore/internal/service"
	"github.com/aditi/profilecore/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	// A missing or unreadable source table is fatal. The service never
	// starts with a partially loaded record store.
	recordStore, err := store.Load(cfg.Data.Dir)
	if err != nil {
		logger.Error().Err(err).Str("dir", cfg.Data.Dir).Msg("failed to load record store")
		os.Exit(1)
	}
	counts := recordStore.Counts()
	logger.Info().
		Int("partners", counts.Partners).
		Int("accounts", counts.Accounts).
		Int("transactions", counts.Transactions).
		Msg("record store loaded")

	assembler := service.NewAssembler(recordStore, cfg.Data.RecentTransactionLimit)
	bulk := service.NewBulkBuilder(assembler, cfg.Data.BulkWorkers)
	apiHandlers := server.NewAPIHandlers(logger, assembler, bulk)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.StoreHealthService{Store: recordStore},
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("server stopped unexpectedly")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
