package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	componentHandler "uims/internal/component/handler"
	componentMetrics "uims/internal/component/metrics"
	componentService "uims/internal/component/service"
	componentStore "uims/internal/component/store"
	"uims/internal/platform/config"
	"uims/internal/platform/database"
	"uims/internal/platform/httpserver"
	"uims/internal/platform/logger"
	"uims/internal/platform/metrics"
	spaceHandler "uims/internal/space/handler"
	spaceService "uims/internal/space/service"
	spaceStore "uims/internal/space/store"
	httptransport "uims/internal/transport/http"
)

func newServeCmd(load func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	db, dialect, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, dialect); err != nil {
			return err
		}
		log.InfoContext(ctx, "migrations applied", "dialect", dialect)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "uims"),
	)

	spaces := spaceService.New(spaceStore.NewSQL(db, dialect), spaceService.WithLogger(log))
	components := componentStore.NewSQL(db, dialect)
	componentSvc := componentService.New(
		database.NewTransactor(db, cfg.Database.TxTimeout),
		components,
		components,
		spaces,
		componentService.WithLogger(log),
		componentService.WithMetrics(componentMetrics.New(reg)),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Health:   db,
		Handlers: []httptransport.Registrar{
			spaceHandler.New(spaces, log),
			componentHandler.New(componentSvc, log),
		},
	})
	srv := httpserver.New(cfg.Server, router)

	errCh := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "starting uims", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
