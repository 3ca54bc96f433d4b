package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/proxiglass/planning/internal/application"
	"github.com/proxiglass/planning/internal/config"
	"github.com/proxiglass/planning/internal/export"
	httptransport "github.com/proxiglass/planning/internal/http"
	"github.com/proxiglass/planning/internal/persistence"
	"github.com/proxiglass/planning/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := flag.String("config", os.Getenv("PLANNING_CONFIG"), "chemin du fichier de configuration YAML")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	if err := seedResources(ctx, storage, cfg, time.Now); err != nil {
		logger.Error("failed to seed vehicle catalog", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	planner := application.NewPlannerServiceWithLogger(
		storage,
		cfg.Catalog(),
		cfg.Grid(),
		calendarIdentity(cfg),
		idGenerator,
		now,
		logger,
	)
	resources := application.NewResourceServiceWithLogger(storage, idGenerator, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Appointments: httptransport.NewAppointmentHandler(planner, logger),
		Calendar:     httptransport.NewCalendarHandler(planner, resources, logger),
		Resources:    httptransport.NewResourceHandler(resources, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("planning API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// seedResources inserts the configured vehicles when the catalog is empty,
// so a fresh database starts with usable columns.
func seedResources(ctx context.Context, repo persistence.ResourceRepository, cfg config.Config, now func() time.Time) error {
	existing, err := repo.ListResources(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, rc := range cfg.Resources {
		id := rc.ID
		if id == "" {
			id = uuid.NewString()
		}
		ts := now().UTC()
		resource := persistence.Resource{
			ID:        id,
			Name:      rc.Name,
			CreatedAt: ts,
			UpdatedAt: ts,
		}
		if err := repo.CreateResource(ctx, resource); err != nil && !errors.Is(err, persistence.ErrDuplicate) {
			return err
		}
	}
	return nil
}

func calendarIdentity(cfg config.Config) export.CalendarIdentity {
	identity := export.DefaultCalendarIdentity()
	if cfg.Export.Product != "" {
		identity.Product = cfg.Export.Product
	}
	if cfg.Export.Locale != "" {
		identity.Locale = cfg.Export.Locale
	}
	return identity
}
