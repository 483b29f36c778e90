package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/electricbuddy/charger-service/internal/app"
	"github.com/electricbuddy/charger-service/internal/cluster"
	"github.com/electricbuddy/charger-service/internal/config"
	"github.com/electricbuddy/charger-service/internal/metrics"
	"github.com/electricbuddy/charger-service/internal/repository"
	"github.com/electricbuddy/charger-service/internal/routing"
	"github.com/electricbuddy/charger-service/internal/service"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const version = "1.0.0"

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection and the station collection.
	dtb, err := repository.NewDatabase(
		ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, logger)
	if err = repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare schema: %v", err)
	}

	// Create the routing provider using the factory, so the deployment can
	// switch between Google and the keyless OSRM stack at runtime.
	routeProvider, err := routing.NewProvider(routing.ProviderConfig{
		Type:   routing.ProviderType(cfg.RouteProvider),
		APIKey: cfg.APIKey,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("Failed to create routing provider: %v", err)
	}
	logger.InfoContext(ctx, "Routing provider initialized", "type", cfg.RouteProvider)

	// Cluster search client and expander for park ingestion.
	searchClient := cluster.NewClient(cfg.SearchURL, logger)
	expander := cluster.NewExpander(searchClient, logger)

	finder := service.NewFinderService(logger, repo, routeProvider, cfg.RouteProvider, appMetrics)
	ingest := service.NewIngestService(logger, repo, expander, appMetrics)

	application := app.New(logger, finder, ingest, dtb, reg, version)

	readTimeout := 5 * time.Second
	writeTimeout := 60 * time.Second
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logger.InfoContext(ctx, "Starting API server", "port", cfg.Port)
		if errSrv := server.ListenAndServe(); errSrv != nil && !errors.Is(errSrv, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "API server failed", "error", errSrv)
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownTimeout := 10 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down server gracefully", "error", err)
	}

	logger.Info("Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return logger
}
