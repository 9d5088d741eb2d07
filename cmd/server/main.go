package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/staff-directory-api/internal/api"
	"github.com/staff-directory-api/internal/config"
	"github.com/staff-directory-api/internal/metrics"
	"github.com/staff-directory-api/internal/notify"
	"github.com/staff-directory-api/internal/repository"
	"github.com/staff-directory-api/internal/seed"
	"github.com/staff-directory-api/internal/service"
	"github.com/staff-directory-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Staff Directory API server...")

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Notifications: always logged, optionally fanned out over Redis
	bus := notify.NewBus(log)
	bus.Subscribe(notify.LogHandler(log))
	if cfg.Notify.RedisAddr != "" {
		client := notify.NewRedisClient(cfg.Notify.RedisAddr, cfg.Notify.RedisPassword, log)
		defer client.Close()
		bus.Subscribe(notify.NewRedisPublisher(client, cfg.Notify.RedisChannel).Handle)
	}

	// Initialize repositories
	repos := repository.New()

	// Initialize services
	services := service.NewServices(repos, cfg, service.Dependencies{
		Sink:    bus,
		Metrics: m,
	}, log)

	// Load the seed roster
	if cfg.Directory.SeedFile != "" {
		records, err := seed.Load(cfg.Directory.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to read seed file")
		}
		n, err := services.Staff.Seed(context.Background(), records)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to seed roster")
		}
		log.Info().Int("records", n).Str("file", cfg.Directory.SeedFile).Msg("Seed roster loaded")
	}

	// Initialize router
	router := api.NewRouter(services, cfg, registry, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
