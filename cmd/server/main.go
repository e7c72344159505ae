package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bloggify-frontend/internal/api"
	"github.com/bloggify-frontend/internal/blogapi"
	"github.com/bloggify-frontend/internal/config"
	"github.com/bloggify-frontend/internal/database"
	"github.com/bloggify-frontend/internal/repository"
	"github.com/bloggify-frontend/internal/service"
	"github.com/bloggify-frontend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Bloggify front-end server...")

	// Initialize session flag store
	var repos *repository.Repositories
	switch cfg.Session.Store {
	case config.StorePostgres:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
		repos = repository.New(db)
	default:
		log.Warn().Msg("Using in-memory session store; sessions are lost on restart")
		repos = repository.NewInMemory()
	}

	// Remote blog API
	client := blogapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	log.Info().Str("base_url", cfg.API.BaseURL).Msg("Blog API client configured")

	// Initialize services
	services := service.NewServices(repos, client, cfg, log)

	// Start idle view janitor
	go services.Views.StartJanitor(context.Background())

	// Initialize router
	router := api.NewRouter(services, cfg, log)

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
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stop janitor and drop pending searches once no handler can touch the views
	services.Views.StopJanitor()

	log.Info().Msg("Server exited gracefully")
}
