package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jokemeter/internal/api/v1/router"
	"jokemeter/internal/config"
	"jokemeter/internal/logger"
	"jokemeter/internal/pubsub"
	"jokemeter/internal/service"

	"github.com/joho/godotenv"
)

// @title Jokemeter API
// @version 1.0
// @description Metered joke gateway backed by the Autumn billing API
// @host localhost:8080
// @BasePath /
// @Schemes http https

func main() {
	// 1. Load configuration
	envErr := godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(os.Getenv("ENV"), "info")
		boot.Fatal().Msgf("Error loading config: %v", err)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)
	if envErr != nil {
		log.Warn().Msg("Warning: no .env file found")
	}

	ctx := context.Background()

	// 2. Resolve the provider API key
	apiKey := cfg.AutumnSecretKey
	if cfg.AutumnSecretKeyResource != "" {
		apiKey, err = loadSecretKey(ctx, cfg)
		if err != nil {
			log.Fatal().Msgf("Failed to load provider key from Secret Manager: %v", err)
		}
		log.Info().Msg("Provider key loaded from Secret Manager")
	}

	// 3. Optional usage event stream
	var usagePub pubsub.Publisher
	if projectID := cfg.GetGCPProjectID(); projectID != "" && cfg.UsageEventsTopic != "" {
		pub, err := pubsub.NewPublisher(ctx, projectID)
		if err != nil {
			log.Fatal().Msgf("Failed to create Pub/Sub publisher: %v", err)
		}
		defer pub.Close()
		usagePub = pub
		log.Info().Str("topic", cfg.UsageEventsTopic).Msg("Publishing usage events")
	}

	// 4. Build router
	client := service.NewAutumnClient(cfg.AutumnAPIBase, apiKey, cfg.AutumnHTTPTimeout, log)
	r := router.New(cfg, client, service.NewUsagePublisher(usagePub, cfg.UsageEventsTopic), log)

	// 5. Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 6. Start server in a goroutine
	go func() {
		log.Info().Msgf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Msgf("Listen: %s", err)
		}
	}()

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received, exiting...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Msgf("Server forced to shutdown: %v", err)
		return
	}
	log.Info().Msg("Server shut down gracefully")
}

func loadSecretKey(ctx context.Context, cfg *config.Config) (string, error) {
	sm, err := service.NewSecretManagerService(ctx, cfg.GCPProjectID)
	if err != nil {
		return "", err
	}
	defer sm.Close()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return sm.AccessSecret(ctx, cfg.AutumnSecretKeyResource)
}
