package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadAppConfig()

	ladder, err := loadLadder(cfg.LadderPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load bid ladder")
	}

	services, err := setupServices(ctx, cfg, ladder)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up services")
	}
	defer services.Close()

	if err := services.Worker.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start outbox worker")
	}
	defer services.Worker.Stop()

	if services.Gateway != nil {
		go func() {
			if err := services.Gateway.Start(ctx); err != nil {
				log.Error().Err(err).Msg("gateway failed")
			}
		}()
	}

	if cfg.RoomRetention > 0 {
		go purgeLoop(ctx, services, cfg.RoomRetention)
	}

	server := setupServer(cfg, services)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// purgeLoop periodically drops ended rooms older than the retention window.
func purgeLoop(ctx context.Context, services *Services, retention time.Duration) {
	ticker := time.NewTicker(retention / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := services.Registry.PurgeStale(ctx, retention); err != nil {
				log.Error().Err(err).Msg("room purge failed")
			}
		}
	}
}
