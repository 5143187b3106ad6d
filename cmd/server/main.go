package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "watchroom/internal/adapters/http"
	"watchroom/internal/adapters/history"
	"watchroom/internal/adapters/identity"
	sig "watchroom/internal/adapters/signal"
	"watchroom/internal/app"
	"watchroom/internal/app/orch"
	"watchroom/internal/config"
	"watchroom/internal/core"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	var hist core.History = history.Noop{}
	if cfg.HistoryEnabled {
		hist = history.NewRedisStore(cfg.RedisAddr)
	}

	registry := app.NewRegistry()
	rooms := app.NewDirectory(registry)
	coordinator := &orch.Orchestrator{
		Registry: registry,
		Rooms:    rooms,
		Election: app.NewElection(registry, rooms),
		Identity: identity.NewClient(cfg.IdentityURL),
		History:  hist,
	}

	flood := sig.NewFloodLimiter(cfg.ChatFloodLimit, cfg.ChatFloodEvery)
	ctrl := sig.NewSignalWSController(coordinator, flood, cfg.ReadLimit, cfg.PingPeriod)

	r := router.SetupRouter(ctx, cfg, ctrl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("watchroom server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
