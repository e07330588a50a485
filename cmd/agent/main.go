// cmd/agent/main.go — offline terminal agent.
// Runs next to each POS terminal: mirrors the catalog into a local bbolt
// store, proxies API traffic to the central server, and queues mutations
// while the server is unreachable.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/bismillahdumoro-svg/zyracafe/internal/config"
	"github.com/bismillahdumoro-svg/zyracafe/internal/offline/proxy"
	"github.com/bismillahdumoro-svg/zyracafe/internal/offline/store"
	syncpkg "github.com/bismillahdumoro-svg/zyracafe/internal/offline/sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.LoadAgent()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load agent config")
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("failed to create data dir")
	}

	st, err := store.Open(filepath.Join(cfg.DataDir, "agent.db"), syncpkg.CollectionNames())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open cache store")
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncer := syncpkg.New(st, cfg.ServerURL, cfg.RequestTimeout)
	scheduler := syncpkg.NewScheduler(syncer, cfg.SyncInterval, cfg.HealthInterval)
	go scheduler.Run(ctx)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: proxy.New(st, cfg.ServerURL, cfg.RequestTimeout),
	}

	go func() {
		log.Info().Str("addr", cfg.ListenAddr).Str("upstream", cfg.ServerURL).Msg("agent listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("agent server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down agent")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	cancel()
	log.Info().Msg("agent exited")
}
