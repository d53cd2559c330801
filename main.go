package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/config"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/httpserver"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/logging"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/metrics"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/numbergame"
	"github.com/robalobadob/brainbuzzer/apps/go-server/internal/puzzles"
)

func main() {
	cfg := config.Load()
	logger, closeLog := logging.Setup(cfg)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := puzzles.Load(ctx, puzzles.LoadOptions{File: cfg.PuzzlesFile, DB: cfg.PuzzlesDB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load puzzle catalog")
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	srv := httpserver.New(httpserver.Options{
		Numbers:        numbergame.New(nil),
		Puzzles:        catalog,
		Metrics:        m,
		Logger:         &logger,
		AllowedOrigins: cfg.ClientOrigins,
		Timeout:        cfg.RequestTimeout,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting brainbuzzer server")
		errCh <- srv.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}
