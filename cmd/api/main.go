package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"parcel_research/internal/adapters/gemini"
	server "parcel_research/internal/adapters/http_server"
	"parcel_research/internal/adapters/observability"
	"parcel_research/internal/adapters/rentcast"
	"parcel_research/internal/app"
	"parcel_research/internal/domain"
	"parcel_research/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// deps
	client := rentcast.New(cfg.ProviderBase, cfg.ProviderKey, cfg.FetchTimeout)
	research := app.NewResearchService(client)

	var completer domain.TextCompleter
	if cfg.GeminiKey != "" {
		c, err := gemini.New(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			// memos fall back to templates; the service stays up
			log.Error().Err(err).Msg("gemini client init failed, memos will use fallback")
		} else {
			completer = c
		}
	}
	memos := app.NewMemoComposer(completer, cfg.ComposeTimeout)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Research: research, Memos: memos})

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}
	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           observability.MetricsHandler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			log.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listening")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
		return apiSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("shutdown complete")
}
