package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/partscout/partscout/internal/api"
	"github.com/partscout/partscout/internal/assistant"
	"github.com/partscout/partscout/internal/catalog"
	"github.com/partscout/partscout/internal/config"
	"github.com/partscout/partscout/internal/engine"
	"github.com/partscout/partscout/internal/logging"
	"github.com/partscout/partscout/internal/session"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("PartScout HTTP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", catalog.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", catalog.DriverName)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Logging, os.Stderr)
	log.Info().
		Str("version", version).
		Str("build_mode", catalog.BuildMode).
		Msg("partscoutd starting")

	provider, err := catalog.New(catalog.Config{
		APIKey:    cfg.Mouser.APIKey,
		BaseURL:   cfg.Mouser.BaseURL,
		Timeout:   cfg.Mouser.Timeout,
		LocalPath: cfg.Mouser.LocalPath,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog provider")
	}
	defer func() { _ = provider.Close() }()

	ai, err := assistant.New(assistant.Config{
		APIKey:    cfg.Gemini.APIKey,
		Model:     cfg.Gemini.Model,
		Timeout:   cfg.Gemini.Timeout,
		CacheSize: cfg.Gemini.CacheSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize assistant")
	}
	defer ai.Close()

	sessions := session.NewMemoryStoreWithCap(cfg.Session.MaxHistory)

	eng := engine.New(provider, ai, sessions,
		engine.WithFuzzyThreshold(cfg.Search.FuzzyThreshold),
		engine.WithSimilarityThreshold(cfg.Search.SimilarityThreshold),
		engine.WithCatalogLimit(cfg.Search.CatalogLimit),
		engine.WithSimilarLimit(cfg.Search.SimilarLimit),
		engine.WithLogger(log),
	)

	handler := api.NewHandler(eng, log)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("addr", addr).
			Str("catalog", provider.Provider()).
			Str("assistant", ai.Provider()).
			Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}

	log.Info().Msg("server stopped")
}
