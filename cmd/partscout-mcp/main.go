package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/partscout/partscout/internal/assistant"
	"github.com/partscout/partscout/internal/catalog"
	"github.com/partscout/partscout/internal/config"
	"github.com/partscout/partscout/internal/engine"
	"github.com/partscout/partscout/internal/logging"
	"github.com/partscout/partscout/internal/mcpserver"
	"github.com/partscout/partscout/internal/session"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("PartScout MCP Server\n")
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

	// stdout carries the MCP protocol, so all logging goes to stderr.
	log := logging.New(cfg.Logging, os.Stderr)
	log.Info().
		Str("version", version).
		Str("build_mode", catalog.BuildMode).
		Str("sqlite_driver", catalog.DriverName).
		Msg("partscout mcp server starting")

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

	srv := mcpserver.NewServer(eng, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		log.Info().
			Str("catalog", provider.Provider()).
			Str("assistant", ai.Provider()).
			Msg("mcp server ready, listening on stdio")
		errChan <- srv.Serve(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}

	log.Info().Msg("server stopped")
}
