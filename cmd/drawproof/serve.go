package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/drawproof/drawproof/internal/api"
	"github.com/drawproof/drawproof/internal/config"
	"github.com/drawproof/drawproof/internal/fetcher"
	"github.com/drawproof/drawproof/internal/observability"
	"github.com/drawproof/drawproof/internal/storage"
	"github.com/drawproof/drawproof/internal/verify"
)

var (
	servePort      int
	serveStaticDir string
)

// serveCmd creates the "serve" subcommand.
func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the verification HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
	cmd.Flags().StringVar(&serveStaticDir, "static", "", "directory of static assets to host at /")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if serveStaticDir != "" {
		cfg.Server.StaticDir = serveStaticDir
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg)
	metrics := observability.NewMetrics()

	httpFetcher, err := fetcher.NewHTTPFetcher(cfg, logger)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}
	defer httpFetcher.Close()

	var browser fetcher.Fetcher
	if cfg.Fetcher.BrowserFallback {
		bf, err := fetcher.NewBrowserFetcher(cfg, logger)
		if err != nil {
			return fmt.Errorf("create browser fetcher: %w", err)
		}
		defer bf.Close()
		browser = bf
	}

	history, err := newHistory(cfg, logger)
	if err != nil {
		return fmt.Errorf("create history: %w", err)
	}
	defer history.Close()

	svc := verify.NewService(&cfg.Verify, httpFetcher, browser, history, metrics, logger)
	srv := api.NewServer(&cfg.Server, svc, metrics, logger)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	return srv.Start()
}

// newHistory builds the configured run-history backend.
func newHistory(cfg *config.Config, logger *slog.Logger) (storage.History, error) {
	switch cfg.Storage.Type {
	case "jsonl":
		return storage.NewJSONLHistory(cfg.Storage.Path, logger)
	case "mongodb":
		return storage.NewMongoHistory(cfg.Storage.MongoURI, cfg.Storage.MongoDatabase, cfg.Storage.MongoCollection, logger)
	default:
		return storage.NopHistory{}, nil
	}
}
