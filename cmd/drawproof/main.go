package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/drawproof/drawproof/internal/config"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "drawproof",
		Short: "Giveaway verification page extractor",
		Long: `drawproof fetches a giveaway verification results page, extracts the
numbered rounds and their participant names, and reports the per-round
winners, the per-round bottom-N, and the round-1 spot counts.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("drawproof %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Server:\n")
			fmt.Printf("  Port:               %d\n", cfg.Server.Port)
			fmt.Printf("  Static Dir:         %s\n", cfg.Server.StaticDir)
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Request Timeout:    %s\n", cfg.Fetcher.RequestTimeout)
			fmt.Printf("  Follow Redirects:   %v\n", cfg.Fetcher.FollowRedirects)
			fmt.Printf("  Max Body Size:      %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Printf("  Browser Fallback:   %v\n", cfg.Fetcher.BrowserFallback)
			fmt.Printf("  User Agents:        %d configured\n", len(cfg.Fetcher.UserAgents))
			fmt.Printf("\nVerify:\n")
			fmt.Printf("  Base URL:           %s\n", cfg.Verify.BaseURL)
			fmt.Printf("  Default Bottom-N:   %d\n", cfg.Verify.DefaultBottomCount)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:               %s\n", cfg.Storage.Type)
			fmt.Printf("  Path:               %s\n", cfg.Storage.Path)
			return nil
		},
	}
}

// setupLogger creates a structured logger.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
