package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/drawproof/drawproof/internal/config"
	"github.com/drawproof/drawproof/internal/extract"
	"github.com/drawproof/drawproof/internal/fetcher"
	"github.com/drawproof/drawproof/internal/observability"
	"github.com/drawproof/drawproof/internal/storage"
	"github.com/drawproof/drawproof/internal/types"
	"github.com/drawproof/drawproof/internal/verify"
	"github.com/drawproof/drawproof/internal/views"
)

var (
	extractFile   string
	extractBottom int
)

// extractCmd creates the "extract" subcommand: run one verification from the
// terminal, against a live code/URL or a saved page.
func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [code-or-url]",
		Short: "Extract rounds from a verification page and print the report",
		Long: `Extract runs the pipeline once and prints the report as JSON.
With --file the page is read from disk (or stdin with "-") instead of
being fetched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExtract,
	}
	cmd.Flags().StringVarP(&extractFile, "file", "f", "", "read the page from a file instead of fetching ('-' for stdin)")
	cmd.Flags().IntVarP(&extractBottom, "bottom", "b", 0, "bottom-N size (default from config)")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := setupLogger(cfg)

	var report *types.Report
	if extractFile != "" {
		report, err = extractFromFile(cfg, extractFile)
	} else {
		if len(args) == 0 {
			return fmt.Errorf("a code or URL is required unless --file is given")
		}
		report, err = extractFromTarget(cfg, logger, args[0])
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// extractFromFile runs the pipeline on a saved page, skipping the fetcher.
func extractFromFile(cfg *config.Config, path string) (*types.Report, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}

	rounds, err := extract.Rounds(string(data))
	if err != nil {
		return nil, err
	}

	bottom := extractBottom
	if bottom <= 0 {
		bottom = cfg.Verify.DefaultBottomCount
	}
	lists, err := views.BuildTwoLists(rounds, bottom)
	if err != nil {
		return nil, err
	}

	return &types.Report{
		Code:        path,
		RoundsCount: len(rounds),
		TopList:     lists.Top,
		BottomList:  lists.Bottom,
		SpotCounts:  views.BuildSpotCounts(rounds),
	}, nil
}

// extractFromTarget fetches a live page through the full service.
func extractFromTarget(cfg *config.Config, logger *slog.Logger, target string) (*types.Report, error) {
	httpFetcher, err := fetcher.NewHTTPFetcher(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}
	defer httpFetcher.Close()

	var browser fetcher.Fetcher
	if cfg.Fetcher.BrowserFallback {
		bf, err := fetcher.NewBrowserFetcher(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("create browser fetcher: %w", err)
		}
		defer bf.Close()
		browser = bf
	}

	svc := verify.NewService(&cfg.Verify, httpFetcher, browser, storage.NopHistory{}, observability.NewMetrics(), logger)
	return svc.Verify(context.Background(), target, extractBottom)
}
