// Package verify orchestrates one verification run: resolve the target URL,
// fetch the results page, reject challenge pages, extract rounds, and build
// the reporting views.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/drawproof/drawproof/internal/config"
	"github.com/drawproof/drawproof/internal/extract"
	"github.com/drawproof/drawproof/internal/fetcher"
	"github.com/drawproof/drawproof/internal/observability"
	"github.com/drawproof/drawproof/internal/storage"
	"github.com/drawproof/drawproof/internal/types"
	"github.com/drawproof/drawproof/internal/views"
)

// Service runs verifications. The extraction pipeline underneath is pure, so
// concurrent Verify calls need no coordination.
type Service struct {
	cfg     *config.VerifyConfig
	fetch   fetcher.Fetcher
	browser fetcher.Fetcher // optional challenge fallback, may be nil
	history storage.History
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewService wires a verification service. browser may be nil; history may
// be storage.NopHistory{}.
func NewService(cfg *config.VerifyConfig, fetch fetcher.Fetcher, browser fetcher.Fetcher, history storage.History, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{
		cfg:     cfg,
		fetch:   fetch,
		browser: browser,
		history: history,
		metrics: metrics,
		logger:  logger.With("component", "verify_service"),
	}
}

// Verify fetches the results page for code and produces the full report.
// bottomCount <= 0 selects the configured default.
func (s *Service) Verify(ctx context.Context, code string, bottomCount int) (*types.Report, error) {
	if bottomCount <= 0 {
		bottomCount = s.cfg.DefaultBottomCount
	}

	target, err := NormalizeTarget(code, s.cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	page, err := s.fetchPage(ctx, target)
	if err != nil {
		s.metrics.VerificationsFailed.Add(1)
		return nil, err
	}

	rounds, err := extract.Rounds(page)
	if err != nil {
		s.metrics.VerificationsFailed.Add(1)
		return nil, err
	}
	s.metrics.RoundsExtracted.Add(int64(len(rounds)))

	lists, err := views.BuildTwoLists(rounds, bottomCount)
	if err != nil {
		s.metrics.VerificationsFailed.Add(1)
		return nil, err
	}

	report := &types.Report{
		Code:        code,
		URL:         target,
		RoundsCount: len(rounds),
		TopList:     lists.Top,
		BottomList:  lists.Bottom,
		SpotCounts:  views.BuildSpotCounts(rounds),
		FetchedAt:   time.Now().UTC(),
	}
	s.metrics.VerificationsTotal.Add(1)

	if err := s.history.Store(ctx, report); err != nil {
		// Archival is best-effort; the report itself is still good.
		s.logger.Warn("failed to archive run", "code", code, "error", err)
	}

	s.logger.Info("verification complete",
		"code", code,
		"rounds", report.RoundsCount,
		"spots", len(report.SpotCounts),
	)
	return report, nil
}

// Recent returns archived runs, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]types.Report, error) {
	return s.history.Recent(ctx, limit)
}

// fetchPage retrieves the page text, routing through the browser fallback
// when the plain HTTP body looks like a bot challenge.
func (s *Service) fetchPage(ctx context.Context, target string) (string, error) {
	req, err := types.NewRequest(target)
	if err != nil {
		return "", err
	}

	s.metrics.FetchesTotal.Add(1)
	resp, err := s.fetch.Fetch(ctx, req)
	if err != nil {
		s.metrics.FetchesFailed.Add(1)
		return "", err
	}
	s.metrics.BytesFetched.Add(int64(len(resp.Body)))

	page := resp.Text()
	if !fetcher.LooksLikeBotCheck(page) {
		return page, nil
	}
	s.metrics.BotChecksHit.Add(1)

	if s.browser == nil {
		return "", fmt.Errorf("%s: %w", target, types.ErrBotCheck)
	}

	s.logger.Info("bot check detected, retrying via browser", "url", target)
	s.metrics.BrowserFallback.Add(1)
	resp, err = s.browser.Fetch(ctx, req)
	if err != nil {
		s.metrics.FetchesFailed.Add(1)
		return "", err
	}
	s.metrics.BytesFetched.Add(int64(len(resp.Body)))

	page = resp.Text()
	if fetcher.LooksLikeBotCheck(page) {
		return "", fmt.Errorf("%s: challenge persisted after browser fetch: %w", target, types.ErrBotCheck)
	}
	return page, nil
}
