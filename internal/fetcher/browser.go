package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/drawproof/drawproof/internal/config"
	"github.com/drawproof/drawproof/internal/types"
)

// BrowserFetcher implements Fetcher using a headless browser via Rod. It is
// the fallback path for challenge-guarded pages: a stealth-patched page is
// opened per fetch, navigated, allowed to settle, and its rendered HTML is
// returned.
type BrowserFetcher struct {
	browser *rod.Browser
	cfg     *config.BrowserConfig
	timeout time.Duration
	logger  *slog.Logger
}

// NewBrowserFetcher launches a headless Chromium instance and connects to it.
func NewBrowserFetcher(cfg *config.Config, logger *slog.Logger) (*BrowserFetcher, error) {
	l := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled")
	if cfg.Browser.WindowSize != "" {
		l = l.Set("window-size", cfg.Browser.WindowSize)
	}

	launchURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	bf := &BrowserFetcher{
		browser: browser,
		cfg:     &cfg.Browser,
		timeout: cfg.Fetcher.RequestTimeout,
		logger:  logger.With("component", "browser_fetcher"),
	}
	bf.logger.Info("browser fetcher ready", "window_size", cfg.Browser.WindowSize)
	return bf, nil
}

// Fetch navigates to a URL and returns the rendered page content.
func (bf *BrowserFetcher) Fetch(ctx context.Context, req *types.Request) (*types.Response, error) {
	start := time.Now()

	page, err := stealth.Page(bf.browser)
	if err != nil {
		return nil, &types.FetchError{URL: req.URLString(), Err: fmt.Errorf("stealth page: %w", err), Retryable: true}
	}
	defer page.Close()

	if ua := req.Headers.Get("User-Agent"); ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			bf.logger.Warn("failed to set user agent", "error", err)
		}
	}

	timeout := bf.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}

	if err := page.Context(ctx).Timeout(timeout).Navigate(req.URLString()); err != nil {
		return nil, &types.FetchError{URL: req.URLString(), Err: err, Retryable: true}
	}

	// Challenge interstitials resolve themselves after a short settle.
	if err := page.Timeout(timeout).WaitStable(bf.cfg.StableWait); err != nil {
		bf.logger.Warn("page stability timeout, continuing", "url", req.URLString(), "error", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: req.URLString(), Err: err, Retryable: true}
	}
	if html == "" {
		return nil, &types.FetchError{URL: req.URLString(), Err: types.ErrEmptyResponse}
	}

	finalURL := req.URLString()
	if info, err := page.Info(); err == nil && info != nil {
		finalURL = info.URL
	}

	duration := time.Since(start)
	bf.logger.Debug("browser fetch complete",
		"url", req.URLString(),
		"final_url", finalURL,
		"size", len(html),
		"duration", duration,
	)

	return types.NewBrowserResponse(req, []byte(html), finalURL, duration), nil
}

// Close shuts down the browser and releases resources.
func (bf *BrowserFetcher) Close() error {
	if bf.browser != nil {
		return bf.browser.Close()
	}
	return nil
}

// Type returns the fetcher type identifier.
func (bf *BrowserFetcher) Type() string { return "browser" }
