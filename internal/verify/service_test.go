package verify

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"testing"

	"github.com/drawproof/drawproof/internal/config"
	"github.com/drawproof/drawproof/internal/observability"
	"github.com/drawproof/drawproof/internal/storage"
	"github.com/drawproof/drawproof/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const resultsPage = `<html><body>
<h3>Result of Round #1</h3>
<div>1. 1. Alice</div>
<div>1. 2. Bob</div>
<h3>Result of Round #2</h3>
<div>1. 1. Carol</div>
</body></html>`

const challengePage = `<html><head><title>Just a moment...</title></head></html>`

// stubFetcher returns a canned page or error.
type stubFetcher struct {
	body string
	err  error
	hits int
}

func (f *stubFetcher) Fetch(ctx context.Context, req *types.Request) (*types.Response, error) {
	f.hits++
	if f.err != nil {
		return nil, f.err
	}
	return &types.Response{StatusCode: 200, Body: []byte(f.body), Request: req}, nil
}

func (f *stubFetcher) Close() error { return nil }

func (f *stubFetcher) Type() string { return "stub" }

func newTestService(fetch *stubFetcher, browser *stubFetcher) *Service {
	cfg := &config.VerifyConfig{BaseURL: "https://lotterio.co", DefaultBottomCount: 3}
	// A typed nil in the fetcher.Fetcher interface would not compare equal
	// to nil inside the service, so only pass a non-nil browser through.
	if browser == nil {
		return NewService(cfg, fetch, nil, storage.NopHistory{}, observability.NewMetrics(), testLogger)
	}
	return NewService(cfg, fetch, browser, storage.NopHistory{}, observability.NewMetrics(), testLogger)
}

func TestVerify(t *testing.T) {
	svc := newTestService(&stubFetcher{body: resultsPage}, nil)

	report, err := svc.Verify(context.Background(), "abc123", 1)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if report.Code != "abc123" {
		t.Errorf("code = %q", report.Code)
	}
	if report.URL != "https://lotterio.co/verify/abc123" {
		t.Errorf("url = %q", report.URL)
	}
	if report.RoundsCount != 2 {
		t.Errorf("roundsCount = %d, want 2", report.RoundsCount)
	}
	if want := []string{"1. Alice", "2. Carol"}; !reflect.DeepEqual(report.TopList, want) {
		t.Errorf("topList = %v, want %v", report.TopList, want)
	}
	if want := []string{"1. Bob", "2. Carol"}; !reflect.DeepEqual(report.BottomList, want) {
		t.Errorf("bottomList = %v, want %v", report.BottomList, want)
	}
	if want := map[string]int{"Alice": 1, "Bob": 1}; !reflect.DeepEqual(report.SpotCounts, want) {
		t.Errorf("spotCounts = %v, want %v", report.SpotCounts, want)
	}
	if report.FetchedAt.IsZero() {
		t.Error("fetchedAt not set")
	}
}

func TestVerifyDefaultBottomCount(t *testing.T) {
	svc := newTestService(&stubFetcher{body: resultsPage}, nil)

	report, err := svc.Verify(context.Background(), "abc123", 0)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	// Default bottom count of 3 clamps to round size.
	if want := []string{"1. Alice, Bob", "2. Carol"}; !reflect.DeepEqual(report.BottomList, want) {
		t.Errorf("bottomList = %v, want %v", report.BottomList, want)
	}
}

func TestVerifyInvalidCode(t *testing.T) {
	svc := newTestService(&stubFetcher{body: resultsPage}, nil)
	if _, err := svc.Verify(context.Background(), "not a code!", 1); !errors.Is(err, types.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
}

func TestVerifyFetchErrorPropagates(t *testing.T) {
	fetchErr := &types.FetchError{URL: "x", StatusCode: 500, Err: errors.New("boom")}
	svc := newTestService(&stubFetcher{err: fetchErr}, nil)

	_, err := svc.Verify(context.Background(), "abc123", 1)
	var got *types.FetchError
	if !errors.As(err, &got) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestVerifyNoRounds(t *testing.T) {
	svc := newTestService(&stubFetcher{body: "<html><body>nothing</body></html>"}, nil)
	if _, err := svc.Verify(context.Background(), "abc123", 1); !errors.Is(err, types.ErrNoRoundsFound) {
		t.Fatalf("expected ErrNoRoundsFound, got %v", err)
	}
}

func TestVerifyBotCheckWithoutFallback(t *testing.T) {
	svc := newTestService(&stubFetcher{body: challengePage}, nil)
	if _, err := svc.Verify(context.Background(), "abc123", 1); !errors.Is(err, types.ErrBotCheck) {
		t.Fatalf("expected ErrBotCheck, got %v", err)
	}
}

func TestVerifyBotCheckBrowserFallback(t *testing.T) {
	plain := &stubFetcher{body: challengePage}
	browser := &stubFetcher{body: resultsPage}
	svc := newTestService(plain, browser)

	report, err := svc.Verify(context.Background(), "abc123", 1)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.RoundsCount != 2 {
		t.Errorf("roundsCount = %d, want 2", report.RoundsCount)
	}
	if browser.hits != 1 {
		t.Errorf("browser fetches = %d, want 1", browser.hits)
	}
}

func TestVerifyBotCheckPersists(t *testing.T) {
	plain := &stubFetcher{body: challengePage}
	browser := &stubFetcher{body: challengePage}
	svc := newTestService(plain, browser)

	if _, err := svc.Verify(context.Background(), "abc123", 1); !errors.Is(err, types.ErrBotCheck) {
		t.Fatalf("expected ErrBotCheck after persistent challenge, got %v", err)
	}
}
