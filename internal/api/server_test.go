package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/drawproof/drawproof/internal/config"
	"github.com/drawproof/drawproof/internal/observability"
	"github.com/drawproof/drawproof/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

// stubVerifier satisfies Verifier with canned results.
type stubVerifier struct {
	report *types.Report
	runs   []types.Report
	err    error
}

func (v *stubVerifier) Verify(ctx context.Context, code string, bottomCount int) (*types.Report, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.report, nil
}

func (v *stubVerifier) Recent(ctx context.Context, limit int) ([]types.Report, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.runs, nil
}

func newTestServer(v Verifier) *Server {
	cfg := &config.ServerConfig{Port: 8080}
	return NewServer(cfg, v, observability.NewMetrics(), testLogger)
}

func doGet(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doGet(t, newTestServer(&stubVerifier{}), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestHandleVerify(t *testing.T) {
	report := &types.Report{
		Code:        "abc123",
		URL:         "https://lotterio.co/verify/abc123",
		RoundsCount: 2,
		TopList:     []string{"1. Alice", "2. Carol"},
		BottomList:  []string{"1. Bob", "2. Carol"},
		SpotCounts:  map[string]int{"Alice": 1, "Bob": 1},
		FetchedAt:   time.Now(),
	}
	rec := doGet(t, newTestServer(&stubVerifier{report: report}), "/api/verify?code=abc123&bottom=1")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS header = %q", got)
	}

	var body verifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.OK {
		t.Error("ok = false")
	}
	if body.RoundsCount != 2 || len(body.TopList) != 2 || body.SpotCounts["Alice"] != 1 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestHandleVerifyMissingCode(t *testing.T) {
	rec := doGet(t, newTestServer(&stubVerifier{}), "/api/verify")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleVerifyBadBottom(t *testing.T) {
	for _, q := range []string{"bottom=0", "bottom=-2", "bottom=x"} {
		rec := doGet(t, newTestServer(&stubVerifier{}), "/api/verify?code=abc&"+q)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, rec.Code)
		}
	}
}

func TestHandleVerifyExtractionFailure(t *testing.T) {
	rec := doGet(t, newTestServer(&stubVerifier{err: types.ErrNoRoundsFound}), "/api/verify?code=abc123")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.OK {
		t.Error("ok = true on failure")
	}
	if body.Error == "" {
		t.Error("error message missing")
	}
}

func TestHandleVerifyFetchFailure(t *testing.T) {
	err := &types.FetchError{URL: "https://lotterio.co/verify/x", StatusCode: 503, Err: types.ErrEmptyResponse}
	rec := doGet(t, newTestServer(&stubVerifier{err: err}), "/api/verify?code=x")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestHandleHistory(t *testing.T) {
	runs := []types.Report{{Code: "abc"}, {Code: "def"}}
	rec := doGet(t, newTestServer(&stubVerifier{runs: runs}), "/api/history?limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		OK   bool           `json:"ok"`
		Runs []types.Report `json:"runs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.OK || len(body.Runs) != 2 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestHandleHistoryEmpty(t *testing.T) {
	rec := doGet(t, newTestServer(&stubVerifier{}), "/api/history")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body struct {
		Runs []types.Report `json:"runs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Runs == nil {
		t.Error("runs should be an empty array, not null")
	}
}

func TestHandleStats(t *testing.T) {
	rec := doGet(t, newTestServer(&stubVerifier{}), "/api/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["verifications_total"]; !ok {
		t.Error("missing verifications_total counter")
	}
}
