// Package api exposes the verification service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/drawproof/drawproof/internal/config"
	"github.com/drawproof/drawproof/internal/observability"
	"github.com/drawproof/drawproof/internal/types"
)

// Verifier is the interface the API uses to run verifications.
type Verifier interface {
	Verify(ctx context.Context, code string, bottomCount int) (*types.Report, error)
	Recent(ctx context.Context, limit int) ([]types.Report, error)
}

// Server provides the REST API and optional static hosting.
type Server struct {
	mux     *http.ServeMux
	cfg     *config.ServerConfig
	svc     Verifier
	metrics *observability.Metrics
	logger  *slog.Logger
	httpSrv *http.Server
}

// verifyResponse is the success body of /api/verify.
type verifyResponse struct {
	OK          bool           `json:"ok"`
	Code        string         `json:"code"`
	URL         string         `json:"url"`
	RoundsCount int            `json:"roundsCount"`
	TopList     []string       `json:"topList"`
	BottomList  []string       `json:"bottomList"`
	SpotCounts  map[string]int `json:"spotCounts"`
}

// errorResponse is the failure body of every endpoint.
type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// NewServer creates a new API server.
func NewServer(cfg *config.ServerConfig, svc Verifier, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		cfg:     cfg,
		svc:     svc,
		metrics: metrics,
		logger:  logger.With("component", "api_server"),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	s.mux.HandleFunc("GET /api/verify", s.handleVerify)
	s.mux.HandleFunc("GET /api/history", s.handleHistory)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)

	if s.cfg.StaticDir != "" {
		s.mux.Handle("GET /", http.FileServer(http.Dir(s.cfg.StaticDir)))
	}
}

// Start runs the server until Shutdown is called or the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("API server starting", "addr", addr, "static_dir", s.cfg.StaticDir)

	s.httpSrv = &http.Server{Addr: addr, Handler: s.mux}
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": config.Version,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		s.jsonResponse(w, http.StatusBadRequest, errorResponse{Error: "missing 'code' query parameter"})
		return
	}

	bottomCount := 0
	if raw := r.URL.Query().Get("bottom"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.jsonResponse(w, http.StatusBadRequest, errorResponse{Error: types.ErrInvalidBottomCount.Error()})
			return
		}
		bottomCount = n
	}

	report, err := s.svc.Verify(r.Context(), code, bottomCount)
	if err != nil {
		s.logger.Warn("verification failed", "code", code, "error", err)
		s.jsonResponse(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	s.jsonResponse(w, http.StatusOK, verifyResponse{
		OK:          true,
		Code:        report.Code,
		URL:         report.URL,
		RoundsCount: report.RoundsCount,
		TopList:     report.TopList,
		BottomList:  report.BottomList,
		SpotCounts:  report.SpotCounts,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.jsonResponse(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	reports, err := s.svc.Recent(r.Context(), limit)
	if err != nil {
		s.jsonResponse(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if reports == nil {
		reports = []types.Report{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"ok": true, "runs": reports})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.metrics.Snapshot())
}

// statusFor maps verification failures onto HTTP statuses: caller and page
// format problems are client errors, upstream fetch problems are a bad
// gateway.
func statusFor(err error) int {
	var fetchErr *types.FetchError
	if errors.As(err, &fetchErr) {
		return http.StatusBadGateway
	}
	switch {
	case errors.Is(err, types.ErrNoRoundsFound),
		errors.Is(err, types.ErrNoNamesParsed),
		errors.Is(err, types.ErrInvalidBottomCount),
		errors.Is(err, types.ErrInvalidCode),
		errors.Is(err, types.ErrBotCheck):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
