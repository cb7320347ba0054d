package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/drawproof/drawproof/internal/types"
)

// JSONLHistory appends one JSON document per run to a file.
type JSONLHistory struct {
	path   string
	mu     sync.Mutex
	count  int
	logger *slog.Logger
}

// NewJSONLHistory creates a JSONL-backed run history.
func NewJSONLHistory(path string, logger *slog.Logger) (*JSONLHistory, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &JSONLHistory{
		path:   path,
		logger: logger.With("component", "jsonl_history"),
	}, nil
}

func (h *JSONLHistory) Name() string { return "jsonl" }

func (h *JSONLHistory) Store(_ context.Context, report *types.Report) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("append history record: %w", err)
	}

	h.count++
	h.logger.Debug("run archived", "code", report.Code, "total", h.count)
	return nil
}

func (h *JSONLHistory) Recent(_ context.Context, limit int) ([]types.Report, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	var all []types.Report
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var r types.Report
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			h.logger.Warn("skipping corrupt history record", "error", err)
			continue
		}
		all = append(all, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	// Newest first.
	out := make([]types.Report, 0, limit)
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

func (h *JSONLHistory) Close() error {
	h.logger.Info("jsonl history closing", "runs_stored", h.count)
	return nil
}
