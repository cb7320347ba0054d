// Package storage archives verification runs so past draws can be
// re-served without refetching the source page.
package storage

import (
	"context"

	"github.com/drawproof/drawproof/internal/types"
)

// History is the interface for run-history backends.
type History interface {
	// Store persists one verification report.
	Store(ctx context.Context, report *types.Report) error

	// Recent returns up to limit reports, newest first.
	Recent(ctx context.Context, limit int) ([]types.Report, error)

	// Close flushes pending writes and releases resources.
	Close() error

	// Name returns the backend identifier.
	Name() string
}

// NopHistory discards everything. Used when history is disabled.
type NopHistory struct{}

func (NopHistory) Store(context.Context, *types.Report) error { return nil }

func (NopHistory) Recent(context.Context, int) ([]types.Report, error) { return nil, nil }

func (NopHistory) Close() error { return nil }

func (NopHistory) Name() string { return "none" }
