// Package fetcher retrieves verification pages over HTTP or, when the page
// family hides behind an automated-access challenge, through a headless
// browser.
package fetcher

import (
	"context"

	"github.com/drawproof/drawproof/internal/types"
)

// Fetcher is the interface for page fetcher implementations.
type Fetcher interface {
	// Fetch retrieves the content at the given request's URL.
	Fetch(ctx context.Context, req *types.Request) (*types.Response, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}
