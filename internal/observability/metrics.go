// Package observability tracks operational counters for the verification
// service.
package observability

import (
	"sync/atomic"
)

// Metrics tracks counters across verification runs. All fields are safe for
// concurrent use.
type Metrics struct {
	VerificationsTotal  atomic.Int64
	VerificationsFailed atomic.Int64

	FetchesTotal    atomic.Int64
	FetchesFailed   atomic.Int64
	BotChecksHit    atomic.Int64
	BrowserFallback atomic.Int64

	RoundsExtracted atomic.Int64
	BytesFetched    atomic.Int64
}

// NewMetrics creates a zeroed metrics set.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Snapshot returns current counter values for the stats endpoint.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"verifications_total":  m.VerificationsTotal.Load(),
		"verifications_failed": m.VerificationsFailed.Load(),
		"fetches_total":        m.FetchesTotal.Load(),
		"fetches_failed":       m.FetchesFailed.Load(),
		"bot_checks_hit":       m.BotChecksHit.Load(),
		"browser_fallbacks":    m.BrowserFallback.Load(),
		"rounds_extracted":     m.RoundsExtracted.Load(),
		"bytes_fetched":        m.BytesFetched.Load(),
	}
}
