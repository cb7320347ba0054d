package types

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure modes.
var (
	ErrNoRoundsFound      = errors.New("no round headings found on the page")
	ErrNoNamesParsed      = errors.New("round headings found but no names could be parsed")
	ErrInvalidBottomCount = errors.New("bottom count must be a positive integer")
	ErrBotCheck           = errors.New("page looks like an automated-access challenge")
	ErrEmptyResponse      = errors.New("empty response body")
	ErrInvalidCode        = errors.New("invalid verification code or URL")
)

// FetchError wraps errors that occur while fetching the results page.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
	Retryable  bool
	RetryAfter time.Duration // populated from Retry-After header on HTTP 429
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) IsRetryable() bool { return e.Retryable }
