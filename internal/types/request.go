package types

import (
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Request describes a single page fetch.
type Request struct {
	// URL is the target URL to fetch.
	URL *url.URL

	// Method is the HTTP method. Defaults to GET.
	Method string

	// Headers are custom HTTP headers to send with the request.
	Headers http.Header

	// Timeout overrides the fetcher's default timeout when > 0.
	Timeout time.Duration
}

// NewRequest creates a GET request for the given URL.
func NewRequest(rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q: %w", u.Scheme, ErrInvalidCode)
	}
	return &Request{
		URL:     u,
		Method:  http.MethodGet,
		Headers: make(http.Header),
	}, nil
}

// URLString returns the request URL as a string.
func (r *Request) URLString() string {
	if r.URL == nil {
		return ""
	}
	return r.URL.String()
}
