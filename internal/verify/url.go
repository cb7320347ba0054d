package verify

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/drawproof/drawproof/internal/types"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// NormalizeTarget resolves a raw verification code or URL to the absolute
// URL of its results page. A bare code is resolved against baseURL; a full
// http(s) URL passes through unchanged; a scheme-less host path gets https.
func NormalizeTarget(raw, baseURL string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", types.ErrInvalidCode
	}

	if codePattern.MatchString(raw) {
		return strings.TrimRight(baseURL, "/") + "/verify/" + raw, nil
	}

	if !strings.Contains(raw, "://") && strings.Contains(raw, ".") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", types.ErrInvalidCode
	}
	return u.String(), nil
}
