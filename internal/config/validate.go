package config

import (
	"fmt"
	"net/url"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", cfg.Server.Port)
	}

	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}

	if cfg.Verify.BaseURL == "" {
		return fmt.Errorf("verify.base_url must not be empty")
	}
	u, err := url.Parse(cfg.Verify.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("verify.base_url must be an absolute http(s) URL, got %q", cfg.Verify.BaseURL)
	}
	if cfg.Verify.DefaultBottomCount < 1 {
		return fmt.Errorf("verify.default_bottom_count must be >= 1, got %d", cfg.Verify.DefaultBottomCount)
	}

	switch cfg.Storage.Type {
	case "jsonl":
		if cfg.Storage.Path == "" {
			return fmt.Errorf("storage.path must be set for jsonl storage")
		}
	case "mongodb":
		if cfg.Storage.MongoURI == "" {
			return fmt.Errorf("storage.mongo_uri must be set for mongodb storage")
		}
	case "none":
	default:
		return fmt.Errorf("storage.type must be 'jsonl', 'mongodb' or 'none', got %q", cfg.Storage.Type)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", cfg.Logging.Level)
	}

	return nil
}
