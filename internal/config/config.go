package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for drawproof.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Verify  VerifyConfig  `mapstructure:"verify"  yaml:"verify"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig controls the HTTP API server.
type ServerConfig struct {
	Port      int    `mapstructure:"port"       yaml:"port"`
	StaticDir string `mapstructure:"static_dir" yaml:"static_dir"`
}

// FetcherConfig controls the page fetcher.
type FetcherConfig struct {
	RequestTimeout  time.Duration `mapstructure:"request_timeout"  yaml:"request_timeout"`
	FollowRedirects bool          `mapstructure:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"    yaml:"max_redirects"`
	MaxBodySize     int64         `mapstructure:"max_body_size"    yaml:"max_body_size"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"     yaml:"tls_insecure"`
	UserAgents      []string      `mapstructure:"user_agents"      yaml:"user_agents"`

	// BrowserFallback retries a fetch through the headless browser when the
	// HTTP body trips the bot-check detector.
	BrowserFallback bool `mapstructure:"browser_fallback" yaml:"browser_fallback"`
}

// BrowserConfig controls the headless browser fallback.
type BrowserConfig struct {
	WindowSize string        `mapstructure:"window_size" yaml:"window_size"`
	StableWait time.Duration `mapstructure:"stable_wait" yaml:"stable_wait"`
}

// VerifyConfig controls code resolution and view building.
type VerifyConfig struct {
	// BaseURL is the root of the verification page family; a bare code is
	// resolved against it.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// DefaultBottomCount is the bottom-N size used when a request does not
	// specify one.
	DefaultBottomCount int `mapstructure:"default_bottom_count" yaml:"default_bottom_count"`
}

// StorageConfig controls the verification-run history backend.
type StorageConfig struct {
	Type string `mapstructure:"type" yaml:"type"` // jsonl, mongodb, none
	Path string `mapstructure:"path" yaml:"path"`

	MongoURI        string `mapstructure:"mongo_uri"        yaml:"mongo_uri"`
	MongoDatabase   string `mapstructure:"mongo_database"   yaml:"mongo_database"`
	MongoCollection string `mapstructure:"mongo_collection" yaml:"mongo_collection"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Fetcher: FetcherConfig{
			RequestTimeout:  30 * time.Second,
			FollowRedirects: true,
			MaxRedirects:    10,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			},
			BrowserFallback: false,
		},
		Browser: BrowserConfig{
			WindowSize: "1280,800",
			StableWait: 300 * time.Millisecond,
		},
		Verify: VerifyConfig{
			BaseURL:            "https://lotterio.co",
			DefaultBottomCount: 3,
		},
		Storage: StorageConfig{
			Type:            "jsonl",
			Path:            "./history/runs.jsonl",
			MongoDatabase:   "drawproof",
			MongoCollection: "runs",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
