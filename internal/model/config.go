package model

import "time"

// Config holds all tunable settings. Values come from (highest priority
// first): CLI flags, AIRLINES_* environment variables, the config file,
// and the defaults below.
type Config struct {
	HTTP        HTTPConfig        `mapstructure:"http" yaml:"http" json:"http"`
	Cache       CacheConfig       `mapstructure:"cache" yaml:"cache" json:"cache"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit" yaml:"rate_limit" json:"rate_limit"`
	Lookup      LookupConfig      `mapstructure:"lookup" yaml:"lookup" json:"lookup"`
	Concurrency ConcurrencyConfig `mapstructure:"concurrency" yaml:"concurrency" json:"concurrency"`
	LLM         LLMConfig         `mapstructure:"llm" yaml:"llm" json:"llm"`
	Output      OutputConfig      `mapstructure:"output" yaml:"output" json:"output"`
}

// HTTPConfig controls the outbound HTTP client.
type HTTPConfig struct {
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
	UserAgent    string        `mapstructure:"user_agent" yaml:"user_agent" json:"user_agent"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes" json:"max_body_bytes"`
	MaxRedirects int           `mapstructure:"max_redirects" yaml:"max_redirects" json:"max_redirects"`
}

// CacheConfig controls the layered lookup cache.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Dir       string        `mapstructure:"dir" yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `mapstructure:"memory_ttl" yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `mapstructure:"disk_ttl" yaml:"disk_ttl" json:"disk_ttl"`
}

// RateLimitConfig controls per-host request pacing.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `mapstructure:"burst" yaml:"burst" json:"burst"`
}

// LookupConfig controls the encyclopedia lookup adapter.
type LookupConfig struct {
	APIBase      string `mapstructure:"api_base" yaml:"api_base" json:"api_base"`
	SearchLimit  int    `mapstructure:"search_limit" yaml:"search_limit" json:"search_limit"`
	HTMLFallback bool   `mapstructure:"html_fallback" yaml:"html_fallback" json:"html_fallback"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers" json:"workers"`
}

// LLMConfig controls the optional low-confidence second opinion.
// The LLM never changes a heuristic result; it only annotates.
type LLMConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Model   string `mapstructure:"model" yaml:"model" json:"model"`
	APIKey  string `mapstructure:"-" yaml:"-" json:"-"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url,omitempty" json:"base_url,omitempty"`
}

// OutputConfig controls report rendering and progress output.
type OutputConfig struct {
	Verbose         bool `mapstructure:"verbose" yaml:"verbose" json:"verbose"`
	CheckpointEvery int  `mapstructure:"checkpoint_every" yaml:"checkpoint_every" json:"checkpoint_every"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "airlines/0.1 (+https://github.com/JinojiLock/Airlines)",
			MaxBodyBytes: 2_000_000,
			MaxRedirects: 3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // resolved to ~/.airlines/cache by the CLI
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Lookup: LookupConfig{
			APIBase:      "https://en.wikipedia.org/w/api.php",
			SearchLimit:  5,
			HTMLFallback: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Enabled: false,
			Model:   "gpt-4o-mini",
		},
		Output: OutputConfig{
			Verbose:         false,
			CheckpointEvery: 100,
		},
	}
}
