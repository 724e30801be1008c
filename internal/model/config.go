package model

import "time"

// Config is the complete runtime configuration.
type Config struct {
	Coding       CodingConfig       `yaml:"coding" mapstructure:"coding"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// CodingConfig controls the core pipeline.
type CodingConfig struct {
	Fallback       bool `yaml:"fallback" mapstructure:"fallback"`               // Enable catch-all fallback pass
	Specificity    bool `yaml:"specificity" mapstructure:"specificity"`         // Enable raw-text specificity correction
	IncludeContext bool `yaml:"include_context" mapstructure:"include_context"` // Attach the extracted context to results
	MaxInputBytes  int  `yaml:"max_input_bytes" mapstructure:"max_input_bytes"`
	MaxLines       int  `yaml:"max_lines" mapstructure:"max_lines"`
	MaxLineLength  int  `yaml:"max_line_length" mapstructure:"max_line_length"`
}

// CacheConfig controls result memoization.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir" mapstructure:"dir"` // Persist results across runs when set
}

// ConcurrencyConfig controls the batch worker pool.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig throttles batch processing per input source.
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 0 disables
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls rendering and logging.
type OutputConfig struct {
	Verbose   bool   `yaml:"verbose" mapstructure:"verbose"`
	LogFormat string `yaml:"log_format" mapstructure:"log_format"` // "text" or "json"
	Markdown  bool   `yaml:"markdown" mapstructure:"markdown"`
}

// DefaultConfig returns the built-in defaults. Results are not memoized, so
// no state outlives one call to the core coder.
func DefaultConfig() *Config {
	return &Config{
		Coding: CodingConfig{
			Fallback:      true,
			Specificity:   true,
			MaxInputBytes: 1 << 20,
			MaxLines:      5000,
			MaxLineLength: 4000,
		},
		Cache: CacheConfig{
			Enabled: false,
			TTL:     30 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 0,
			BurstSize:         5,
		},
		Output: OutputConfig{
			LogFormat: "text",
		},
	}
}

// ToolConfig returns the defaults of the command-line tool, which memoizes
// results across the cases of one run.
func ToolConfig() *Config {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = true
	return cfg
}
