package config

import "time"

// Config holds runtime settings for the Revume CLI.
//
// The probe fields describe the cold-start recovery schedule: up to
// ProbeAttempts health checks, ProbeShortDelay between the first three and
// ProbeLongDelay after, with RetryDebounce before the single automatic retry
// of the operation that detected the outage.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration

	ProbeAttempts   uint64
	ProbeShortDelay time.Duration
	ProbeLongDelay  time.Duration
	RetryDebounce   time.Duration

	PrefsPath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.ProbeAttempts = 12
	c.ProbeShortDelay = time.Second
	c.ProbeLongDelay = 1500 * time.Millisecond
	c.RetryDebounce = 300 * time.Millisecond
	c.PrefsPath = "revume.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
