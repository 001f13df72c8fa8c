package config

import (
	"encoding/json"
	"os"

	"github.com/revumeapp/revume-cli/internal/flagx"
	"github.com/revumeapp/revume-cli/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations can
// be given either as strings like "300ms" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL         string          `json:"base_url"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	ProbeAttempts   *uint64         `json:"probe_attempts"`
	ProbeShortDelay *timex.Duration `json:"probe_short_delay"`
	ProbeLongDelay  *timex.Duration `json:"probe_long_delay"`
	RetryDebounce   *timex.Duration `json:"retry_debounce"`
	PrefsPath       string          `json:"prefs_path"`
}

// parseJson overlays cfg with values from the file named by -c/-config.
// Absent fields keep their current values; read or parse errors panic, as a
// broken config file should stop startup.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ProbeAttempts != nil {
		cfg.ProbeAttempts = *jc.ProbeAttempts
	}
	if jc.ProbeShortDelay != nil {
		cfg.ProbeShortDelay = jc.ProbeShortDelay.Duration
	}
	if jc.ProbeLongDelay != nil {
		cfg.ProbeLongDelay = jc.ProbeLongDelay.Duration
	}
	if jc.RetryDebounce != nil {
		cfg.RetryDebounce = jc.RetryDebounce.Duration
	}
	if jc.PrefsPath != "" {
		cfg.PrefsPath = jc.PrefsPath
	}
}
