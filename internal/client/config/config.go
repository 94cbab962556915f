package config

import "time"

// Config holds runtime settings for the Sisimpur CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the backend REST API, including the /api prefix.
//   - PollInterval: fixed delay between job status polls.
//   - RequestTimeout: per-request HTTP timeout.
//   - DataDir: directory for the local state database; empty means the
//     platform's user config directory.
type Config struct {
	ServerBaseURL  string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	DataDir        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000/api"
	c.PollInterval = 3 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.DataDir = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
