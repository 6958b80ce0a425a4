package config

import "time"

// Config holds runtime settings for the photoshare client.
//
// A zero RequestTimeout means requests wait as long as the server does, and
// a zero RequestsPerSecond disables client-side pacing.
type Config struct {
	ServerBaseURL     string        `env:"SERVER_BASE_URL"`
	DatabasePath      string        `env:"DATABASE_PATH"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT"`
	RequestsPerSecond float64       `env:"REQUESTS_PER_SECOND"`
	LogLevel          int           `env:"LOG_LEVEL"`
	OTLPEndpoint      string        `env:"OTLP_ENDPOINT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000/"
	c.DatabasePath = "session.db"
	c.RequestTimeout = 0
	c.RequestsPerSecond = 0
	c.LogLevel = 0
	c.OTLPEndpoint = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseFlags(cfg)
	return cfg, nil
}
