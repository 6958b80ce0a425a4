package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/photoshare/internal/flagx"
)

// jsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer fields
// distinguish "absent" from "zero" so a partial file only touches the keys it
// names.
type jsonConfig struct {
	ServerBaseURL     *string  `json:"server_base_url"`
	DatabasePath      *string  `json:"database_path"`
	RequestTimeout    *string  `json:"request_timeout"`
	RequestsPerSecond *float64 `json:"requests_per_second"`
	LogLevel          *int     `json:"log_level"`
	OTLPEndpoint      *string  `json:"otlp_endpoint"`
}

// parseJSON overlays cfg with values loaded from the file named by -c or
// -config. Without such a flag it does nothing. Read, unmarshal and duration
// errors panic; main treats them as fatal startup errors.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		d, err := time.ParseDuration(*jc.RequestTimeout)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if jc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *jc.RequestsPerSecond
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.OTLPEndpoint != nil {
		cfg.OTLPEndpoint = *jc.OTLPEndpoint
	}
}
