// Package config loads runtime configuration for the photoshare client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJSON) selected via flags: -c or -config.
//  3. Environment variables prefixed with PHOTOSHARE_ (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the photo-sharing API
//	-d string   path of the local session database
//	-t int      per-request timeout in seconds (0 disables it)
//	-l int      log level (-4 debug, 0 info, 4 warn, 8 error)
//
// # JSON schema
//
// Durations are Go duration strings:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000/",
//	  "database_path": "session.db",
//	  "request_timeout": "15s",
//	  "requests_per_second": 5,
//	  "log_level": 0,
//	  "otlp_endpoint": ""
//	}
package config
