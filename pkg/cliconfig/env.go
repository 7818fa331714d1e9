package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvAPIURL    = "RENTDESK_API_URL"
	EnvTimeout   = "RENTDESK_TIMEOUT"
	EnvPageSize  = "RENTDESK_PAGE_SIZE"
	EnvLogLevel  = "RENTDESK_LOG_LEVEL"
	EnvLogFormat = "RENTDESK_LOG_FORMAT"
	EnvJSON      = "RENTDESK_JSON"
	EnvConfig    = "RENTDESK_CONFIG"
	EnvContext   = "RENTDESK_CONTEXT"
)

// LoadEnvConfig applies the RENTDESK_* variables present in the environment.
// Unparseable numbers and booleans are ignored.
func LoadEnvConfig(cfg *Config) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
		cfg.Sources["apiUrl"] = SourceEnv
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Timeout = n
			cfg.Sources["timeout"] = SourceEnv
		}
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
			cfg.Sources["pageSize"] = SourceEnv
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		cfg.Sources["logLevel"] = SourceEnv
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		cfg.Sources["logFormat"] = SourceEnv
	}
	if v := os.Getenv(EnvJSON); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.JSON = b
			cfg.Sources["json"] = SourceEnv
		}
	}
}
