// Package cliconfig provides configuration types and loading for the rentdesk CLI.
package cliconfig

import (
	"fmt"
	"net/url"
)

// Config is the complete rentdesk configuration.
// Values come from several sources, highest priority first:
//  1. Command-line flags
//  2. Environment variables (RENTDESK_*)
//  3. The selected context (apiUrl only)
//  4. Local config file (.rentdeskrc.yaml in the current directory, or --config)
//  5. Global config file ($XDG_CONFIG_HOME/rentdesk/config.yaml)
//  6. Defaults
type Config struct {
	// APIURL is the backend base URL; resource paths such as "api/books" are resolved against it.
	APIURL string `yaml:"apiUrl" json:"apiUrl"`

	// Timeout is the HTTP timeout in seconds.
	Timeout int `yaml:"timeout" json:"timeout"`

	// PageSize is the default page size for list commands.
	PageSize int `yaml:"pageSize" json:"pageSize"`

	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// JSON switches command output to JSON.
	JSON bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from.
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records keys explicitly present in a loaded file, so an explicit
	// false can override a true from a lower-priority source.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// Config sources.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceEnv     = "env"
	SourceContext = "context"
	SourceFlag    = "flag"
)

// Validate reports the first out-of-range or malformed value.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("apiUrl %q must be an absolute http(s) URL", c.APIURL)
	}
	if c.Timeout < 1 || c.Timeout > MaxTimeout {
		return fmt.Errorf("timeout %d is out of range (1-%d seconds)", c.Timeout, MaxTimeout)
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("pageSize %d is out of range (1-%d)", c.PageSize, MaxPageSize)
	}
	return nil
}
