package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the global config dir and cwd at empty temp dirs and clears RENTDESK_* vars.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{EnvAPIURL, EnvTimeout, EnvPageSize, EnvLogLevel, EnvLogFormat, EnvJSON, EnvConfig, EnvContext} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNewDefault(t *testing.T) {
	cfg := NewDefault()
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, SourceDefault, cfg.Sources["apiUrl"])
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"relative url", func(c *Config) { c.APIURL = "localhost:8080" }, "apiUrl"},
		{"ftp url", func(c *Config) { c.APIURL = "ftp://example.com" }, "apiUrl"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout 0"},
		{"huge page", func(c *Config) { c.PageSize = MaxPageSize + 1 }, "pageSize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEndpointFor(t *testing.T) {
	cfg := &Config{APIURL: "https://library.example.com/"}
	assert.Equal(t, "https://library.example.com/api/books", cfg.EndpointFor("api/books"))
	assert.Equal(t, "https://library.example.com/api/books", cfg.EndpointFor("/api/books"))

	cfg.APIURL = "https://library.example.com/admin"
	assert.Equal(t, "https://library.example.com/admin/api/rentals", cfg.EndpointFor("api/rentals"))

	assert.Equal(t, "http://localhost:8080/api/patrons", (&Config{}).EndpointFor("api/patrons"))
}

func TestMergeConfig(t *testing.T) {
	target := NewDefault()
	MergeConfig(target, &Config{APIURL: "http://other:9000/", PageSize: 50}, SourceLocal)

	assert.Equal(t, "http://other:9000/", target.APIURL)
	assert.Equal(t, 50, target.PageSize)
	assert.Equal(t, DefaultTimeout, target.Timeout)
	assert.Equal(t, SourceLocal, target.Sources["apiUrl"])
	assert.Equal(t, SourceDefault, target.Sources["timeout"])
}

func TestMergeConfig_ExplicitFalse(t *testing.T) {
	target := NewDefault()
	target.JSON = true
	MergeConfig(target, &Config{JSON: false, SetFields: map[string]bool{"json": true}}, SourceLocal)
	assert.False(t, target.JSON)
	assert.Equal(t, SourceLocal, target.Sources["json"])
}

func TestLoadAll_Precedence(t *testing.T) {
	dir := isolate(t)

	writeFile(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), GlobalConfigDir, "config.yaml"),
		"apiUrl: http://global:1/\ntimeout: 5\npageSize: 7\n")
	writeFile(t, filepath.Join(dir, ".rentdeskrc.yaml"), "apiUrl: http://local:2/\njson: true\n")
	t.Setenv(EnvPageSize, "99")

	cfg, err := LoadAll("")
	require.NoError(t, err)

	assert.Equal(t, "http://local:2/", cfg.APIURL)
	assert.Equal(t, SourceLocal, cfg.Sources["apiUrl"])
	assert.Equal(t, 5, cfg.Timeout)
	assert.Equal(t, SourceGlobal, cfg.Sources["timeout"])
	assert.Equal(t, 99, cfg.PageSize)
	assert.Equal(t, SourceEnv, cfg.Sources["pageSize"])
	assert.True(t, cfg.JSON)
}

func TestLoadAll_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "apiUrl: http://explicit:3/\n")

	cfg, err := LoadAll(path)
	require.NoError(t, err)
	assert.Equal(t, "http://explicit:3/", cfg.APIURL)

	_, err = LoadAll(filepath.Join(dir, "missing.yaml"))
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoadConfigFile_Malformed(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "timeout: [not a number\n")

	_, err := LoadConfigFile(path)
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, path, cfgErr.Path)
}

func TestLoadEnvConfig_IgnoresGarbage(t *testing.T) {
	isolate(t)
	t.Setenv(EnvTimeout, "soon")
	t.Setenv(EnvJSON, "yes please")
	t.Setenv(EnvLogLevel, "debug")

	cfg := NewDefault()
	LoadEnvConfig(cfg)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.False(t, cfg.JSON)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, SourceEnv, cfg.Sources["logLevel"])
}
