package cliconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ContextConfigFileName is the name of the context configuration file.
const ContextConfigFileName = "contexts.json"

// ContextConfigVersion is the current version of the context config schema.
const ContextConfigVersion = 1

// ContextConfig holds the named backends the user can switch between.
// It is stored apart from Config so switching never rewrites a config file.
type ContextConfig struct {
	// Version is the config schema version for future migrations
	Version int `json:"version"`

	// CurrentContext is the name of the active context, "" for none.
	CurrentContext string `json:"currentContext"`

	// Contexts maps context names to their configuration
	Contexts map[string]*Context `json:"contexts"`
}

// Context is a named backend, similar to a kubectl context: local, staging, CI and so on.
type Context struct {
	// APIURL is the backend base URL (e.g. "http://localhost:8080/")
	APIURL string `json:"apiUrl"`

	// Description is an optional human-readable description
	Description string `json:"description,omitempty"`
}

// NewDefaultContextConfig creates an empty ContextConfig.
func NewDefaultContextConfig() *ContextConfig {
	return &ContextConfig{
		Version:  ContextConfigVersion,
		Contexts: make(map[string]*Context),
	}
}

// GetContextConfigPath returns the path to the context config file.
func GetContextConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(configDir, GlobalConfigDir, ContextConfigFileName), nil
}

// LoadContextConfig loads the context configuration from disk.
// If the file doesn't exist, returns an empty configuration.
func LoadContextConfig() (*ContextConfig, error) {
	path, err := GetContextConfigPath()
	if err != nil {
		//nolint:nilerr // no config dir simply means no contexts
		return NewDefaultContextConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefaultContextConfig(), nil
		}
		return nil, fmt.Errorf("failed to read context config: %w", err)
	}

	var cfg ContextConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{
			Path:    path,
			Message: fmt.Sprintf("invalid JSON: %s", err.Error()),
		}
	}
	if cfg.Contexts == nil {
		cfg.Contexts = make(map[string]*Context)
	}
	return &cfg, nil
}

// SaveContextConfig saves the context configuration to disk.
func SaveContextConfig(cfg *ContextConfig) error {
	path, err := GetContextConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode context config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write context config: %w", err)
	}
	return nil
}

// GetCurrentContext returns the currently active context.
// Returns nil if no context is set or the context doesn't exist.
func (c *ContextConfig) GetCurrentContext() *Context {
	if c.CurrentContext == "" {
		return nil
	}
	return c.Contexts[c.CurrentContext]
}

// SetCurrentContext switches to the named context.
func (c *ContextConfig) SetCurrentContext(name string) error {
	if _, exists := c.Contexts[name]; !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	c.CurrentContext = name
	return nil
}

// AddContext adds a new context with the given name.
func (c *ContextConfig) AddContext(name string, ctx *Context) error {
	if name == "" {
		return errors.New("context name is required")
	}
	if _, exists := c.Contexts[name]; exists {
		return fmt.Errorf("context already exists: %s", name)
	}
	if c.Contexts == nil {
		c.Contexts = make(map[string]*Context)
	}
	c.Contexts[name] = ctx
	return nil
}

// RemoveContext removes a context by name. The current context cannot be removed.
func (c *ContextConfig) RemoveContext(name string) error {
	if _, exists := c.Contexts[name]; !exists {
		return fmt.Errorf("context not found: %s", name)
	}
	if c.CurrentContext == name {
		return errors.New("cannot remove current context; switch to another context first")
	}
	delete(c.Contexts, name)
	return nil
}

// ResolveContext resolves which context to use.
// Priority: explicit flag > env var > current context
func ResolveContext(flagValue string, contexts *ContextConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if envCtx := os.Getenv(EnvContext); envCtx != "" {
		return envCtx
	}
	return contexts.CurrentContext
}

// ApplyContext overrides the file-configured API URL with the one of the
// selected context. An API URL from the environment still wins. A context
// named by flag or RENTDESK_CONTEXT must exist.
func ApplyContext(cfg *Config, flagValue string) error {
	contexts, err := LoadContextConfig()
	if err != nil {
		return err
	}
	name := ResolveContext(flagValue, contexts)
	if name == "" {
		return nil
	}
	ctx, ok := contexts.Contexts[name]
	if !ok {
		if name != contexts.CurrentContext {
			return fmt.Errorf("context not found: %s", name)
		}
		return nil
	}
	if ctx.APIURL == "" || cfg.Sources["apiUrl"] == SourceEnv {
		return nil
	}
	cfg.APIURL = ctx.APIURL
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}
	cfg.Sources["apiUrl"] = SourceContext
	return nil
}
