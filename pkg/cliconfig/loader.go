package cliconfig

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfigDir is the directory below the user config dir holding the global config.
const GlobalConfigDir = "rentdesk"

// LocalConfigFileNames are searched, in order, in the current directory.
var LocalConfigFileNames = []string{".rentdeskrc.yaml", ".rentdeskrc.yml"}

// GlobalConfigFileNames are searched, in order, in the global config directory.
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// ConfigError reports a config file that could not be parsed.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// FindLocalConfig returns the first local config file in the current directory,
// or "" when there is none.
func FindLocalConfig() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return firstExisting(cwd, LocalConfigFileNames), nil
}

// FindGlobalConfig returns the global config file path, or "" when there is none.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir simply means no global config
		return "", nil
	}
	return firstExisting(filepath.Join(configDir, GlobalConfigDir), GlobalConfigFileNames), nil
}

func firstExisting(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads a Config from a YAML file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}

	var keys map[string]any
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}
	cfg.SetFields = make(map[string]bool, len(keys))
	for k := range keys {
		cfg.SetFields[k] = true
	}
	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// LoadAll loads defaults, the global file, the local file (or explicitPath when
// given, falling back to RENTDESK_CONFIG) and the environment, in that order.
// Unreadable global or local files are skipped; an unreadable explicit file is an error.
func LoadAll(explicitPath string) (*Config, error) {
	cfg := NewDefault()

	if globalPath, err := FindGlobalConfig(); err == nil && globalPath != "" {
		if globalCfg, err := LoadConfigFile(globalPath); err == nil {
			MergeConfig(cfg, globalCfg, SourceGlobal)
		}
	}

	if explicitPath == "" {
		explicitPath = os.Getenv(EnvConfig)
	}
	if explicitPath != "" {
		localCfg, err := LoadConfigFile(explicitPath)
		if err != nil {
			var cfgErr *ConfigError
			if errors.As(err, &cfgErr) {
				return nil, err
			}
			return nil, &ConfigError{Path: explicitPath, Message: err.Error()}
		}
		MergeConfig(cfg, localCfg, SourceLocal)
	} else if localPath, err := FindLocalConfig(); err == nil && localPath != "" {
		if localCfg, err := LoadConfigFile(localPath); err == nil {
			MergeConfig(cfg, localCfg, SourceLocal)
		}
	}

	LoadEnvConfig(cfg)
	return cfg, nil
}
