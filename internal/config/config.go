package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gocd-mcp", "config.json"), nil
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".gocd-mcp"), nil
}

// Config is the root configuration struct
type Config struct {
	// ServerURL is the GoCD server base URL, e.g. https://gocd.example.com/go
	ServerURL string `json:"server_url,omitempty" envconfig:"GOCD_SERVER_URL"`

	// Token is the default bearer token used when a request does not carry
	// its own Authorization header (stdio transport has no per-request auth)
	Token string `json:"token,omitempty" envconfig:"GOCD_API_TOKEN"`

	// LogLevel controls slog verbosity: debug, info, warn, error
	LogLevel string `json:"log_level,omitempty" envconfig:"GOCD_LOG_LEVEL" default:"info"`
}

// Load reads config from file and applies environment variable overrides
func Load() (*Config, error) {
	cfg, err := LoadFromFile()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	if cfg == nil {
		cfg = &Config{}
	}

	// Apply defaults and env overrides
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads config from file only (no env overrides)
func LoadFromFile() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to file
func Save(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Require validates that the GoCD server config is present
func (c *Config) Require() error {
	if c.ServerURL == "" {
		return errors.New("GoCD server URL not configured. Set GOCD_SERVER_URL or add to ~/.gocd-mcp/config.json")
	}
	return nil
}

// RequireToken validates that a default bearer token is present. Only needed
// for transports that cannot carry per-request credentials (stdio).
func (c *Config) RequireToken() error {
	if c.Token == "" {
		return errors.New("GoCD API token not configured. Set GOCD_API_TOKEN or add to ~/.gocd-mcp/config.json")
	}
	return nil
}
