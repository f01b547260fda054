// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Jade2451/LULC-ISA/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Engine contains compute-engine connection settings
	Engine EngineConfig `json:"engine"`

	// Storage contains run-history settings
	Storage StorageConfig `json:"storage"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// EngineConfig contains compute-engine connection settings
type EngineConfig struct {
	// BaseURL is the compute service endpoint
	BaseURL string `json:"base_url"`

	// APIKeyEnv names the environment variable holding the API key
	APIKeyEnv string `json:"api_key_env"`

	// TimeoutSeconds is the per-request timeout
	TimeoutSeconds int `json:"timeout_seconds"`

	// PageSize is the number of pixels requested per page
	PageSize int `json:"page_size"`
}

// APIKey resolves the API key from the configured environment variable.
func (e EngineConfig) APIKey() string {
	if e.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(e.APIKeyEnv)
}

// StorageConfig contains run-history settings
type StorageConfig struct {
	// Enabled turns run-history persistence on
	Enabled bool `json:"enabled"`

	// DatabasePath is the path to the run-history database
	DatabasePath string `json:"database_path"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default report format
	DefaultFormat string `json:"default_format"`

	// ShowAccuracy includes the accuracy block in reports
	ShowAccuracy bool `json:"show_accuracy"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".lulc", "runs.db")

	return &Config{
		Version: "1.0",
		Engine: EngineConfig{
			BaseURL:        "http://localhost:8480",
			APIKeyEnv:      "LULC_API_KEY",
			TimeoutSeconds: 120,
			PageSize:       65536,
		},
		Storage: StorageConfig{
			Enabled:      true,
			DatabasePath: dbPath,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ShowAccuracy:  true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
