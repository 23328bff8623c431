// Package config handles firepit's persisted CLI configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the connection settings persisted in ~/.firepit/config.json.
// Environment variables override the file on load.
type Config struct {
	ProjectID       string `json:"project_id,omitempty"`       // Firestore project
	DatabaseURL     string `json:"database_url,omitempty"`     // Realtime Database URL
	CredentialsFile string `json:"credentials_file,omitempty"` // Service account key path
}

const (
	FirepitDir = ".firepit"
	ConfigFile = "config.json"
)

// Environment variable overrides.
const (
	EnvProject     = "FIREPIT_PROJECT"
	EnvDatabaseURL = "FIREPIT_DATABASE_URL"
	EnvCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
)

// Keys lists the settable configuration keys, as accepted by
// `firepit config set`.
var Keys = []string{"project", "database-url", "credentials"}

// Dir returns the configuration directory under the given home path.
func Dir(home string) string {
	return filepath.Join(home, FirepitDir)
}

// Path returns the configuration file path under the given home path.
func Path(home string) string {
	return filepath.Join(home, FirepitDir, ConfigFile)
}

// Load reads configuration from the given home directory and applies
// environment overrides. A missing file yields a zero config, not an
// error, so overrides alone are enough to run.
func Load(home string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(Path(home))
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if v := os.Getenv(EnvProject); v != "" {
		cfg.ProjectID = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv(EnvCredentials); v != "" {
		cfg.CredentialsFile = v
	}
	return &cfg, nil
}

// Save writes configuration to the given home directory, creating the
// config directory if needed.
func (c *Config) Save(home string) error {
	if err := os.MkdirAll(Dir(home), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(Path(home), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Set updates one configuration key by its CLI name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "project":
		c.ProjectID = value
	case "database-url":
		c.DatabaseURL = value
	case "credentials":
		c.CredentialsFile = value
	default:
		return fmt.Errorf("unknown config key %q (valid: %v)", key, Keys)
	}
	return nil
}

// Get returns one configuration value by its CLI name.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "project":
		return c.ProjectID, nil
	case "database-url":
		return c.DatabaseURL, nil
	case "credentials":
		return c.CredentialsFile, nil
	}
	return "", fmt.Errorf("unknown config key %q (valid: %v)", key, Keys)
}
