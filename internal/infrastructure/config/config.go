package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for the NoLongerEvil frontend.
// All configuration is loaded from an optional YAML file and can be
// overridden by the environment variables the Home Assistant add-on sets.
type Config struct {
	Database     DatabaseConfig     `yaml:"database"`
	MQTT         MQTTConfig         `yaml:"mqtt"`
	HTTP         HTTPConfig         `yaml:"http"`
	Registration RegistrationConfig `yaml:"registration"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// DatabaseConfig contains SQLite database settings.
// The database file is shared with the vendor server, so the path must
// point at the same file the vendor writes (default /data/database.sqlite).
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker settings used to build the integration
// config row and, when Announce is enabled, to reach the broker directly.
type MQTTConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Announce enables the one-shot broker connectivity check and
	// availability publish after the integration row is seeded.
	Announce bool `yaml:"announce"`
}

// HTTPConfig contains the ingress HTTP server settings.
type HTTPConfig struct {
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Timeouts HTTPTimeoutConfig `yaml:"timeouts"`
}

// HTTPTimeoutConfig contains HTTP timeout settings in seconds.
type HTTPTimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// RegistrationConfig contains the default identity used for device
// ownership and the integration config row. Multi-user support is a
// configuration choice: every store call takes the user ID explicitly.
type RegistrationConfig struct {
	DefaultUserID    string `yaml:"default_user_id"`
	DefaultUserEmail string `yaml:"default_user_email"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration and applies overrides in order:
//  1. Default values (hardcoded)
//  2. YAML file values (if the file exists)
//  3. Environment variables (the add-on's primary configuration channel)
//
// A missing config file is not an error: the add-on normally configures
// the service entirely through environment variables.
//
// Parameters:
//   - path: Path to the YAML configuration file (may not exist)
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If the file cannot be parsed or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Env-only configuration
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
// MQTT host/port deliberately have no default: the add-on must supply
// them, and their absence is a fatal startup error.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        "/data/database.sqlite",
			WALMode:     true,
			BusyTimeout: 5,
		},
		HTTP: HTTPConfig{
			Host: "0.0.0.0",
			Port: 8082,
			Timeouts: HTTPTimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Registration: RegistrationConfig{
			DefaultUserID:    "homeassistant",
			DefaultUserEmail: "homeassistant@local",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides.
// The names match the variables the Home Assistant add-on exports.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SQLITE3_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("MQTT_HOST"); v != "" {
		cfg.MQTT.Host = v
	}
	if v := os.Getenv("MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.MQTT.Port = port
		}
	}
	if v := os.Getenv("MQTT_USER"); v != "" {
		cfg.MQTT.Username = v
	}
	if v := os.Getenv("MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Password = v
	}
	if v := os.Getenv("MQTT_ANNOUNCE"); v != "" {
		cfg.MQTT.Announce = parseBool(v)
	}
	if v := os.Getenv("INGRESS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Port = port
		}
	}
	if v := os.Getenv("NLE_DEFAULT_USER_ID"); v != "" {
		cfg.Registration.DefaultUserID = v
	}
	if v := os.Getenv("NLE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// parseBool interprets common truthy strings ("1", "true", "yes", "on").
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	// The integration config row cannot be built without a broker address.
	if c.MQTT.Host == "" {
		errs = append(errs, "mqtt.host is required (MQTT_HOST)")
	}
	if c.MQTT.Port <= 0 || c.MQTT.Port > 65535 {
		errs = append(errs, "mqtt.port must be 1-65535 (MQTT_PORT)")
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, "http.port must be 1-65535 (INGRESS_PORT)")
	}

	if c.Registration.DefaultUserID == "" {
		errs = append(errs, "registration.default_user_id is required")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
