// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Storage model names accepted in [storage].model.
const (
	ModelAuto     = "auto"
	ModelDirect   = "direct"
	ModelRegistry = "registry"
)

// Blob backends accepted in [registry].backend.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Config holds the application's configuration.
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Storage      StorageConfig      `toml:"storage"`
	Registry     RegistryConfig     `toml:"registry"`
	Logging      LoggingConfig      `toml:"logging"`
	Auth         AuthConfig         `toml:"auth"`
	Housekeeping HousekeepingConfig `toml:"housekeeping"`
	S3           S3Config           `toml:"s3"`

	MaxRequestSizeBytes  int64         `toml:"-"` // Runtime computed value
	PendingTTLDuration   time.Duration `toml:"-"`
	HousekeepingInterval time.Duration `toml:"-"`
	TokenTTLDuration     time.Duration `toml:"-"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	MaxRequestSize string `toml:"max_request_size"` // e.g. "32MB"
}

// StorageConfig describes the shared media library.
type StorageConfig struct {
	MediaRoot string `toml:"media_root"`
	// APILevel mirrors the platform level the storage capabilities are derived from.
	APILevel int    `toml:"api_level"`
	Model    string `toml:"model"` // auto, direct or registry
	// PendingDelete overrides whether pending entries can be deleted on rollback.
	PendingDelete *bool `toml:"pending_delete"`
}

// RegistryConfig holds the media registry settings.
type RegistryConfig struct {
	Path       string   `toml:"path"`
	Backend    string   `toml:"backend"` // local or s3
	PendingTTL string   `toml:"pending_ttl"`
	Disabled   []string `toml:"disabled_collections"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"`
}

// AuthConfig enables authentication on the API when Secret is set.
// Username and PasswordHash (bcrypt) additionally allow Basic auth.
type AuthConfig struct {
	Secret       string `toml:"secret"`
	TokenTTL     string `toml:"token_ttl"`
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"`
}

// Enabled reports whether API requests must be authenticated.
func (a AuthConfig) Enabled() bool {
	return a.Secret != "" || a.PasswordHash != ""
}

// HousekeepingConfig controls the purge of expired pending entries.
type HousekeepingConfig struct {
	Enabled  bool   `toml:"enabled"`
	Interval string `toml:"interval"`
}

// S3Config holds the object storage settings for the s3 blob backend.
type S3Config struct {
	Bucket          string `toml:"bucket"`
	Region          string `toml:"region"`
	Endpoint        string `toml:"endpoint"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
	Prefix          string `toml:"prefix"`
}

// Default returns a configuration populated with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			MaxRequestSize: "32MB",
		},
		Storage: StorageConfig{
			MediaRoot: "media_root",
			APILevel:  30,
			Model:     ModelAuto,
		},
		Registry: RegistryConfig{
			Path:       "gallery.db",
			Backend:    BackendLocal,
			PendingTTL: "24h",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			TokenTTL: "24h",
		},
		Housekeeping: HousekeepingConfig{
			Enabled:  true,
			Interval: "1h",
		},
	}
}

// LoadConfig loads the configuration from a TOML file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig writes the configuration back to a TOML file.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values.
func (c *Config) ParseAndValidate() error {
	if c.Server.MaxRequestSize == "" {
		c.Server.MaxRequestSize = "32MB"
	}
	sizeBytes, err := parseSize(c.Server.MaxRequestSize)
	if err != nil {
		return fmt.Errorf("invalid max_request_size: %w", err)
	}
	c.MaxRequestSizeBytes = sizeBytes

	if c.Registry.PendingTTL == "" {
		c.Registry.PendingTTL = "24h"
	}
	if c.PendingTTLDuration, err = time.ParseDuration(c.Registry.PendingTTL); err != nil {
		return fmt.Errorf("invalid pending_ttl: %w", err)
	}
	if c.PendingTTLDuration <= 0 {
		return fmt.Errorf("invalid pending_ttl: must be positive")
	}

	if c.Housekeeping.Interval == "" {
		c.Housekeeping.Interval = "1h"
	}
	if c.HousekeepingInterval, err = time.ParseDuration(c.Housekeeping.Interval); err != nil {
		return fmt.Errorf("invalid housekeeping interval: %w", err)
	}

	if c.Auth.TokenTTL == "" {
		c.Auth.TokenTTL = "24h"
	}
	if c.TokenTTLDuration, err = time.ParseDuration(c.Auth.TokenTTL); err != nil {
		return fmt.Errorf("invalid token_ttl: %w", err)
	}

	c.Storage.Model = strings.ToLower(strings.TrimSpace(c.Storage.Model))
	switch c.Storage.Model {
	case "":
		c.Storage.Model = ModelAuto
	case ModelAuto, ModelDirect, ModelRegistry:
	default:
		return fmt.Errorf("invalid storage model %q: expected auto, direct or registry", c.Storage.Model)
	}
	if c.Storage.MediaRoot == "" {
		return fmt.Errorf("storage media_root must not be empty")
	}

	c.Registry.Backend = strings.ToLower(strings.TrimSpace(c.Registry.Backend))
	switch c.Registry.Backend {
	case "":
		c.Registry.Backend = BackendLocal
	case BackendLocal:
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3 backend requires a bucket")
		}
	default:
		return fmt.Errorf("invalid registry backend %q: expected local or s3", c.Registry.Backend)
	}

	return nil
}

// parseSize parses a size string (e.g., "100G", "500MB") into bytes.
func parseSize(sizeStr string) (int64, error) {
	re := regexp.MustCompile(`(?i)^(\d+)\s*(K|M|G|T)?B?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(sizeStr))

	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", matches[1])
	}

	switch strings.ToUpper(matches[2]) {
	case "T":
		return value * (1 << 40), nil
	case "G":
		return value * (1 << 30), nil
	case "M":
		return value * (1 << 20), nil
	case "K":
		return value * (1 << 10), nil
	default:
		return value, nil
	}
}
