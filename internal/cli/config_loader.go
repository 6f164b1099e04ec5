// filepath: internal/cli/config_loader.go
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gallerysaver/internal/config"
	"gallerysaver/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "GALLERY"

// flagKeys maps command line flags to the configuration keys they override.
// Flags a command does not define are skipped.
var flagKeys = map[string]string{
	"log-level":        "logging.level",
	"media-root":       "storage.media_root",
	"registry-path":    "registry.path",
	"api-level":        "storage.api_level",
	"model":            "storage.model",
	"host":             "server.host",
	"port":             "server.port",
	"jwt-secret":       "auth.secret",
	"audit-enabled":    "logging.audit_enabled",
	"housekeeping":     "housekeeping.enabled",
	"blob-backend":     "registry.backend",
	"max-request-size": "server.max_request_size",
}

// envKeys are the configuration keys that can be overridden from GALLERY_* variables.
var envKeys = []string{
	"server.host", "server.port", "server.max_request_size",
	"storage.media_root", "storage.api_level", "storage.model", "storage.pending_delete",
	"registry.path", "registry.backend", "registry.pending_ttl",
	"logging.level", "logging.audit_enabled",
	"auth.secret", "auth.token_ttl", "auth.username", "auth.password_hash",
	"housekeeping.enabled", "housekeeping.interval",
	"s3.bucket", "s3.region", "s3.endpoint", "s3.access_key_id", "s3.secret_access_key", "s3.prefix",
}

// newViper creates the override layer: GALLERY_* variables below the flags of cmd.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	if err := v.BindEnv("config_path"); err != nil {
		return nil, err
	}
	if flags == nil {
		return v, nil
	}
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}
	if f := flags.Lookup("config_path"); f != nil {
		if err := v.BindPFlag("config_path", f); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// loadConfig builds the configuration: defaults < file < environment < flags.
func (options *GlobalOptions) loadConfig(cmd *cobra.Command) error {
	v, err := newViper(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to bind configuration overrides: %w", err)
	}
	options.viper = v

	if v.IsSet("config_path") {
		options.CfgFilePath = v.GetString("config_path")
	}

	cfg, err := config.LoadConfig(options.CfgFilePath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load configuration from %s: %w", options.CfgFilePath, err)
		}
		// No file: rely on defaults, environment and flags.
		cfg = config.Default()
	}

	applyOverrides(v, cfg)

	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logging.Init(cfg.Logging.Level)
	options.Conf = cfg
	return nil
}

func applyOverrides(v *viper.Viper, c *config.Config) {
	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	setInt := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}

	setString("server.host", &c.Server.Host)
	setInt("server.port", &c.Server.Port)
	setString("server.max_request_size", &c.Server.MaxRequestSize)

	setString("storage.media_root", &c.Storage.MediaRoot)
	setInt("storage.api_level", &c.Storage.APILevel)
	setString("storage.model", &c.Storage.Model)
	if v.IsSet("storage.pending_delete") {
		b := v.GetBool("storage.pending_delete")
		c.Storage.PendingDelete = &b
	}

	setString("registry.path", &c.Registry.Path)
	setString("registry.backend", &c.Registry.Backend)
	setString("registry.pending_ttl", &c.Registry.PendingTTL)

	setString("logging.level", &c.Logging.Level)
	setBool("logging.audit_enabled", &c.Logging.AuditEnabled)

	setString("auth.secret", &c.Auth.Secret)
	setString("auth.token_ttl", &c.Auth.TokenTTL)
	setString("auth.username", &c.Auth.Username)
	setString("auth.password_hash", &c.Auth.PasswordHash)

	setBool("housekeeping.enabled", &c.Housekeeping.Enabled)
	setString("housekeeping.interval", &c.Housekeeping.Interval)

	setString("s3.bucket", &c.S3.Bucket)
	setString("s3.region", &c.S3.Region)
	setString("s3.endpoint", &c.S3.Endpoint)
	setString("s3.access_key_id", &c.S3.AccessKeyID)
	setString("s3.secret_access_key", &c.S3.SecretAccessKey)
	setString("s3.prefix", &c.S3.Prefix)
}
