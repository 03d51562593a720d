// Package config loads process-wide DAP core configuration from a YAML
// file, environment variables, and defaults, following the same
// decode-hook pattern the rest of the teacher's services use. A file value
// overrides its default, and a DAPCORE_* environment variable overrides
// only a key the file itself sets. When no file is found, Load returns the
// defaults and reads no environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/marmos91/dapcore/pkg/messages"
	"github.com/marmos91/dapcore/pkg/taskconfig"
)

// Config is the top-level configuration for a DAP core process.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (DAPCORE_*), for keys the file sets
//  2. Configuration file (YAML)
//  3. Default values (lowest priority)
//
// Load reads no environment variables when no configuration file is found.
type Config struct {
	Logging LoggingConfig           `mapstructure:"logging" yaml:"logging"`
	Global  taskconfig.GlobalConfig `mapstructure:"global" yaml:"global"`
}

// LoggingConfig controls logging behavior, mirroring internal/logger.Config.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`
	Output string `mapstructure:"output" yaml:"output" validate:"required"`
}

// Load loads configuration from file, environment, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	found, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}
	if !found {
		cfg := defaultConfig()
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Global.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes cfg to path in YAML, respecting yaml tags.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in unspecified values with sensible defaults. Zero
// values are replaced; explicit values are preserved.
func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Global.ReportStorageEpochDuration == 0 {
		cfg.Global.ReportStorageEpochDuration = messages.Duration(14 * 24 * 3600) // 14 days
	}
	if cfg.Global.ReportStorageMaxFutureTimeSkew == 0 {
		cfg.Global.ReportStorageMaxFutureTimeSkew = messages.Duration(300) // 5 minutes
	}
	if cfg.Global.MaxBatchDuration == 0 {
		cfg.Global.MaxBatchDuration = messages.Duration(24 * 3600) // 1 day
	}
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix("DAPCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
}

func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("config: read config file: %w", err)
	}
	return true, nil
}

// configDecodeHooks composes the custom decode hooks this config's
// domain-specific scalar types need: messages.Duration and messages.Time
// accept either a Go duration string ("24h", "300s") or a raw integer
// seconds count, and ProtocolVersion accepts its wire short name ("v02",
// "v03").
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		durationDecodeHook(),
		timeDecodeHook(),
		protocolVersionDecodeHook(),
	)
}

func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(messages.Duration(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			d, err := time.ParseDuration(v)
			if err != nil {
				return nil, fmt.Errorf("config: parse duration %q: %w", v, err)
			}
			return messages.Duration(d.Seconds()), nil
		case int:
			return messages.Duration(v), nil
		case int64:
			return messages.Duration(v), nil
		case float64:
			return messages.Duration(v), nil
		default:
			return data, nil
		}
	}
}

func timeDecodeHook() mapstructure.DecodeHookFunc {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(messages.Time(0)) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, fmt.Errorf("config: parse time %q: %w", v, err)
			}
			return messages.Time(t.Unix()), nil
		case int:
			return messages.Time(v), nil
		case int64:
			return messages.Time(v), nil
		case float64:
			return messages.Time(v), nil
		default:
			return data, nil
		}
	}
}

func protocolVersionDecodeHook() mapstructure.DecodeHookFunc {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != reflect.TypeOf(messages.VersionUnknown) {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		version := messages.ParseProtocolVersion(s)
		if version == messages.VersionUnknown {
			return nil, fmt.Errorf("config: unrecognized protocol version %q", s)
		}
		return version, nil
	}
}

// getConfigDir returns $XDG_CONFIG_HOME/dapcore, falling back to
// ~/.config/dapcore, or "." if the home directory can't be determined.
func getConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dapcore")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "dapcore")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists reports whether a config file exists at the default
// location.
func DefaultConfigExists() bool {
	_, err := os.Stat(GetDefaultConfigPath())
	return err == nil
}
