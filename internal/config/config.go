// Package config loads application configuration from an optional YAML file,
// SETTINGSDECK_* environment variables and caller overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	deckerrors "github.com/alexisbeaulieu97/settingsdeck/pkg/errors"
)

// EnvPrefix prefixes every environment override, e.g. SETTINGSDECK_STORAGE_BACKEND.
const EnvPrefix = "SETTINGSDECK"

// Config is the application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite memory"`
	// Path is the directory of the file backend or the database file of the sqlite backend.
	Path string `mapstructure:"path" validate:"required_unless=Backend memory"`
	Key  string `mapstructure:"key" validate:"required,storage_key"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=trace debug info warn error"`
	Human bool   `mapstructure:"human"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DefaultTab string `mapstructure:"default_tab"`
	Strict     bool   `mapstructure:"strict"`
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string
	// Overrides take precedence over file and environment, keyed like "log.level".
	Overrides map[string]any
}

// DefaultDir returns the directory holding the config file and file storage.
func DefaultDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "settingsdeck")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "settingsdeck")
}

// Load resolves the configuration and validates it.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", DefaultDir())
	v.SetDefault("storage.key", "config.json")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.human", false)
	v.SetDefault("ui.default_tab", "")
	v.SetDefault("ui.strict", false)

	v.SetConfigType("yaml")

	file := opts.File
	if file == "" {
		file = os.Getenv(EnvPrefix + "_CONFIG")
	}
	explicit := file != ""
	if explicit {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(DefaultDir())
		v.SetConfigName("settingsdeck")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && !explicit:
		case errors.Is(err, os.ErrNotExist):
			return nil, deckerrors.NewParseError(file, 0, err)
		default:
			return nil, deckerrors.NewParseError(v.ConfigFileUsed(), extractLine(err), err)
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
