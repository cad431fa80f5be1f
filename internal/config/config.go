// Package config loads polycodec settings from defaults, an optional YAML
// file, POLYCODEC_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. POLYCODEC_BACKEND.
const EnvPrefix = "POLYCODEC"

// DefaultFileName is looked up in the working directory when no explicit
// config path is given.
const DefaultFileName = ".polycodec"

// Config holds the resolved settings.
type Config struct {
	Discriminator string       `mapstructure:"discriminator" validate:"required"`
	Strategy      string       `mapstructure:"strategy"`
	Backend       string       `mapstructure:"backend" validate:"oneof=std jsoniter goccy"`
	Pretty        bool         `mapstructure:"pretty"`
	LogLevel      string       `mapstructure:"log_level" validate:"oneof=trace debug info warn warning error"`
	Schema        SchemaConfig `mapstructure:"schema"`
}

// SchemaConfig configures the schema command.
type SchemaConfig struct {
	Format  string `mapstructure:"format" validate:"oneof=json yaml yml"`
	Title   string `mapstructure:"title"`
	Version string `mapstructure:"version"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("discriminator", "$type")
	v.SetDefault("strategy", "")
	v.SetDefault("backend", "std")
	v.SetDefault("pretty", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("schema.format", "json")
	v.SetDefault("schema.title", "Operations")
	v.SetDefault("schema.version", "0.1.0")
}

// Load resolves the configuration held by v. When path is empty an
// optional DefaultFileName.yml in the working directory is read; a missing
// file is not an error in that case.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(DefaultFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
