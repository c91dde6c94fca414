package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds process level settings read from the environment or an
// optional config file. The registries themselves read no configuration.
type Config struct {
	Log struct {
		Mode   string
		Level  string
		Output string
	}
	Menu struct {
		Currency string
	}
}

// Load reads configuration from PLATES_* environment variables and an
// optional config file in the working directory.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PLATES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.mode", "production")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stderr")
	v.SetDefault("menu.currency", "$")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
