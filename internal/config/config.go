// Package config loads application configuration from a YAML file with
// environment-variable overrides and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from YAML.
type Config struct {
	OutputDir         string `yaml:"output_dir" mapstructure:"output_dir"`
	Timezone          string `yaml:"timezone" mapstructure:"timezone"`
	Locale            string `yaml:"locale" mapstructure:"locale"`
	MaxMessages       int    `yaml:"max_messages" mapstructure:"max_messages"`
	MaxThreadMessages int    `yaml:"max_thread_messages" mapstructure:"max_thread_messages"`
	PageLimit         int    `yaml:"page_limit" mapstructure:"page_limit"`
	BotCachePath      string `yaml:"bot_cache_path" mapstructure:"bot_cache_path"`
}

// Load reads configuration from the given path, or from
// ~/.config/slackpipe/config.yaml when path is empty. Environment
// variables prefixed SLACKPIPE_ override file values; a missing default
// config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("output_dir", ".")
	v.SetDefault("timezone", "")
	v.SetDefault("locale", "")
	v.SetDefault("max_messages", 10000)
	v.SetDefault("max_thread_messages", 25000)
	v.SetDefault("page_limit", 200)
	v.SetDefault("bot_cache_path", "")

	v.SetEnvPrefix("SLACKPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/slackpipe")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}
