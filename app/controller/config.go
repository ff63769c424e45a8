package main

import (
	"ingest/pkg/license"
	"ingest/pkg/util/config"
	"ingest/pkg/util/context"

	"github.com/pkg/errors"
)

// Config is the configuration of the controller.
// Store and broker are configured under their own keys.
type Config struct {
	Port      int            `mapstructure:"port" env:"PORT"`
	LogLevel  string         `mapstructure:"logLevel" env:"LOG_LEVEL"`
	LogFormat string         `mapstructure:"logFormat" env:"LOG_FORMAT"`
	License   license.Config `mapstructure:"license"`
}

func defaultConfig() Config {
	return Config{
		Port:      8080,
		LogLevel:  "info",
		LogFormat: context.FormatText,
		License:   license.DefaultConfig(),
	}
}

// loadConfig reads the configuration from the config file then from env.
func loadConfig() (Config, error) {
	conf := defaultConfig()
	if err := config.Unmarshal("", &conf); err != nil {
		return Config{}, errors.Wrap(err, "cannot load controller config")
	}
	return conf, nil
}
