package main

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const configFilePath = "config.json"

// Config represents the application's configuration structure.
type Config struct {
	Address     string `json:"address" mapstructure:"address"`
	DBDsn       string `json:"db-dsn" mapstructure:"db-dsn"`
	JWTSecret   string `json:"jwt-secret" mapstructure:"jwt-secret"`
	LogLevel    string `json:"log-level" mapstructure:"log-level"`
	AutoMigrate bool   `json:"db-auto-migrate" mapstructure:"db-auto-migrate"`
	DedupDBPath string `json:"dedup-db-path" mapstructure:"dedup-db-path"`
}

var requiredFields = []string{
	"db-dsn",
}

// field: default value
var optionalFields = map[string]interface{}{
	"address":         ":8081",
	"jwt-secret":      "dev-insecure-secret-change",
	"log-level":       "INFO",
	"db-auto-migrate": true,
	"dedup-db-path":   "dedup.db",
}

// InitConfig reads configuration from a JSON file and environment variables.
// Environment variables take precedence over the config file. When a config
// file is present it is watched so a log-level change takes effect without a
// restart.
func InitConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configFilePath)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, field := range requiredFields {
		v.BindEnv(field)
	}
	for field := range optionalFields {
		v.BindEnv(field)
	}

	if err := v.ReadInConfig(); err != nil {
		// ignore error if config file is not found
		// as we can get all config from env vars
		if !strings.Contains(err.Error(), configFilePath) {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	} else {
		v.OnConfigChange(func(fsnotify.Event) {
			if level := v.GetString("log-level"); level != "" {
				if err := SetLogLevel(level); err != nil {
					log.Warningf("ignoring bad log-level %q: %v", level, err)
				}
			}
		})
		v.WatchConfig()
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	for optField, defaultValue := range optionalFields {
		if !v.IsSet(optField) {
			v.Set(optField, defaultValue)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &config, nil
}
