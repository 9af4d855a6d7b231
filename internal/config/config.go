package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	API APIConfig `yaml:"api"`
	DB  DBConfig  `yaml:"db"`
	Log LogConfig `yaml:"log"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL: "http://localhost:8081",
		},
		DB: DBConfig{
			Path: "fleetdesk.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("FLEETDESK_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if base := os.Getenv("FLEETDESK_API_BASE_URL"); base != "" {
		cfg.API.BaseURL = base
	}
	if dbPath := os.Getenv("FLEETDESK_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("FLEETDESK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("FLEETDESK_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}

	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.BaseURL == "" {
		return Config{}, fmt.Errorf("api base URL must not be empty")
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
