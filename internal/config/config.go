package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Auth      AuthConfig      `yaml:"auth"`
	Earnings  EarningsConfig  `yaml:"earnings"`
	Transport TransportConfig `yaml:"transport"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type StoreConfig struct {
	// Backend selects the repository implementation: "sqlite" or "memory".
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

type AuthConfig struct {
	Enabled       bool `yaml:"enabled"`
	SessionTTL    int  `yaml:"session_ttl_minutes"`
	SecureCookies bool `yaml:"secure_cookies"`
}

type EarningsConfig struct {
	// BaseCurrency is the currency hourly rates are recorded in.
	BaseCurrency string `yaml:"base_currency"`
}

type TransportConfig struct {
	// Mode is "http" for the REST API or "stdio" for the MCP tool surface.
	Mode string `yaml:"mode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Store: StoreConfig{
			Backend: "sqlite",
			Path:    "worklog.db",
		},
		Auth: AuthConfig{
			Enabled:    true,
			SessionTTL: 24 * 60,
		},
		Earnings: EarningsConfig{
			BaseCurrency: "USD",
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("WORKLOG_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("WORKLOG_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("WORKLOG_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid WORKLOG_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if backend := os.Getenv("WORKLOG_STORE_BACKEND"); backend != "" {
		cfg.Store.Backend = backend
	}
	if dbPath := os.Getenv("WORKLOG_DB_PATH"); dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if enabled := os.Getenv("WORKLOG_AUTH_ENABLED"); enabled != "" {
		cfg.Auth.Enabled = enabled == "true" || enabled == "1"
	}
	if base := os.Getenv("WORKLOG_BASE_CURRENCY"); base != "" {
		cfg.Earnings.BaseCurrency = base
	}
	if mode := os.Getenv("WORKLOG_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if level := os.Getenv("WORKLOG_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Store.Backend != "sqlite" && cfg.Store.Backend != "memory" {
		return Config{}, fmt.Errorf("invalid store backend %q", cfg.Store.Backend)
	}
	if cfg.Transport.Mode != "http" && cfg.Transport.Mode != "stdio" {
		return Config{}, fmt.Errorf("invalid transport mode %q", cfg.Transport.Mode)
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
