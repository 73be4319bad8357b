// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	host := cfg.FTP.Host
//	sheet := cfg.Roster.Sheet
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Source        SourceConfig        `yaml:"source"`
	FTP           FTPConfig           `yaml:"ftp"`
	Roster        RosterConfig        `yaml:"roster"`
	Storage       StorageConfig       `yaml:"storage"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// SourceConfig selects which file host backs the service.
type SourceConfig struct {
	// Kind is "ftp" or "dir".
	Kind string `yaml:"kind"`
	// Dir is the local directory for kind "dir".
	Dir string `yaml:"dir"`
}

// FTPConfig holds the FTP file-host settings.
type FTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dir      string `yaml:"dir"`
}

// RosterConfig holds the roster-sheet settings.
type RosterConfig struct {
	// Sheet is the workbook tab holding the roster.
	Sheet string `yaml:"sheet"`
	// Columns overrides the required logical columns (empty = defaults).
	Columns []string `yaml:"columns"`
	// CacheTTLSeconds bounds staleness of the loaded window.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	// ScanAnywhere accepts a date stamp anywhere in a filename.
	ScanAnywhere bool `yaml:"scan_anywhere"`
}

// StorageConfig holds database configuration.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings.
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${FTP_PASS})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() *Config {
	return &Config{
		Source: SourceConfig{
			Kind: getEnv("STEEKKAART_SOURCE", "ftp"),
			Dir:  os.Getenv("STEEKKAART_SOURCE_DIR"),
		},
		FTP: FTPConfig{
			Host:     os.Getenv("FTP_HOST"),
			Port:     getEnvInt("FTP_PORT", 21),
			User:     os.Getenv("FTP_USER"),
			Password: os.Getenv("FTP_PASS"),
			Dir:      getEnv("FTP_DIR", "steekkaart"),
		},
		Roster: RosterConfig{
			Sheet:           getEnv("ROSTER_SHEET", "Dienstlijst"),
			CacheTTLSeconds: getEnvInt("ROSTER_CACHE_TTL", 300),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("STEEKKAART_DB_PATH", "steekkaart.db"),
		},
		Server: ServerConfig{
			Port: getEnvInt("PORT", 8080),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables.
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from the specified path, falls back to
// environment variables.
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// getEnv retrieves an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default.
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}
