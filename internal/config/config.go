package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// SeasonYear is the year whose December the calendar covers.
	// 0 means the year of the clock when the session starts.
	SeasonYear int `json:"season_year,omitempty" env:"ADVENT_SEASON_YEAR"`

	// SimulatedDate overrides the clock with a YYYY-MM-DD date (noon local time).
	// Meant for trying out future days; invalid values are ignored with a warning.
	SimulatedDate string `json:"simulated_date,omitempty" env:"ADVENT_DATE"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `json:"log_level,omitempty" env:"ADVENT_LOG_LEVEL"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty" env:"ADVENT_DB_MAX_OPEN_CONNS"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty" env:"ADVENT_DB_MAX_IDLE_CONNS"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty" env:"ADVENT_DISABLED_TOOLS" envSeparator:","`

	// WebBind is the interface the web UI listens on.
	WebBind string `json:"web_bind,omitempty" env:"ADVENT_WEB_BIND"`

	// WebPort is the TCP port of the web UI.
	WebPort int `json:"web_port,omitempty" env:"ADVENT_WEB_PORT"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		WebBind:  "127.0.0.1",
		WebPort:  8025,
	}
}

// Load builds the configuration for baseDir.
// Precedence, lowest first: defaults, baseDir/config.json, environment.
// A baseDir/.env file, when present, seeds variables that are not already set.
func Load(baseDir string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(baseDir, ".env")); err != nil {
		return nil, err
	}

	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}

	overlay, err := loadEnv()
	if err != nil {
		return nil, err
	}

	return Merge(cfg, overlay), nil
}

// loadDotEnv loads a .env file if it exists.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// loadEnv parses ADVENT_* variables into a zero-valued config.
func loadEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.SeasonYear = overlay.SeasonYear
	if result.SeasonYear == 0 {
		result.SeasonYear = base.SeasonYear
	}

	result.SimulatedDate = strings.TrimSpace(overlay.SimulatedDate)
	if result.SimulatedDate == "" {
		result.SimulatedDate = base.SimulatedDate
	}

	result.LogLevel = strings.TrimSpace(overlay.LogLevel)
	if result.LogLevel == "" {
		result.LogLevel = base.LogLevel
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.WebBind = strings.TrimSpace(overlay.WebBind)
	if result.WebBind == "" {
		result.WebBind = base.WebBind
	}

	result.WebPort = overlay.WebPort
	if result.WebPort == 0 {
		result.WebPort = base.WebPort
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range a {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
