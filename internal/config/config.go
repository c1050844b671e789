package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"flight_panel/internal/store"

	"github.com/spf13/viper"
)

// Config holds all configuration for the flight panel
type Config struct {
	DataFile   string
	LoadPolicy store.LoadPolicy
	Location   *time.Location
	Color      bool
	Audit      AuditConfig
	Log        LogConfig
}

// AuditConfig holds audit log configuration
type AuditConfig struct {
	LogFile     string
	JournalPath string // SQLite journal, empty disables it
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("data_file", "flights.txt")
	v.SetDefault("load.on_malformed", string(store.PolicyAbort))
	v.SetDefault("location", "Local")
	v.SetDefault("color", true)
	v.SetDefault("audit.log_file", "UserFlightInformation.txt")
	v.SetDefault("audit.journal_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("/etc/flight_panel")
	v.AddConfigPath(".")

	if configPath := os.Getenv("FLIGHT_PANEL_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Read config file (if it exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - defaults + env vars apply
	}

	v.SetEnvPrefix("FLIGHT_PANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	policy, err := store.ParseLoadPolicy(v.GetString("load.on_malformed"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	loc, err := time.LoadLocation(v.GetString("location"))
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: location %q: %w", v.GetString("location"), err)
	}

	cfg := &Config{
		DataFile:   v.GetString("data_file"),
		LoadPolicy: policy,
		Location:   loc,
		Color:      v.GetBool("color"),
		Audit: AuditConfig{
			LogFile:     v.GetString("audit.log_file"),
			JournalPath: v.GetString("audit.journal_path"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.DataFile) == "" {
		return fmt.Errorf("data_file is required")
	}

	if strings.TrimSpace(cfg.Audit.LogFile) == "" {
		return fmt.Errorf("audit.log_file is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[cfg.Log.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
