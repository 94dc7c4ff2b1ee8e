// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	dbPath := cfg.Storage.DatabasePath
//	engineCfg := cfg.Matching.ToEngineConfig()
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amajor13/sme-recon-mvp/internal/domain/recon"
)

// Config represents the entire application configuration
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Storage       StorageConfig       `yaml:"storage"`
	Matching      MatchingConfig      `yaml:"matching"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// StorageConfig holds database configuration
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// MatchingConfig holds the engine tuning. A zero value means "use the
// engine default" so partial YAML files stay valid.
type MatchingConfig struct {
	AmountNearExactPercent   float64 `yaml:"amount_near_exact_percent"`
	AmountTolerancePercent   float64 `yaml:"amount_tolerance_percent"`
	AmountPartialBandPercent float64 `yaml:"amount_partial_band_percent"`
	DateWindowDays           int     `yaml:"date_window_days"`

	ReferenceWeight          float64 `yaml:"reference_weight"`
	ReferenceStrongWeight    float64 `yaml:"reference_strong_weight"`
	ReferenceWeakWeight      float64 `yaml:"reference_weak_weight"`
	ReferenceExactThreshold  float64 `yaml:"reference_exact_threshold"`
	ReferenceStrongThreshold float64 `yaml:"reference_strong_threshold"`

	AmountWeight float64 `yaml:"amount_weight"`
	DateWeight   float64 `yaml:"date_weight"`

	VendorWeight              float64 `yaml:"vendor_weight"`
	VendorPartialWeight       float64 `yaml:"vendor_partial_weight"`
	VendorSimilarityThreshold float64 `yaml:"vendor_similarity_threshold"`

	MinMatchThreshold float64 `yaml:"min_match_threshold"`

	HighConfidenceMin   float64 `yaml:"high_confidence_min"`
	MediumConfidenceMin float64 `yaml:"medium_confidence_min"`

	DuplicateAmountTolerancePercent float64 `yaml:"duplicate_amount_tolerance_percent"`
	DuplicateDateWindowDays         int     `yaml:"duplicate_date_window_days"`
}

// ToEngineConfig converts the YAML matching section to an engine config,
// filling unset values from the engine defaults. Validation stays with
// the engine.
func (m MatchingConfig) ToEngineConfig() recon.Config {
	cfg := recon.DefaultConfig()

	setFloat(&cfg.AmountNearExactPercent, m.AmountNearExactPercent)
	setFloat(&cfg.AmountTolerancePercent, m.AmountTolerancePercent)
	setFloat(&cfg.AmountPartialBandPercent, m.AmountPartialBandPercent)
	setInt(&cfg.DateWindowDays, m.DateWindowDays)

	setFloat(&cfg.ReferenceWeight, m.ReferenceWeight)
	setFloat(&cfg.ReferenceStrongWeight, m.ReferenceStrongWeight)
	setFloat(&cfg.ReferenceWeakWeight, m.ReferenceWeakWeight)
	setFloat(&cfg.ReferenceExactThreshold, m.ReferenceExactThreshold)
	setFloat(&cfg.ReferenceStrongThreshold, m.ReferenceStrongThreshold)

	setFloat(&cfg.AmountWeight, m.AmountWeight)
	setFloat(&cfg.DateWeight, m.DateWeight)

	setFloat(&cfg.VendorWeight, m.VendorWeight)
	setFloat(&cfg.VendorPartialWeight, m.VendorPartialWeight)
	setFloat(&cfg.VendorSimilarityThreshold, m.VendorSimilarityThreshold)

	setFloat(&cfg.MinMatchThreshold, m.MinMatchThreshold)
	setFloat(&cfg.HighConfidenceMin, m.HighConfidenceMin)
	setFloat(&cfg.MediumConfidenceMin, m.MediumConfidenceMin)

	setFloat(&cfg.DuplicateAmountTolerancePercent, m.DuplicateAmountTolerancePercent)
	setInt(&cfg.DuplicateDateWindowDays, m.DuplicateDateWindowDays)

	return cfg
}

func setFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${RECON_DB_PATH})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("RECON_PORT", 8080),
		},
		Storage: StorageConfig{
			DatabasePath: getEnv("RECON_DB_PATH", "reconciliation.db"),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "text"),
			},
		},
	}
	applyDefaults(cfg)
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "reconciliation.db"
	}
	if cfg.Observability.Logging.Level == "" {
		cfg.Observability.Logging.Level = "info"
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}
