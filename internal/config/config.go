package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/exhibit-optimizer/internal/catalog"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
)

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	Port                 string
	InitialCatalog       catalog.Catalog
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Port                 string             `yaml:"port"`
	Artifacts            []catalog.Artifact `yaml:"artifacts"`
	Capacity             *int               `yaml:"capacity"`
	ShutdownGracePeriod  string             `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string             `yaml:"read_header_timeout"`
	WriteTimeout         string             `yaml:"write_timeout"`
	IdleTimeout          string             `yaml:"idle_timeout"`
	EnableRequestLogging *bool              `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit      `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides. Values and Weights are
// comma-separated lists and must be supplied together with equal lengths.
type CLIOverrides struct {
	ConfigFile     string
	Port           *string
	ValuesStr      *string
	WeightsStr     *string
	Capacity       *int
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply environment variables (override YAML)
	applyEnvConfig(&cfg)

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return Config{}, err
		}
	}

	// Validate final configuration
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		Port:                 defaultPort,
		InitialCatalog:       catalog.DefaultCatalog(),
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	if len(yamlCfg.Artifacts) > 0 {
		cfg.InitialCatalog.Artifacts = yamlCfg.Artifacts
	}

	if yamlCfg.Capacity != nil && *yamlCfg.Capacity >= 0 {
		cfg.InitialCatalog.Capacity = *yamlCfg.Capacity
	}

	if yamlCfg.ShutdownGracePeriod != "" {
		if d, err := time.ParseDuration(yamlCfg.ShutdownGracePeriod); err == nil {
			cfg.ShutdownGracePeriod = d
		}
	}

	if yamlCfg.ReadHeaderTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.ReadHeaderTimeout); err == nil {
			cfg.ReadHeaderTimeout = d
		}
	}

	if yamlCfg.WriteTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.WriteTimeout); err == nil {
			cfg.WriteTimeout = d
		}
	}

	if yamlCfg.IdleTimeout != "" {
		if d, err := time.ParseDuration(yamlCfg.IdleTimeout); err == nil {
			cfg.IdleTimeout = d
		}
	}

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}

	if yamlCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = yamlCfg.RateLimit.RPS
	}

	if yamlCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = yamlCfg.RateLimit.Burst
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	rawValues := strings.TrimSpace(os.Getenv("ARTIFACT_VALUES"))
	rawWeights := strings.TrimSpace(os.Getenv("ARTIFACT_WEIGHTS"))
	if rawValues != "" && rawWeights != "" {
		values, valuesErr := parseIntList(rawValues)
		weights, weightsErr := parseIntList(rawWeights)
		if valuesErr == nil && weightsErr == nil && len(values) == len(weights) {
			cfg.InitialCatalog.Artifacts = buildArtifacts(values, weights)
		}
	}

	if rawCapacity := strings.TrimSpace(os.Getenv("CAPACITY")); rawCapacity != "" {
		if value, err := strconv.Atoi(rawCapacity); err == nil && value >= 0 {
			cfg.InitialCatalog.Capacity = value
		}
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) error {
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}

	hasValues := overrides.ValuesStr != nil && *overrides.ValuesStr != ""
	hasWeights := overrides.WeightsStr != nil && *overrides.WeightsStr != ""
	if hasValues != hasWeights {
		return fmt.Errorf("artifact values and weights must be provided together")
	}
	if hasValues {
		values, err := parseIntList(*overrides.ValuesStr)
		if err != nil {
			return fmt.Errorf("parse artifact values: %w", err)
		}
		weights, err := parseIntList(*overrides.WeightsStr)
		if err != nil {
			return fmt.Errorf("parse artifact weights: %w", err)
		}
		if len(values) != len(weights) {
			return fmt.Errorf("got %d artifact values but %d weights", len(values), len(weights))
		}
		cfg.InitialCatalog.Artifacts = buildArtifacts(values, weights)
	}

	if overrides.Capacity != nil && *overrides.Capacity >= 0 {
		cfg.InitialCatalog.Capacity = *overrides.Capacity
	}

	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}

	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}

	return nil
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if err := catalog.Validate(cfg.InitialCatalog); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}
	return nil
}

// parseIntList parses a comma-separated string into a slice of non-negative
// integers.
func parseIntList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", part)
		}
		if value < 0 {
			return nil, fmt.Errorf("entry must be non-negative, got %d", value)
		}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no entries provided")
	}
	return out, nil
}

func buildArtifacts(values, weights []int) []catalog.Artifact {
	artifacts := make([]catalog.Artifact, len(values))
	for i := range values {
		artifacts[i] = catalog.Artifact{Value: values[i], Weight: weights[i]}
	}
	return artifacts
}
