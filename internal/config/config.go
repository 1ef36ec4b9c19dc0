// Package config holds application configuration and the source-file
// registry for the fixed OEWS May 2024 release. Configuration never changes
// query semantics; it only relocates the source spreadsheets and tunes
// logging.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// DataConfig locates the source survey spreadsheets.
type DataConfig struct {
	// Dir is the directory holding the release files, resolved relative to
	// the working directory unless absolute.
	Dir string `yaml:"dir" envconfig:"DIR" default:"data"`
	// FallbackDir is searched by base name when a file is not found under
	// Dir.
	FallbackDir string `yaml:"fallback_dir" envconfig:"FALLBACK_DIR" default:"/mnt/data"`
	// Sources optionally overrides the per-kind file names of the release.
	Sources map[string]string `yaml:"sources"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/oewsq.log"`
}

// Load loads configuration from environment variables and config file.
// Environment values (and struct-tag defaults) take precedence over the
// file, matching the usual OEWS_* deployment override flow.
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("OEWS", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Data.Dir == "" {
		envConfig.Data.Dir = fileConfig.Data.Dir
	}
	if envConfig.Data.FallbackDir == "" {
		envConfig.Data.FallbackDir = fileConfig.Data.FallbackDir
	}
	if envConfig.Data.Sources == nil {
		envConfig.Data.Sources = fileConfig.Data.Sources
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data dir must not be empty")
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv("OEWS_CONFIG"); path != "" {
		return path
	}

	// Check for config file in common locations
	locations := []string{
		"oewsq.yaml",
		"configs/oewsq.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:         "data",
			FallbackDir: "/mnt/data",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/oewsq.log",
		},
	}
}
