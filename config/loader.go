package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are searched in order by LoadAppConfig
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Config is the global application configuration
var Config = Default()

// Default returns the configuration used when no file overrides a field
func Default() AppConfig {
	return AppConfig{
		Calculator: CalculatorConfig{Method: "empirical"},
		Output:     OutputConfig{Format: "text", Codespace: "VespaFinder"},
		Logging:    LoggingConfig{Level: "info", Format: "text"},
	}
}

// Parse decodes and validates YAML configuration data
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Load reads, validates and defaults the configuration file at path
func Load(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, err
	}
	return Parse(data)
}

// LoadAppConfig loads the first config file found in DefaultPaths into Config.
// A missing file is an error; Config keeps its previous value in that case.
func LoadAppConfig() error {
	var lastErr error
	for _, p := range DefaultPaths {
		cfg, err := Load(p)
		if err == nil {
			Config = cfg
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", p, err)
		}
		lastErr = err
	}
	return lastErr
}

func applyDefaults(cfg *AppConfig) {
	d := Default()
	if cfg.Calculator.Method == "" {
		cfg.Calculator.Method = d.Calculator.Method
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = d.Output.Format
	}
	if cfg.Output.Codespace == "" {
		cfg.Output.Codespace = d.Output.Codespace
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = d.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = d.Logging.Format
	}
}
