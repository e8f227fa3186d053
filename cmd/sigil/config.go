package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults a config file can supply; command-line flags win
// over config values.
type Config struct {
	Sidecar      string `yaml:"sidecar"`
	SkipMetadata bool   `yaml:"skip_metadata"`
	ReportJSON   string `yaml:"report_json"`
	ReportHTML   string `yaml:"report_html"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
