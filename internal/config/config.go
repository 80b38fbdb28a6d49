package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level salespipe.yaml configuration.
type Config struct {
	Input     string        `yaml:"input"`
	OutputDir string        `yaml:"output_dir"`
	Catalog   CatalogConfig `yaml:"catalog"`
	Report    ReportConfig  `yaml:"report"`
}

// CatalogConfig points at the remote product catalog service.
type CatalogConfig struct {
	BaseURL        string `yaml:"base_url"`
	Limit          int    `yaml:"limit"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ReportConfig controls report content.
type ReportConfig struct {
	TopProducts          int    `yaml:"top_products"`
	TopCustomers         int    `yaml:"top_customers"`
	LowQuantityThreshold int    `yaml:"low_quantity_threshold"`
	Currency             string `yaml:"currency"`
}

// Load reads a salespipe.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config matching the legacy report run.
func Default() *Config {
	return &Config{
		Input:     "data/sales_data.txt",
		OutputDir: "output",
		Catalog: CatalogConfig{
			BaseURL:        "https://dummyjson.com",
			Limit:          100,
			TimeoutSeconds: 5,
		},
		Report: ReportConfig{
			TopProducts:          5,
			TopCustomers:         5,
			LowQuantityThreshold: 6,
			Currency:             "₹",
		},
	}
}
