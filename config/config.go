package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the optional settings file (~/.cgtcalc/config.yml or
// --config). Everything has a sensible default; a missing file is fine.
type Config struct {
	// Directory of HMRC monthly rate XML files.
	RatesDir string `yaml:"rates_dir"`
	// Directory for the parsed-rates CSV cache. Empty means ~/.cgtcalc.
	CacheDir string `yaml:"cache_dir"`
	// Home currency symbol, default "£".
	HomeSymbol string `yaml:"home_symbol"`
	// Ledger currency symbol -> HMRC currency code. Defaults to $/USD
	// and €/EUR when empty.
	SymbolCodes map[string]string `yaml:"symbol_codes"`
	// Print amounts at full precision instead of 2 decimal places.
	FullPrecision bool `yaml:"full_precision"`
}

func Default() *Config {
	return &Config{
		HomeSymbol: "£",
	}
}

// Load reads the YAML config at path, applying defaults for anything
// unset. An empty path, or a missing file at the default location,
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.HomeSymbol == "" {
		cfg.HomeSymbol = "£"
	}
	return cfg, nil
}
