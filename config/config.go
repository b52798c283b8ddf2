// Package config loads the co2dash configuration from a YAML or JSON file
// overlaid with CO2DASH_ environment variables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/co2dash/core/metrics"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by
// a double underscore, e.g. CO2DASH_PLANT__REGION=China.
const EnvPrefix = "CO2DASH_"

type Config struct {
	Plant    PlantConfig    `json:"plant"`
	Factors  FactorsConfig  `json:"factors"`
	Server   ServerConfig   `json:"server"`
	Metrics  metrics.Config `json:"metrics"`
	Logging  LoggingConfig  `json:"logging"`
	Report   ReportConfig   `json:"report"`
	Sentry   SentryConfig   `json:"sentry"`
	Language string         `json:"language"`
}

// Load reads path and applies environment overrides. An empty path loads
// defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// SetDefaults applies defaults to every section.
func (c *Config) SetDefaults() {
	c.Plant.SetDefaults()
	c.Factors.SetDefaults()
	c.Server.SetDefaults()
	c.Logging.SetDefaults()
	c.Report.SetDefaults()
	c.Sentry.SetDefaults()
	if c.Language == "" {
		c.Language = "en"
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	validators := []struct {
		name string
		fn   func() error
	}{
		{"plant", c.Plant.Validate},
		{"factors", c.Factors.Validate},
		{"server", c.Server.Validate},
		{"logging", c.Logging.Validate},
		{"report", c.Report.Validate},
		{"sentry", c.Sentry.Validate},
	}
	for _, v := range validators {
		if err := v.fn(); err != nil {
			return fmt.Errorf("%s: %w", v.name, err)
		}
	}
	return nil
}
