package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/partminder/core/factory"
	"github.com/kilianp07/partminder/core/metrics"
)

// EnvPrefix selects the environment variables that override file settings.
// Nested keys are separated by a double underscore, e.g.
// PM_STORE__CONF__PATH=/var/lib/partminder/data.csv.
const EnvPrefix = "PM_"

type Config struct {
	Store    StoreConfig    `json:"store"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  metrics.Config `json:"metrics"`
	Messages MessagesConfig `json:"messages"`
}

// Load reads the configuration at path. A missing file is not an error:
// every section has defaults that reproduce the stock behaviour.
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
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), parser); err != nil {
				return nil, fmt.Errorf("read %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
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

// SetDefaults fills every section.
func (c *Config) SetDefaults() {
	c.Store.SetDefaults()
	c.Logging.SetDefaults()
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	for i, s := range c.Metrics.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics: sink %d has no type", i)
		}
	}
	return nil
}

// StoreConfig selects the part store backend.
type StoreConfig factory.ModuleConfig

// SetDefaults selects the CSV backend on data.csv.
func (c *StoreConfig) SetDefaults() {
	if c.Type == "" {
		c.Type = "csv"
	}
	if c.Conf == nil {
		c.Conf = map[string]any{}
	}
	if (c.Type == "csv" || c.Type == "sqlite") && c.Conf["path"] == nil {
		if c.Type == "csv" {
			c.Conf["path"] = "data.csv"
		} else {
			c.Conf["path"] = "partminder.db"
		}
	}
}

// Validate checks mandatory fields.
func (c StoreConfig) Validate() error {
	if c.Type == "" {
		return fmt.Errorf("type is required")
	}
	return nil
}

// Module returns the backend description for partstore.New.
func (c StoreConfig) Module() factory.ModuleConfig { return factory.ModuleConfig(c) }
