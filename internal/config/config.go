// Package config loads region-hierarchy settings from YAML or TOML files and
// the environment.
//
// Precedence, lowest first: preset defaults, config file, environment
// variables, command-line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/region-hierarchy/internal/components"
	"github.com/ironsheep/region-hierarchy/internal/hierarchy"
)

// EnvPrefix prefixes every environment override, e.g. REGION_HIERARCHY_MIN_AREA.
const EnvPrefix = "REGION_HIERARCHY_"

// ErrUnsupportedFormat is returned for config files that are neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config holds every tunable of the CLI and the server. Pointer fields are
// optional overrides on top of the selected preset.
type Config struct {
	Preset       string `json:"preset" yaml:"preset" toml:"preset"`
	MinArea      *int   `json:"min_area,omitempty" yaml:"min_area" toml:"min_area"`
	MinXOffset   *int   `json:"min_x_offset,omitempty" yaml:"min_x_offset" toml:"min_x_offset"`
	MinYOffset   *int   `json:"min_y_offset,omitempty" yaml:"min_y_offset" toml:"min_y_offset"`
	Workers      int    `json:"workers" yaml:"workers" toml:"workers"`
	Connectivity string `json:"connectivity" yaml:"connectivity" toml:"connectivity"`
	Threshold    *int   `json:"threshold,omitempty" yaml:"threshold" toml:"threshold"`
	LogLevel     string `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// Default returns a config selecting the default preset.
func Default() *Config {
	return &Config{Preset: "default", Connectivity: "4", LogLevel: "info"}
}

// Load reads path (format chosen by extension) over Default, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// applyEnv overrides fields from REGION_HIERARCHY_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst **int) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = &n
		return nil
	}

	str("PRESET", &c.Preset)
	str("CONNECTIVITY", &c.Connectivity)
	str("LOG_LEVEL", &c.LogLevel)
	for key, dst := range map[string]**int{
		"MIN_AREA":     &c.MinArea,
		"MIN_X_OFFSET": &c.MinXOffset,
		"MIN_Y_OFFSET": &c.MinYOffset,
		"THRESHOLD":    &c.Threshold,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}
	if v, ok := lookup(EnvPrefix + "WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", EnvPrefix, err)
		}
		c.Workers = n
	}
	return nil
}

// Options resolves the preset and overrides into hierarchy options.
func (c *Config) Options() (hierarchy.Options, error) {
	p, err := hierarchy.LookupPreset(c.Preset)
	if err != nil {
		return hierarchy.Options{}, err
	}
	opts := p.Options
	if c.MinArea != nil {
		opts.MinArea = *c.MinArea
	}
	if c.MinXOffset != nil {
		opts.MinXOffset = *c.MinXOffset
	}
	if c.MinYOffset != nil {
		opts.MinYOffset = *c.MinYOffset
	}
	opts.Workers = c.Workers
	return opts, nil
}

// Labeler returns a component labeler for the configured connectivity.
func (c *Config) Labeler() (*components.Labeler, error) {
	conn, err := components.ParseConnectivity(c.Connectivity)
	if err != nil {
		return nil, err
	}
	return components.NewLabeler(conn), nil
}

// ThresholdLevel returns the binarisation level, clamped to 0-255.
func (c *Config) ThresholdLevel() uint8 {
	if c.Threshold == nil {
		return components.DefaultThreshold
	}
	switch t := *c.Threshold; {
	case t < 0:
		return 0
	case t > 255:
		return 255
	default:
		return uint8(t)
	}
}
