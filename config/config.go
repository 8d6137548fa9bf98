// Package config loads deepzoom navigation settings from YAML files and
// DEEPZOOM_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/phanxgames/deepzoom"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// DEEPZOOM_INERTIA_DECAY=0.8.
const EnvPrefix = "DEEPZOOM_"

// Load reads configuration from the YAML file at path, then overlays
// environment variable overrides. A missing file is not an error; an empty
// path skips the file. The result is clamped into valid ranges.
func Load(path string) (deepzoom.Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := deepzoom.DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return cfg, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// DEEPZOOM_WHEEL_ZOOM_STEP -> wheel_zoom_step, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return cfg, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg.Clamp(), nil
}

// Save writes cfg to the YAML file at path.
func Save(cfg deepzoom.Config, path string) error {
	data, err := yamlv3.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}
