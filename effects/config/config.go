// Package config loads the optional uieffects.yaml configuration that
// selects the dispatcher's policy knobs and the surface queue size.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Yoeri-z/ui-effects/effects"
	"github.com/Yoeri-z/ui-effects/effects/surface"
)

// FileName is the config file looked up by LoadOptional.
const FileName = "uieffects.yaml"

// Config mirrors uieffects.yaml.
type Config struct {
	Dispatch DispatchConfig `yaml:"dispatch"`
	Surface  SurfaceConfig  `yaml:"surface"`
}

// DispatchConfig configures the dispatcher.
type DispatchConfig struct {
	// OnMissingHandler is "fast" or "soft". Empty means "fast".
	OnMissingHandler string `yaml:"on_missing_handler,omitempty"`

	// WarnOnMultipleHandlers defaults to true when omitted.
	WarnOnMultipleHandlers *bool `yaml:"warn_on_multiple_handlers,omitempty"`
}

// SurfaceConfig configures the production handler.
type SurfaceConfig struct {
	BufferSize int `yaml:"buffer_size,omitempty"`
}

// LoadOptional reads uieffects.yaml from dir. A missing file is not an
// error; it yields the zero Config, which resolves to the defaults.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// DispatcherConfig resolves the dispatch section into an effects.Config,
// validating the fail mode.
func (c *Config) DispatcherConfig(logger *zap.Logger) (effects.Config, error) {
	conf := effects.NewConfig()
	conf.Logger = logger

	switch c.Dispatch.OnMissingHandler {
	case "", string(effects.FailFast):
		conf.OnMissingHandler = effects.FailFast
	case string(effects.FailSoft):
		conf.OnMissingHandler = effects.FailSoft
	default:
		return effects.Config{}, fmt.Errorf("unknown on_missing_handler %q", c.Dispatch.OnMissingHandler)
	}

	if c.Dispatch.WarnOnMultipleHandlers != nil {
		conf.WarnOnMultipleHandlers = *c.Dispatch.WarnOnMultipleHandlers
	}
	return conf, nil
}

// SurfaceQueue resolves the surface section into a surface.Config.
func (c *Config) SurfaceQueue() surface.Config {
	return surface.Config{BufferSize: c.Surface.BufferSize}
}
