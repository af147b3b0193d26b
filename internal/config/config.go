// Package config loads application configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sumedhbadnore/harmonyviz/internal/domain"
)

// Defaults and limits for audio configuration.
const (
	DefaultSampleRate      = 44100.0
	DefaultFramesPerBuffer = 256

	minSampleRate = 8000.0
	maxSampleRate = 192000.0
)

// Config is the application configuration, loaded from YAML.
type Config struct {
	LogLevel string      `yaml:"log_level"` // Logging level ("debug", "info", "warn", "error").
	Audio    AudioConfig `yaml:"audio"`     // Audio capture settings.

	// Catalog is the ordered list of selectable preset tracks.
	Catalog []domain.Track `yaml:"catalog"`
}

// AudioConfig holds capture settings.
type AudioConfig struct {
	SampleRate      float64 `yaml:"sample_rate"`       // Sample rate in Hz (e.g., 44100).
	FramesPerBuffer int     `yaml:"frames_per_buffer"` // Frames delivered per capture callback.
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Audio: AudioConfig{
			SampleRate:      DefaultSampleRate,
			FramesPerBuffer: DefaultFramesPerBuffer,
		},
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults when path is empty or the file does not exist. The final
// configuration is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %q: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Audio.SampleRate < minSampleRate || c.Audio.SampleRate > maxSampleRate {
		return fmt.Errorf("sample_rate %v out of range [%v, %v]",
			c.Audio.SampleRate, minSampleRate, maxSampleRate)
	}
	if c.Audio.FramesPerBuffer <= 0 {
		return fmt.Errorf("frames_per_buffer must be positive, got %d", c.Audio.FramesPerBuffer)
	}
	for i, t := range c.Catalog {
		if t.ID == "" {
			return fmt.Errorf("catalog[%d]: missing id", i)
		}
		if t.SourceLocator == "" {
			return fmt.Errorf("catalog[%d] (%s): missing source", i, t.ID)
		}
	}
	return nil
}
