package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ConfigPathEnv names the variable holding the config file path.
const ConfigPathEnv = "SKIRMISH_CONFIG"

// DefaultPath is used when ConfigPathEnv is unset.
const DefaultPath = "config/skirmish.yaml"

// ParseEnv applies environment overrides onto target. Unset variables
// leave the existing values alone.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Path returns the config file path from the environment, or DefaultPath.
func Path() string {
	var p struct {
		Path string `env:"SKIRMISH_CONFIG" envDefault:"config/skirmish.yaml"`
	}
	if err := env.Parse(&p); err != nil || p.Path == "" {
		return DefaultPath
	}
	return p.Path
}
