package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Skirmish holds all configuration for the skirmish client.
type Skirmish struct {
	// Logging
	LogLevel string `yaml:"log_level" env:"SKIRMISH_LOG_LEVEL"` // debug, info, warn, error
	LogFile  string `yaml:"log_file"  env:"SKIRMISH_LOG_FILE"`  // empty means stderr

	// Battle definition
	Scenario string `yaml:"scenario" env:"SKIRMISH_SCENARIO"`

	AI       AI             `yaml:"ai"`
	Audio    Audio          `yaml:"audio"`
	Database DatabaseConfig `yaml:"database"`
}

// AI holds automated play settings.
type AI struct {
	Policy    string        `yaml:"policy"     env:"SKIRMISH_AI_POLICY"` // delay, charge
	ThinkTime time.Duration `yaml:"think_time" env:"SKIRMISH_AI_THINK_TIME"`
	TurnDelay int           `yaml:"turn_delay" env:"SKIRMISH_AI_TURN_DELAY"`
}

// Audio holds sound cue settings.
type Audio struct {
	Enabled bool `yaml:"enabled" env:"SKIRMISH_AUDIO"`
}

// DatabaseConfig holds PostgreSQL connection parameters for the roster store.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"  env:"SKIRMISH_DATABASE_ENABLED"`
	Host     string `yaml:"host"     env:"SKIRMISH_DATABASE_HOST"`
	Port     int    `yaml:"port"     env:"SKIRMISH_DATABASE_PORT"`
	User     string `yaml:"user"     env:"SKIRMISH_DATABASE_USER"`
	Password string `yaml:"password" env:"SKIRMISH_DATABASE_PASSWORD"`
	DBName   string `yaml:"dbname"   env:"SKIRMISH_DATABASE_NAME"`
	SSLMode  string `yaml:"sslmode"  env:"SKIRMISH_DATABASE_SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSkirmish returns Skirmish config with sensible defaults.
func DefaultSkirmish() Skirmish {
	return Skirmish{
		LogLevel: "info",
		LogFile:  "skirmish.log",
		Scenario: "config/scenarios/crossing.yaml",
		AI: AI{
			Policy:    "charge",
			ThinkTime: 300 * time.Millisecond,
			TurnDelay: 10,
		},
		Audio: Audio{
			Enabled: true,
		},
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "skirmish",
			Password: "skirmish",
			DBName:   "skirmish",
			SSLMode:  "disable",
		},
	}
}

// LoadSkirmish loads config from a YAML file, then applies environment
// overrides. If the file doesn't exist, the defaults are used.
func LoadSkirmish(path string) (Skirmish, error) {
	cfg := DefaultSkirmish()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
