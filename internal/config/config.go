// Package config loads server tunables from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the server reads. Defaults match the original
// game balance; any field can be overridden through the environment.
type Config struct {
	Addr string `env:"SKIRMISH_ADDR" envDefault:":8080"`

	// Combat.
	HitDamage float64 `env:"SKIRMISH_HIT_DAMAGE" envDefault:"40"`
	MaxHealth int     `env:"SKIRMISH_MAX_HEALTH" envDefault:"100"`
	MaxShield float64 `env:"SKIRMISH_MAX_SHIELD" envDefault:"100"`

	// Shield regeneration: after ShieldRegenDelay without damage, shield
	// climbs back at ShieldRegenRate points per second, applied every
	// ShieldRegenInterval.
	ShieldRegenDelay    time.Duration `env:"SKIRMISH_SHIELD_REGEN_DELAY" envDefault:"5s"`
	ShieldRegenInterval time.Duration `env:"SKIRMISH_SHIELD_REGEN_INTERVAL" envDefault:"250ms"`
	ShieldRegenRate     float64       `env:"SKIRMISH_SHIELD_REGEN_RATE" envDefault:"10"`

	// MaxMoveDelta is the plausibility bound on a single position update.
	// Deliberately generous; the server sanity-checks reports, it does not
	// simulate movement.
	MaxMoveDelta float64 `env:"SKIRMISH_MAX_MOVE_DELTA" envDefault:"25"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.HitDamage <= 0 {
		return fmt.Errorf("hit damage must be positive, got %v", c.HitDamage)
	}
	if c.MaxHealth <= 0 {
		return fmt.Errorf("max health must be positive, got %d", c.MaxHealth)
	}
	if c.MaxShield < 0 {
		return fmt.Errorf("max shield must not be negative, got %v", c.MaxShield)
	}
	if c.ShieldRegenInterval <= 0 {
		return fmt.Errorf("shield regen interval must be positive, got %v", c.ShieldRegenInterval)
	}
	return nil
}
