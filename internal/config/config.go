// Package config provides YAML-based game configuration loading and
// difficulty management for the shooter.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ShooterConfig contains all tunables of the shooter.
// Durations are expressed in milliseconds in YAML.
type ShooterConfig struct {
	Playfield  Playfield        `yaml:"playfield"`
	Player     PlayerConfig     `yaml:"player"`
	Enemy      EnemyConfig      `yaml:"enemy"`
	Projectile ProjectileConfig `yaml:"projectile"`
	PowerUp    PowerUpConfig    `yaml:"powerup"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Hitbox     HitboxConfig     `yaml:"hitbox"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Playfield defines the logical surface every entity lives on.
type Playfield struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	BackgroundScroll float64 `yaml:"background_scroll"` // Units per tick
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	StartY         float64 `yaml:"start_y"`
	Speed          float64 `yaml:"speed"` // Units per tick per held direction
	Lives          int     `yaml:"lives"`
	FireCooldownMS int     `yaml:"fire_cooldown_ms"`
	DamageCooldown int     `yaml:"damage_cooldown_ms"` // Invulnerability window
	FlashMS        int     `yaml:"flash_ms"`
	CloneOffset    float64 `yaml:"clone_offset"`
}

// EnemyConfig defines enemy ships.
type EnemyConfig struct {
	Width          float64   `yaml:"width"`
	Height         float64   `yaml:"height"`
	SpawnX         []float64 `yaml:"spawn_x"`
	Amplitude      float64   `yaml:"amplitude"`
	PathMS         int       `yaml:"path_ms"`
	FireCooldownMS int       `yaml:"fire_cooldown_ms"`
	Points         int       `yaml:"points"`
}

// ProjectileConfig defines both projectile variants.
type ProjectileConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	ShotSpeed      float64 `yaml:"shot_speed"`       // Player shots, units per tick upward
	EnemyShotSpeed float64 `yaml:"enemy_shot_speed"` // Enemy shots, units per tick downward
	ShotRaise      float64 `yaml:"shot_raise"`       // Player shots start this far above the ship
	TopLimit       float64 `yaml:"top_limit"`        // Player shots die above this Y
}

// PowerUpConfig defines Salt and Pepper pickups.
type PowerUpConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	PathMS           int     `yaml:"path_ms"`
	SpawnIntervalMS  int     `yaml:"spawn_interval_ms"`
	DurationMS       int     `yaml:"duration_ms"`
	BoostedCooldown  int     `yaml:"boosted_fire_cooldown_ms"`
	ExplosionMS      int     `yaml:"explosion_ms"`
	ExplosionSize    float64 `yaml:"explosion_size"`
	PepperMirrorable bool    `yaml:"pepper_mirrorable"` // Power-ups may also take the mirrored zigzag
}

// SpawnConfig defines the enemy spawn cadence.
type SpawnConfig struct {
	InitialCooldownMS int `yaml:"initial_cooldown_ms"`
	StepMS            int `yaml:"step_ms"`      // Ramp step interval
	ReductionMS       int `yaml:"reduction_ms"` // Cooldown reduction per step
	FloorMS           int `yaml:"floor_ms"`
}

// HitboxConfig holds padding applied to the second operand of each test.
type HitboxConfig struct {
	HostilePadding float64 `yaml:"hostile_padding"` // Enemies and enemy shots vs player
	ShotPadding    float64 `yaml:"shot_padding"`    // Enemy shrunk when tested against a shot
	PickupPadding  float64 `yaml:"pickup_padding"`  // Player shrunk when tested against a power-up
}

// DifficultyConfig toggles the spawn ramp.
type DifficultyConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Ms converts a millisecond field to a time.Duration.
func Ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// Validate reports configuration values the simulation cannot run with.
func (c ShooterConfig) Validate() error {
	var errs []error
	positive := []struct {
		name string
		val  float64
	}{
		{"playfield.width", c.Playfield.Width},
		{"playfield.height", c.Playfield.Height},
		{"player.width", c.Player.Width},
		{"player.height", c.Player.Height},
		{"enemy.width", c.Enemy.Width},
		{"enemy.height", c.Enemy.Height},
		{"projectile.width", c.Projectile.Width},
		{"projectile.height", c.Projectile.Height},
		{"powerup.width", c.PowerUp.Width},
		{"powerup.height", c.PowerUp.Height},
		{"player.fire_cooldown_ms", float64(c.Player.FireCooldownMS)},
		{"player.lives", float64(c.Player.Lives)},
		{"enemy.path_ms", float64(c.Enemy.PathMS)},
		{"enemy.fire_cooldown_ms", float64(c.Enemy.FireCooldownMS)},
		{"powerup.path_ms", float64(c.PowerUp.PathMS)},
		{"powerup.spawn_interval_ms", float64(c.PowerUp.SpawnIntervalMS)},
		{"spawn.initial_cooldown_ms", float64(c.Spawn.InitialCooldownMS)},
		{"spawn.step_ms", float64(c.Spawn.StepMS)},
	}
	for _, p := range positive {
		if p.val <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", p.name, p.val))
		}
	}
	if len(c.Enemy.SpawnX) == 0 {
		errs = append(errs, errors.New("enemy.spawn_x must list at least one column"))
	}
	if c.Spawn.FloorMS > c.Spawn.InitialCooldownMS {
		errs = append(errs, fmt.Errorf("spawn.floor_ms (%d) exceeds spawn.initial_cooldown_ms (%d)",
			c.Spawn.FloorMS, c.Spawn.InitialCooldownMS))
	}
	if c.Spawn.ReductionMS < 0 {
		errs = append(errs, fmt.Errorf("spawn.reduction_ms must not be negative, got %d", c.Spawn.ReductionMS))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid shooter config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Empty input means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return "", nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}
