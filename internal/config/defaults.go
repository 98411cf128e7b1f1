package config

import (
	_ "embed"
)

//go:embed defaults/shooter.yaml
var defaultShooterYAML []byte

// DefaultShooterConfig returns the default configuration.
// It mirrors defaults/shooter.yaml and is used if the embedded file fails to parse.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Playfield: Playfield{
			Width:            768,
			Height:           1024,
			BackgroundScroll: 2,
		},
		Player: PlayerConfig{
			Width:          75,
			Height:         75,
			StartY:         800,
			Speed:          3,
			Lives:          3,
			FireCooldownMS: 750,
			DamageCooldown: 1000,
			FlashMS:        500,
			CloneOffset:    80,
		},
		Enemy: EnemyConfig{
			Width:          75,
			Height:         75,
			SpawnX:         []float64{256, 512},
			Amplitude:      250,
			PathMS:         15000,
			FireCooldownMS: 750,
			Points:         5,
		},
		Projectile: ProjectileConfig{
			Width:          50,
			Height:         50,
			ShotSpeed:      10,
			EnemyShotSpeed: 2.5,
			ShotRaise:      25,
			TopLimit:       -100,
		},
		PowerUp: PowerUpConfig{
			Width:           75,
			Height:          75,
			PathMS:          20000,
			SpawnIntervalMS: 20000,
			DurationMS:      15000,
			BoostedCooldown: 250,
			ExplosionMS:     300,
			ExplosionSize:   64,
		},
		Spawn: SpawnConfig{
			InitialCooldownMS: 1250,
			StepMS:            30000,
			ReductionMS:       50,
			FloorMS:           1000,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultShooterYAML
}
