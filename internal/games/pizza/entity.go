package pizza

import (
	"time"

	"github.com/vovakirdan/pizza-time/internal/core"
)

// Kind tags the variant an Entity holds.
type Kind int

const (
	KindPlayer    Kind = iota // Main ship, exactly one while playing
	KindClone                 // Pepper firing origin locked to the main ship
	KindEnemy                 // Zigzagging enemy ship
	KindShot                  // Player projectile, moves up
	KindEnemyShot             // Enemy projectile, moves down
	KindPowerUp               // Salt or Pepper pickup
	KindExplosion             // Short-lived visual effect
	kindCount
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindClone:
		return "clone"
	case KindEnemy:
		return "enemy"
	case KindShot:
		return "shot"
	case KindEnemyShot:
		return "enemy_shot"
	case KindPowerUp:
		return "powerup"
	case KindExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Hostile reports whether contact with the player costs a life.
func (k Kind) Hostile() bool {
	return k == KindEnemy || k == KindEnemyShot
}

// PowerUpKind is the variant of a pickup.
type PowerUpKind int

const (
	PowerUpSalt   PowerUpKind = iota // Faster fire rate
	PowerUpPepper                    // Two extra firing clones
)

// String returns the name of the power-up.
func (p PowerUpKind) String() string {
	switch p {
	case PowerUpSalt:
		return "salt"
	case PowerUpPepper:
		return "pepper"
	default:
		return "unknown"
	}
}

// Entity is one object in the playfield. Which fields matter depends on Kind:
// projectiles use VY, path followers use Path/PathStart/PathDuration, enemies
// use LastFired, pickups use PowerUp, explosions use ExpiresAt and clones use
// Offset.
type Entity struct {
	Kind Kind
	Box  core.Box

	VY float64 // Units per 60 Hz tick, positive is down

	Path         Path
	PathStart    time.Duration
	PathDuration time.Duration

	LastFired time.Duration
	PowerUp   PowerUpKind
	ExpiresAt time.Duration
	Offset    float64
}
