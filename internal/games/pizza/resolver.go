package pizza

import (
	"time"

	"github.com/vovakirdan/pizza-time/internal/config"
	"github.com/vovakirdan/pizza-time/internal/core"
)

// Resolver runs the per-tick collision pass.
type Resolver struct {
	DamageCooldown time.Duration
	Points         int

	// Padding shrinks the second operand of each test.
	HostilePadding float64 // the hostile, tested against the player
	ShotPadding    float64 // the enemy, tested against a shot
	PickupPadding  float64 // the player, tested against a power-up
}

// NewResolver builds a resolver from configuration.
func NewResolver(cfg config.ShooterConfig) Resolver {
	return Resolver{
		DamageCooldown: config.Ms(cfg.Player.DamageCooldown),
		Points:         cfg.Enemy.Points,
		HostilePadding: cfg.Hitbox.HostilePadding,
		ShotPadding:    cfg.Hitbox.ShotPadding,
		PickupPadding:  cfg.Hitbox.PickupPadding,
	}
}

// Resolve checks every live entity against the player and the player's
// shots, removes what was hit and returns what happened, in order:
//
//  1. at most one Damaged, if a hostile touches the player outside the
//     invulnerability window;
//  2. one Scored per shot that hits a visible enemy (first enemy wins);
//  3. one PowerUpCollected per pickup touching the player;
//  4. GameOver, if the damage took the last life.
//
// Nothing is processed once life is zero. The state is not modified;
// callers fold the events in with State.Apply.
func (r Resolver) Resolve(w *World, player Handle, st State, now time.Duration) []Event {
	if st.Life <= 0 {
		return nil
	}
	p, ok := w.Get(player)
	if !ok {
		return nil
	}
	var events []Event

	damaged := false
	if now-st.LastDamage >= r.DamageCooldown {
		for _, kind := range [...]Kind{KindEnemy, KindEnemyShot} {
			w.Each(kind, func(_ Handle, e *Entity) bool {
				if core.Intersects(p.Box, e.Box, r.HostilePadding) {
					damaged = true
				}
				return !damaged
			})
			if damaged {
				break
			}
		}
	}
	if damaged {
		x, y := p.Box.Center()
		events = append(events, Event{Kind: EventDamaged, At: Point{X: x, Y: y}})
	}

	w.Each(KindShot, func(sh Handle, shot *Entity) bool {
		w.Each(KindEnemy, func(eh Handle, enemy *Entity) bool {
			if enemy.Box.Y < 0 || !core.Intersects(shot.Box, enemy.Box, r.ShotPadding) {
				return true
			}
			x, y := enemy.Box.Center()
			events = append(events, Event{Kind: EventScored, Points: r.Points, At: Point{X: x, Y: y}})
			w.Remove(eh)
			w.Remove(sh)
			return false
		})
		return true
	})

	w.Each(KindPowerUp, func(h Handle, pu *Entity) bool {
		if core.Intersects(pu.Box, p.Box, r.PickupPadding) {
			x, y := pu.Box.Center()
			events = append(events, Event{Kind: EventPowerUpCollected, PowerUp: pu.PowerUp, At: Point{X: x, Y: y}})
			w.Remove(h)
		}
		return true
	})

	if damaged && st.Life-1 <= 0 {
		x, y := p.Box.Center()
		events = append(events, Event{Kind: EventGameOver, At: Point{X: x, Y: y}})
	}
	return events
}
