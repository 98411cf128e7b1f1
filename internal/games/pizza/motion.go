package pizza

import (
	"time"

	"github.com/vovakirdan/pizza-time/internal/config"
	"github.com/vovakirdan/pizza-time/internal/core"
)

// movePlayer applies held directions, keeping the ship and its clones
// inside the playfield.
func (s *Session) movePlayer(in core.InputFrame) {
	p, ok := s.world.Get(s.player)
	if !ok {
		return
	}
	speed := s.cfg.Player.Speed * s.scale

	var dx, dy float64
	if in.Has(core.ActionUp) {
		dy -= speed
	}
	if in.Has(core.ActionDown) {
		dy += speed
	}
	if in.Has(core.ActionLeft) {
		dx -= speed
	}
	if in.Has(core.ActionRight) {
		dx += speed
	}

	var leftOff, rightOff float64
	for _, off := range s.CloneOffsets() {
		leftOff = min(leftOff, off)
		rightOff = max(rightOff, off)
	}

	field := s.cfg.Playfield
	leftEdge := p.Box.X + leftOff
	rightEdge := p.Box.Right() + rightOff
	if leftEdge+dx < 0 {
		dx = -leftEdge
	}
	if rightEdge+dx > field.Width {
		dx = field.Width - rightEdge
	}
	if p.Box.Y+dy < 0 {
		dy = -p.Box.Y
	}
	if p.Box.Bottom()+dy > field.Height {
		dy = field.Height - p.Box.Bottom()
	}

	p.Box = p.Box.Translate(dx, dy)
	s.placeClones(p)
}

// placeClones locks the clones to the main ship.
func (s *Session) placeClones(p *Entity) {
	for _, h := range s.clones {
		if c, ok := s.world.Get(h); ok {
			c.Box.X = p.Box.X + c.Offset
			c.Box.Y = p.Box.Y
		}
	}
}

// firePlayer shoots from the ship and every clone when the cooldown allows.
func (s *Session) firePlayer(in core.InputFrame, now time.Duration) {
	if !in.Has(core.ActionFire) || now-s.lastFired < s.fireCooldown {
		return
	}
	p, ok := s.world.Get(s.player)
	if !ok {
		return
	}
	cx, _ := p.Box.Center()
	y := p.Box.Y
	s.addShot(cx, y)
	for _, off := range s.CloneOffsets() {
		s.addShot(cx+off, y)
	}
	s.audio.Play(CueBlaster)
	s.lastFired = now
}

func (s *Session) addShot(cx, y float64) Handle {
	pc := s.cfg.Projectile
	return s.world.Add(Entity{
		Kind: KindShot,
		Box:  core.NewBox(cx-pc.Width/2, y-pc.ShotRaise, pc.Width, pc.Height),
		VY:   -pc.ShotSpeed,
	})
}

// fireEnemies lets every enemy whose bottom edge is on screen shoot once
// its cooldown has passed.
func (s *Session) fireEnemies(now time.Duration) {
	cooldown := config.Ms(s.cfg.Enemy.FireCooldownMS)
	height := s.cfg.Playfield.Height
	pc := s.cfg.Projectile

	s.world.Each(KindEnemy, func(_ Handle, e *Entity) bool {
		bottom := e.Box.Bottom()
		if now-e.LastFired < cooldown || bottom <= 0 || bottom >= height {
			return true
		}
		cx, _ := e.Box.Center()
		s.world.Add(Entity{
			Kind: KindEnemyShot,
			Box:  core.NewBox(cx-pc.Width/2, bottom, pc.Width, pc.Height),
			VY:   pc.EnemyShotSpeed,
		})
		e.LastFired = now
		s.audio.Play(CueEnemyBlaster)
		return true
	})
}

// advance moves everything that moves on its own and removes what left
// the playfield, finished its path or expired.
func (s *Session) advance(now time.Duration) {
	for _, kind := range [...]Kind{KindEnemy, KindPowerUp} {
		s.world.Each(kind, func(h Handle, e *Entity) bool {
			pt, done := e.Path.At(now-e.PathStart, e.PathDuration)
			if done {
				s.world.Remove(h)
				return true
			}
			e.Box.X, e.Box.Y = pt.X, pt.Y
			return true
		})
	}

	s.world.Each(KindShot, func(h Handle, e *Entity) bool {
		e.Box.Y += e.VY * s.scale
		if e.Box.Y < s.cfg.Projectile.TopLimit {
			s.world.Remove(h)
		}
		return true
	})

	s.world.Each(KindEnemyShot, func(h Handle, e *Entity) bool {
		e.Box.Y += e.VY * s.scale
		if e.Box.Y > s.cfg.Playfield.Height {
			s.world.Remove(h)
		}
		return true
	})

	s.expireExplosions(now)
}

func (s *Session) expireExplosions(now time.Duration) {
	s.world.Each(KindExplosion, func(h Handle, e *Entity) bool {
		if now >= e.ExpiresAt {
			s.world.Remove(h)
		}
		return true
	})
}

// addExplosion places an explosion centred on at.
func (s *Session) addExplosion(at Point, now time.Duration) Handle {
	size := s.cfg.PowerUp.ExplosionSize
	return s.world.Add(Entity{
		Kind:      KindExplosion,
		Box:       core.NewBox(at.X-size/2, at.Y-size/2, size, size),
		ExpiresAt: now + config.Ms(s.cfg.PowerUp.ExplosionMS),
	})
}
