package pizza

import (
	"time"

	"github.com/vovakirdan/pizza-time/internal/config"
	"github.com/vovakirdan/pizza-time/internal/core"
)

// Spawner creates enemies and power-ups on cooldowns.
// Both timers start expired, so a run opens with one of each.
type Spawner struct {
	cfg  config.ShooterConfig
	rng  *RNG
	ramp *config.SpawnRamp

	lastEnemy   time.Duration
	lastPowerUp time.Duration
}

// NewSpawner creates a spawner seeded for deterministic runs.
func NewSpawner(cfg config.ShooterConfig, seed int64) *Spawner {
	sp := &Spawner{
		cfg:  cfg,
		rng:  NewRNG(seed),
		ramp: config.NewSpawnRamp(cfg.Spawn, cfg.Difficulty.Enabled),
	}
	sp.Reset(0)
	return sp
}

// Reset restarts the timers and the difficulty ramp at now.
func (sp *Spawner) Reset(now time.Duration) {
	sp.lastEnemy = never
	sp.lastPowerUp = never
	sp.ramp.Reset(now)
}

// Ramp advances the difficulty ramp and returns the enemy spawn cooldown.
func (sp *Spawner) Ramp(now time.Duration) time.Duration {
	return sp.ramp.Tick(now)
}

// Cooldown returns the current enemy spawn cooldown.
func (sp *Spawner) Cooldown() time.Duration {
	return sp.ramp.Cooldown()
}

// Spawn adds whatever is due at now to the world.
func (sp *Spawner) Spawn(w *World, now time.Duration) {
	if now-sp.lastEnemy >= sp.ramp.Cooldown() {
		sp.SpawnEnemy(w, now)
		sp.lastEnemy = now
	}
	if now-sp.lastPowerUp >= config.Ms(sp.cfg.PowerUp.SpawnIntervalMS) {
		sp.SpawnPowerUp(w, now)
		sp.lastPowerUp = now
	}
}

// SpawnEnemy adds an enemy at a random spawn column on a random zigzag.
func (sp *Spawner) SpawnEnemy(w *World, now time.Duration) Handle {
	ec := sp.cfg.Enemy
	x := ec.SpawnX[sp.rng.Intn(len(ec.SpawnX))]
	mirrored := sp.rng.Coin()
	path := ZigzagPath(x, ec.Amplitude, ec.Width, sp.cfg.Playfield.Width, mirrored)
	start := path.Points[0]
	return w.Add(Entity{
		Kind:         KindEnemy,
		Box:          core.NewBox(start.X, start.Y, ec.Width, ec.Height),
		Path:         path,
		PathStart:    now,
		PathDuration: config.Ms(ec.PathMS),
		LastFired:    never,
	})
}

// SpawnPowerUp adds Salt or Pepper with even odds.
func (sp *Spawner) SpawnPowerUp(w *World, now time.Duration) Handle {
	kind := PowerUpPepper
	if sp.rng.Coin() {
		kind = PowerUpSalt
	}
	return sp.AddPowerUp(w, kind, now)
}

// AddPowerUp adds a power-up of the given kind at a random spawn column.
func (sp *Spawner) AddPowerUp(w *World, kind PowerUpKind, now time.Duration) Handle {
	pc := sp.cfg.PowerUp
	x := sp.cfg.Enemy.SpawnX[sp.rng.Intn(len(sp.cfg.Enemy.SpawnX))]
	mirrored := false
	if pc.PepperMirrorable {
		mirrored = sp.rng.Coin()
	}
	path := ZigzagPath(x, sp.cfg.Enemy.Amplitude, pc.Width, sp.cfg.Playfield.Width, mirrored)
	start := path.Points[0]
	return w.Add(Entity{
		Kind:         KindPowerUp,
		Box:          core.NewBox(start.X, start.Y, pc.Width, pc.Height),
		Path:         path,
		PathStart:    now,
		PathDuration: config.Ms(pc.PathMS),
		PowerUp:      kind,
	})
}
