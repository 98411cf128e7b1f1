package config

import "time"

// SpawnRamp shortens the enemy spawn cooldown as a session goes on.
// Every step interval the cooldown drops by a fixed amount until it
// reaches the floor; it never rises again within a session.
type SpawnRamp struct {
	cfg      SpawnConfig
	enabled  bool
	cooldown time.Duration
	lastStep time.Duration
}

// NewSpawnRamp creates a ramp at its initial cooldown.
func NewSpawnRamp(cfg SpawnConfig, enabled bool) *SpawnRamp {
	r := &SpawnRamp{cfg: cfg, enabled: enabled}
	r.Reset(0)
	return r
}

// Reset restores the initial cooldown and starts the step clock at now.
func (r *SpawnRamp) Reset(now time.Duration) {
	r.cooldown = Ms(r.cfg.InitialCooldownMS)
	r.lastStep = now
}

// IsEnabled returns whether the ramp progresses at all.
func (r *SpawnRamp) IsEnabled() bool {
	return r.enabled && r.cfg.ReductionMS > 0
}

// Cooldown returns the current spawn cooldown.
func (r *SpawnRamp) Cooldown() time.Duration {
	return r.cooldown
}

// Tick advances the ramp to now and returns the cooldown to use this tick.
func (r *SpawnRamp) Tick(now time.Duration) time.Duration {
	if !r.IsEnabled() {
		return r.cooldown
	}
	floor := Ms(r.cfg.FloorMS)
	if now-r.lastStep >= Ms(r.cfg.StepMS) && r.cooldown > floor {
		r.cooldown -= Ms(r.cfg.ReductionMS)
		if r.cooldown < floor {
			r.cooldown = floor
		}
		r.lastStep = now
	}
	return r.cooldown
}

// CooldownAt returns the cooldown a ramp ticked continuously reaches after
// elapsed session time.
func CooldownAt(cfg SpawnConfig, elapsed time.Duration) time.Duration {
	initial := Ms(cfg.InitialCooldownMS)
	if cfg.StepMS <= 0 || cfg.ReductionMS <= 0 || elapsed <= 0 {
		return initial
	}
	steps := int64(elapsed / Ms(cfg.StepMS))
	cd := initial - time.Duration(steps)*Ms(cfg.ReductionMS)
	if floor := Ms(cfg.FloorMS); cd < floor {
		cd = floor
	}
	if cd > initial {
		cd = initial
	}
	return cd
}

// FloorReachedAt returns the session time at which a continuously ticked
// ramp first sits at its floor. ok is false if the ramp never moves.
func FloorReachedAt(cfg SpawnConfig) (at time.Duration, ok bool) {
	if cfg.StepMS <= 0 || cfg.ReductionMS <= 0 {
		return 0, false
	}
	floor := Ms(cfg.FloorMS)
	for elapsed := time.Duration(0); ; elapsed += Ms(cfg.StepMS) {
		if CooldownAt(cfg, elapsed) <= floor {
			return elapsed, true
		}
	}
}
