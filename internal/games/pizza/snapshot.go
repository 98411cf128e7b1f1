package pizza

import "math"

// Snapshot is a flat summary of a session for determinism checks.
// Uses primitive types only for stable hashing.
type Snapshot struct {
	Tick      uint64
	Phase     int
	Score     int
	HighScore int
	Life      int

	FireCooldownMS  int64
	SpawnCooldownMS int64
	SaltActive      bool
	PepperActive    bool

	// Live entities per kind.
	Counts [kindCount]int

	// Each live entity is 3 ints: Kind, X, Y (positions rounded to units).
	EntityData []int

	RNGState uint64
}

// Snapshot returns the current session state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:            uint64(s.tick), //#nosec G115 -- tick count is never negative
		Phase:           int(s.phase),
		Score:           s.state.Score,
		HighScore:       s.state.HighScore,
		Life:            s.state.Life,
		FireCooldownMS:  s.fireCooldown.Milliseconds(),
		SpawnCooldownMS: s.spawner.Cooldown().Milliseconds(),
		SaltActive:      s.effects.SaltActive(),
		PepperActive:    s.effects.PepperActive(),
		RNGState:        s.spawner.rng.State(),
	}
	s.world.All(func(_ Handle, e *Entity) {
		snap.Counts[e.Kind]++
		snap.EntityData = append(snap.EntityData,
			int(e.Kind), int(math.Round(e.Box.X)), int(math.Round(e.Box.Y)))
	})
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Life)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FireCooldownMS)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SpawnCooldownMS) //#nosec G115 -- hash computation
	if snap.SaltActive {
		h = h*31 + 1
	}
	if snap.PepperActive {
		h = h*31 + 2
	}
	for _, c := range snap.Counts {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	for _, v := range snap.EntityData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h*31 + snap.RNGState
}
