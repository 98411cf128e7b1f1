package pizza

import (
	"testing"
	"time"

	"github.com/vovakirdan/pizza-time/internal/config"
)

func TestSpawnerFirstTickAndCooldowns(t *testing.T) {
	w := NewWorld()
	sp := NewSpawner(config.DefaultShooterConfig(), 42)

	sp.Spawn(w, 0)
	if w.Count(KindEnemy) != 1 || w.Count(KindPowerUp) != 1 {
		t.Fatalf("first tick spawned %d enemies, %d power-ups", w.Count(KindEnemy), w.Count(KindPowerUp))
	}

	sp.Spawn(w, 1249*time.Millisecond)
	if w.Count(KindEnemy) != 1 {
		t.Error("enemy spawned before its cooldown")
	}
	sp.Spawn(w, 1250*time.Millisecond)
	if w.Count(KindEnemy) != 2 {
		t.Error("enemy not spawned once its cooldown passed")
	}

	sp.Spawn(w, 19999*time.Millisecond)
	if w.Count(KindPowerUp) != 1 {
		t.Error("power-up spawned before its interval")
	}
	sp.Spawn(w, 20*time.Second)
	if w.Count(KindPowerUp) != 2 {
		t.Error("power-up not spawned after 20s")
	}
}

func TestSpawnerEnemyShape(t *testing.T) {
	w := NewWorld()
	sp := NewSpawner(config.DefaultShooterConfig(), 7)

	sides := map[float64]int{}
	for i := range 64 {
		h := sp.SpawnEnemy(w, time.Duration(i)*time.Second)
		e, _ := w.Get(h)
		if e.Box.Y != -100 || e.Box.W != 75 {
			t.Fatalf("enemy box = %+v", e.Box)
		}
		if len(e.Path.Points) != 9 {
			t.Fatalf("enemy path has %d points", len(e.Path.Points))
		}
		if e.PathDuration != 15*time.Second {
			t.Errorf("enemy path duration = %v", e.PathDuration)
		}
		sides[e.Box.X]++
	}
	if len(sides) != 2 || sides[256] == 0 || sides[512] == 0 {
		t.Errorf("spawn columns = %v, expected both 256 and 512", sides)
	}
}

func TestSpawnerPowerUpShape(t *testing.T) {
	w := NewWorld()
	sp := NewSpawner(config.DefaultShooterConfig(), 7)

	seen := map[PowerUpKind]int{}
	for i := range 64 {
		h := sp.SpawnPowerUp(w, time.Duration(i)*time.Second)
		e, _ := w.Get(h)
		if e.PathDuration != 20*time.Second {
			t.Errorf("power-up path duration = %v", e.PathDuration)
		}
		// Without pepper_mirrorable every power-up swings right first.
		if e.Path.Points[1].X <= e.Path.Points[0].X {
			t.Errorf("power-up path mirrored: %v", e.Path.Points[:2])
		}
		seen[e.PowerUp]++
	}
	if seen[PowerUpSalt] == 0 || seen[PowerUpPepper] == 0 {
		t.Errorf("power-up kinds = %v, expected both", seen)
	}
}

func TestSpawnerDeterministic(t *testing.T) {
	run := func() []float64 {
		w := NewWorld()
		sp := NewSpawner(config.DefaultShooterConfig(), 99)
		var xs []float64
		for i := range 20 {
			h := sp.SpawnEnemy(w, time.Duration(i)*time.Second)
			e, _ := w.Get(h)
			xs = append(xs, e.Box.X, e.Path.Points[1].X)
		}
		return xs
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverged at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSpawnerRamp(t *testing.T) {
	sp := NewSpawner(config.DefaultShooterConfig(), 1)
	if got := sp.Ramp(30 * time.Second); got != 1200*time.Millisecond {
		t.Errorf("cooldown after 30s = %v, expected 1.2s", got)
	}

	sp.Reset(time.Minute)
	if sp.Cooldown() != 1250*time.Millisecond {
		t.Errorf("Reset() left cooldown at %v", sp.Cooldown())
	}
	if got := sp.Ramp(time.Minute + 29*time.Second); got != 1250*time.Millisecond {
		t.Errorf("ramp should count from the reset time, got %v", got)
	}
}
