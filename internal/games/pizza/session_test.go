package pizza

import (
	"testing"
	"time"

	"github.com/vovakirdan/pizza-time/internal/config"
	"github.com/vovakirdan/pizza-time/internal/core"
)

type recordAudio struct {
	cues []Cue
}

func (a *recordAudio) Play(c Cue) { a.cues = append(a.cues, c) }

func (a *recordAudio) count(c Cue) int {
	n := 0
	for _, got := range a.cues {
		if got == c {
			n++
		}
	}
	return n
}

type recordRenderer struct {
	live    map[Handle]Kind
	visible map[Handle]bool
}

func newRecordRenderer() *recordRenderer {
	return &recordRenderer{live: map[Handle]Kind{}, visible: map[Handle]bool{}}
}

func (r *recordRenderer) Create(h Handle, k Kind, _ core.Box) { r.live[h] = k }
func (r *recordRenderer) Update(h Handle, _ core.Box, v bool) { r.visible[h] = v }
func (r *recordRenderer) Destroy(h Handle)                    { delete(r.live, h); delete(r.visible, h) }

type recordOverlay struct {
	NopOverlay
	gameOverShown int
	life          int
}

func (o *recordOverlay) ShowGameOver()     { o.gameOverShown++ }
func (o *recordOverlay) UpdateLives(l int) { o.life = l }

// quietConfig spawns one enemy and one power-up on the first tick and then
// nothing for an hour, so tests place every entity themselves.
func quietConfig() config.ShooterConfig {
	cfg := config.DefaultShooterConfig()
	cfg.Spawn.InitialCooldownMS = 3600000
	cfg.PowerUp.SpawnIntervalMS = 3600000
	return cfg
}

func newPlaying(t *testing.T, cfg config.ShooterConfig, opts ...Option) *Session {
	t.Helper()
	s := New(append([]Option{WithConfig(cfg)}, opts...)...)
	s.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	s.Step(core.NewInputFrame(core.ActionConfirm))
	if s.Phase() != core.PhasePlaying {
		t.Fatalf("phase = %v after Confirm, expected playing", s.Phase())
	}
	s.Step(core.NewInputFrame())
	s.World().Purge(KindEnemy, KindPowerUp, KindEnemyShot)
	return s
}

func step(s *Session, n int, actions ...core.Action) []core.StepResult {
	results := make([]core.StepResult, 0, n)
	for range n {
		results = append(results, s.Step(core.NewInputFrame(actions...)))
	}
	return results
}

// park adds an entity that stays where it is put.
func park(s *Session, kind Kind, x, y, w, h float64) Handle {
	at := Point{X: x, Y: y}
	return s.World().Add(Entity{
		Kind:         kind,
		Box:          core.NewBox(x, y, w, h),
		Path:         NewPath(at, at),
		PathStart:    s.Now(),
		PathDuration: time.Hour,
		LastFired:    time.Hour, // never fires
	})
}

func playerBox(t *testing.T, s *Session) core.Box {
	t.Helper()
	p, ok := s.World().Get(s.Player())
	if !ok {
		t.Fatal("player is not in the world")
	}
	return p.Box
}

func TestSessionTitleToPlaying(t *testing.T) {
	audio := &recordAudio{}
	s := New(WithConfig(quietConfig()), WithAudio(audio))
	s.Reset(core.DefaultConfig())

	if s.Phase() != core.PhaseTitle {
		t.Fatalf("phase = %v after Reset, expected title", s.Phase())
	}
	step(s, 10, core.ActionFire)
	if s.Phase() != core.PhaseTitle {
		t.Error("fire should not leave the title screen")
	}

	s.Step(core.NewInputFrame(core.ActionConfirm))
	st := s.State()
	if st.Phase != core.PhasePlaying || st.Lives != 3 || st.Score != 0 {
		t.Errorf("state after start = %+v", st)
	}
	if audio.count(CueGameStart) != 1 {
		t.Errorf("game_start played %d times", audio.count(CueGameStart))
	}
	box := playerBox(t, s)
	if box.X != 346.5 || box.Y != 800 {
		t.Errorf("player starts at (%v, %v), expected (346.5, 800)", box.X, box.Y)
	}
}

func TestSessionFirstTickSpawns(t *testing.T) {
	s := New(WithConfig(quietConfig()))
	s.Reset(core.DefaultConfig())
	s.Step(core.NewInputFrame(core.ActionConfirm))
	s.Step(core.NewInputFrame())

	w := s.World()
	if w.Count(KindEnemy) != 1 || w.Count(KindPowerUp) != 1 {
		t.Errorf("first tick spawned %d enemies, %d power-ups", w.Count(KindEnemy), w.Count(KindPowerUp))
	}
}

func TestSessionInvulnerability(t *testing.T) {
	s := newPlaying(t, quietConfig())
	box := playerBox(t, s)
	park(s, KindEnemy, box.X, box.Y, 75, 75)
	park(s, KindEnemyShot, box.X+5, box.Y+10, 50, 50)

	step(s, 1)
	if s.State().Lives != 2 {
		t.Fatalf("lives = %d after two simultaneous contacts, expected 2", s.State().Lives)
	}

	step(s, 59)
	if s.State().Lives != 2 {
		t.Errorf("lives = %d inside the 1s window, expected 2", s.State().Lives)
	}

	step(s, 1)
	if s.State().Lives != 1 {
		t.Errorf("lives = %d once the window closed, expected 1", s.State().Lives)
	}
}

func TestSessionScoringEndToEnd(t *testing.T) {
	audio := &recordAudio{}
	s := newPlaying(t, quietConfig(), WithAudio(audio))
	if st := s.State(); st.Lives != 3 || st.Score != 0 {
		t.Fatalf("start state = %+v", st)
	}

	enemy := park(s, KindEnemy, 300, 500, 75, 75)
	shot := s.World().Add(Entity{Kind: KindShot, Box: core.NewBox(310, 510, 50, 50), VY: -10})
	before := audio.count(CueExplosion)

	step(s, 1)

	w := s.World()
	if w.Alive(enemy) || w.Alive(shot) {
		t.Error("enemy and shot should be removed")
	}
	if st := s.State(); st.Score != 5 || st.HighScore != 5 {
		t.Errorf("score %d, high %d, expected 5 and 5", st.Score, st.HighScore)
	}
	if n := w.Count(KindExplosion); n != 1 {
		t.Errorf("explosions = %d, expected exactly 1", n)
	}
	if n := audio.count(CueExplosion) - before; n != 1 {
		t.Errorf("explosion cue played %d times, expected 1", n)
	}

	// Explosions clear themselves after 300ms.
	step(s, 20)
	if n := w.Count(KindExplosion); n != 0 {
		t.Errorf("explosion still alive after 300ms")
	}
}

func TestSessionHighScoreOnlyWhenBeaten(t *testing.T) {
	s := newPlaying(t, quietConfig())
	s.SetHighScore(100)

	park(s, KindEnemy, 300, 500, 75, 75)
	s.World().Add(Entity{Kind: KindShot, Box: core.NewBox(310, 510, 50, 50), VY: -10})
	step(s, 1)

	if st := s.State(); st.Score != 5 || st.HighScore != 100 {
		t.Errorf("score %d, high %d, expected 5 and 100", st.Score, st.HighScore)
	}
}

func TestSessionHiddenEnemyCannotBeHit(t *testing.T) {
	s := newPlaying(t, quietConfig())
	enemy := park(s, KindEnemy, 300, -50, 75, 75)
	shot := park(s, KindShot, 310, -40, 50, 50)

	step(s, 1)
	if s.State().Score != 0 {
		t.Errorf("score = %d, enemies above the screen cannot be hit", s.State().Score)
	}
	if !s.World().Alive(enemy) || !s.World().Alive(shot) {
		t.Error("nothing should be removed")
	}
}

func TestSessionGameOverOnce(t *testing.T) {
	audio := &recordAudio{}
	overlay := &recordOverlay{}
	var runs []RunResult
	s := newPlaying(t, quietConfig(),
		WithAudio(audio),
		WithOverlay(overlay),
		WithGameOverHook(func(r RunResult) { runs = append(runs, r) }))

	box := playerBox(t, s)
	park(s, KindEnemy, box.X, box.Y, 75, 75)

	finished := 0
	for i := 0; i < 300 && s.Phase() == core.PhasePlaying; i++ {
		if s.Step(core.NewInputFrame()).Finished {
			finished++
		}
	}
	if s.Phase() != core.PhaseGameOver {
		t.Fatalf("phase = %v, expected gameover", s.Phase())
	}
	if st := s.State(); st.Lives != 0 || !st.GameOver {
		t.Errorf("state after game over = %+v", st)
	}
	if s.World().Count(KindEnemy) != 0 {
		t.Error("game over should purge enemies")
	}
	if s.World().Count(KindExplosion) != 1 {
		t.Error("game over should leave one explosion at the player")
	}

	park(s, KindEnemy, box.X, box.Y, 75, 75)
	park(s, KindEnemyShot, box.X, box.Y, 50, 50)
	for range 300 {
		if s.Step(core.NewInputFrame()).Finished {
			finished++
		}
	}

	if s.State().Lives != 0 {
		t.Errorf("lives = %d, expected to stay at 0", s.State().Lives)
	}
	if len(runs) != 1 {
		t.Errorf("game over hook fired %d times, expected 1", len(runs))
	}
	if finished != 1 {
		t.Errorf("Finished reported %d times, expected 1", finished)
	}
	if audio.count(CueGameOver) != 1 {
		t.Errorf("game_over cue played %d times", audio.count(CueGameOver))
	}
	if overlay.gameOverShown != 1 || overlay.life != 0 {
		t.Errorf("overlay saw %d game overs, life %d", overlay.gameOverShown, overlay.life)
	}
	if runs[0].Duration < 2*time.Second {
		t.Errorf("run duration = %v, expected at least the two invulnerability windows", runs[0].Duration)
	}
}

func TestSessionRestart(t *testing.T) {
	audio := &recordAudio{}
	s := newPlaying(t, quietConfig(), WithAudio(audio))

	park(s, KindEnemy, 300, 500, 75, 75)
	s.World().Add(Entity{Kind: KindShot, Box: core.NewBox(310, 510, 50, 50), VY: -10})
	step(s, 1)

	box := playerBox(t, s)
	park(s, KindEnemy, box.X, box.Y, 75, 75)
	park(s, KindShot, 10, 10, 50, 50)
	park(s, KindPowerUp, 600, 10, 75, 75)
	for i := 0; i < 300 && s.Phase() == core.PhasePlaying; i++ {
		step(s, 1)
	}
	if s.Phase() != core.PhaseGameOver {
		t.Fatal("expected game over")
	}
	high := s.State().HighScore
	if high != 5 {
		t.Fatalf("high score = %d before restart, expected 5", high)
	}

	s.Step(core.NewInputFrame(core.ActionRestart))

	st := s.State()
	if st.Phase != core.PhasePlaying || st.Lives != 3 || st.Score != 0 || st.HighScore != high {
		t.Errorf("state after restart = %+v", st)
	}
	w := s.World()
	for _, k := range []Kind{KindEnemy, KindShot, KindEnemyShot, KindPowerUp, KindClone} {
		if n := w.Count(k); n != 0 {
			t.Errorf("%d %s entities left after restart", n, k)
		}
	}
	if s.FireCooldown() != 750*time.Millisecond {
		t.Errorf("fire cooldown = %v after restart", s.FireCooldown())
	}
	box = playerBox(t, s)
	if box.X != 346.5 || box.Y != 800 {
		t.Errorf("player not repositioned: (%v, %v)", box.X, box.Y)
	}
	if audio.count(CueGameStart) != 2 {
		t.Errorf("game_start played %d times, expected 2", audio.count(CueGameStart))
	}
}

func TestSessionBackQuitsFromGameOver(t *testing.T) {
	s := newPlaying(t, quietConfig())
	box := playerBox(t, s)
	park(s, KindEnemy, box.X, box.Y, 75, 75)
	for i := 0; i < 300 && s.Phase() == core.PhasePlaying; i++ {
		step(s, 1)
	}

	s.Step(core.NewInputFrame(core.ActionBack))
	if !s.State().Quit {
		t.Error("Back on the game-over screen should ask to quit")
	}
}

func TestSessionSalt(t *testing.T) {
	s := newPlaying(t, quietConfig())
	box := playerBox(t, s)
	salt := park(s, KindPowerUp, box.X, box.Y, 75, 75)
	e, _ := s.World().Get(salt)
	e.PowerUp = PowerUpSalt

	step(s, 1)
	if s.FireCooldown() != 250*time.Millisecond {
		t.Fatalf("fire cooldown = %v after Salt, expected 250ms", s.FireCooldown())
	}
	if s.World().Alive(salt) {
		t.Error("collected Salt should be removed")
	}

	step(s, 899)
	if s.FireCooldown() != 250*time.Millisecond {
		t.Errorf("Salt ended before 15s")
	}
	step(s, 1)
	if s.FireCooldown() != 750*time.Millisecond {
		t.Errorf("fire cooldown = %v after 15s, expected 750ms", s.FireCooldown())
	}
}

func TestSessionSaltRecollectRestartsWindow(t *testing.T) {
	s := newPlaying(t, quietConfig())
	addSalt := func() {
		box := playerBox(t, s)
		h := park(s, KindPowerUp, box.X, box.Y, 75, 75)
		e, _ := s.World().Get(h)
		e.PowerUp = PowerUpSalt
	}

	addSalt()
	step(s, 1)
	step(s, 599)
	addSalt()
	step(s, 1)

	// 15s after the first pickup the second window is still open.
	step(s, 400)
	if s.FireCooldown() != 250*time.Millisecond {
		t.Errorf("re-collected Salt expired on the first deadline")
	}
	step(s, 499)
	if s.FireCooldown() != 250*time.Millisecond {
		t.Errorf("Salt ended before its restarted window")
	}
	step(s, 1)
	if s.FireCooldown() != 750*time.Millisecond {
		t.Errorf("fire cooldown = %v after the restarted window", s.FireCooldown())
	}
}

func TestSessionPepper(t *testing.T) {
	s := newPlaying(t, quietConfig())
	addPepper := func() Handle {
		box := playerBox(t, s)
		h := park(s, KindPowerUp, box.X, box.Y, 75, 75)
		e, _ := s.World().Get(h)
		e.PowerUp = PowerUpPepper
		return h
	}

	addPepper()
	step(s, 1)
	offs := s.CloneOffsets()
	if len(offs) != 2 || offs[0] != -80 || offs[1] != 80 {
		t.Fatalf("clone offsets = %v, expected [-80 80]", offs)
	}

	second := addPepper()
	step(s, 1)
	if s.World().Alive(second) {
		t.Error("second Pepper should still be collected")
	}
	if n := len(s.CloneOffsets()); n != 2 {
		t.Errorf("origins = %d after re-collect, expected 2", n)
	}
	if n := s.World().Count(KindClone); n != 2 {
		t.Errorf("clones = %d after re-collect, expected 2", n)
	}

	step(s, 898)
	if n := len(s.CloneOffsets()); n != 2 {
		t.Errorf("Pepper ended early, origins = %d", n)
	}
	step(s, 1)
	if n := len(s.CloneOffsets()); n != 0 {
		t.Errorf("origins = %d after 15s, expected 0", n)
	}
	if n := s.World().Count(KindClone); n != 0 {
		t.Errorf("clones = %d after 15s, expected 0", n)
	}
}

func TestSessionFiring(t *testing.T) {
	audio := &recordAudio{}
	s := newPlaying(t, quietConfig(), WithAudio(audio))

	step(s, 1, core.ActionFire)
	if n := s.World().Count(KindShot); n != 1 {
		t.Fatalf("shots = %d after first fire, expected 1", n)
	}
	s.World().Each(KindShot, func(_ Handle, e *Entity) bool {
		// Spawned at (384-25, 800-25) and moved once.
		if e.Box.X != 359 || e.Box.Y != 765 {
			t.Errorf("shot at (%v, %v), expected (359, 765)", e.Box.X, e.Box.Y)
		}
		return true
	})

	// 750ms cooldown: 44 more held ticks do not fire, the 45th does.
	step(s, 44, core.ActionFire)
	if n := audio.count(CueBlaster); n != 1 {
		t.Errorf("blaster played %d times inside the cooldown", n)
	}
	step(s, 1, core.ActionFire)
	if n := audio.count(CueBlaster); n != 2 {
		t.Errorf("blaster played %d times after the cooldown, expected 2", n)
	}
}

// parkShooter adds a stationary enemy that is free to fire at once.
func parkShooter(s *Session, x, y float64) Handle {
	h := park(s, KindEnemy, x, y, 75, 75)
	e, _ := s.World().Get(h)
	e.LastFired = never
	return h
}

func TestSessionEnemyFiring(t *testing.T) {
	audio := &recordAudio{}
	s := newPlaying(t, quietConfig(), WithAudio(audio))
	parkShooter(s, 0, 100)

	step(s, 1)
	if n := s.World().Count(KindEnemyShot); n != 1 {
		t.Fatalf("enemy shots = %d after first tick, expected 1", n)
	}
	s.World().Each(KindEnemyShot, func(_ Handle, e *Entity) bool {
		// Spawned at the enemy's bottom centre (37.5-25, 175) and moved once.
		if e.Box.X != 12.5 || e.Box.Y != 177.5 {
			t.Errorf("enemy shot at (%v, %v), expected (12.5, 177.5)", e.Box.X, e.Box.Y)
		}
		if e.Box.W != 50 || e.Box.H != 50 {
			t.Errorf("enemy shot size %vx%v, expected 50x50", e.Box.W, e.Box.H)
		}
		return true
	})

	// 750ms cooldown.
	step(s, 44)
	if n := audio.count(CueEnemyBlaster); n != 1 {
		t.Errorf("enemy_blaster played %d times inside the cooldown", n)
	}
	step(s, 1)
	if n := audio.count(CueEnemyBlaster); n != 2 {
		t.Errorf("enemy_blaster played %d times after the cooldown, expected 2", n)
	}
	if n := s.World().Count(KindEnemyShot); n != 2 {
		t.Errorf("enemy shots = %d, expected 2", n)
	}
}

func TestSessionEnemyFiresOnlyOnScreen(t *testing.T) {
	tests := []struct {
		name  string
		y     float64
		fires bool
	}{
		{"far above", -100, false},
		{"bottom edge at top", -75, false},
		{"bottom edge just inside top", -74, true},
		{"middle", 400, true},
		{"bottom edge just inside bottom", 948, true},
		{"bottom edge at bottom", 949, false},
		{"below", 1000, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			audio := &recordAudio{}
			s := newPlaying(t, quietConfig(), WithAudio(audio))
			parkShooter(s, 0, tc.y)

			step(s, 1)
			if got := audio.count(CueEnemyBlaster) == 1; got != tc.fires {
				t.Errorf("enemy at y=%v fired = %v, expected %v", tc.y, got, tc.fires)
			}
		})
	}
}

func TestSessionShotsLeaveThePlayfield(t *testing.T) {
	s := newPlaying(t, quietConfig())
	w := s.World()
	shotGone := w.Add(Entity{Kind: KindShot, Box: core.NewBox(0, -95, 50, 50), VY: -10})
	shotKept := w.Add(Entity{Kind: KindShot, Box: core.NewBox(100, -85, 50, 50), VY: -10})
	enemyShotGone := w.Add(Entity{Kind: KindEnemyShot, Box: core.NewBox(0, 1022, 50, 50), VY: 2.5})
	enemyShotKept := w.Add(Entity{Kind: KindEnemyShot, Box: core.NewBox(100, 1020, 50, 50), VY: 2.5})

	step(s, 1)

	tests := []struct {
		name  string
		h     Handle
		alive bool
	}{
		{"shot past y=-100", shotGone, false},
		{"shot at y=-95", shotKept, true},
		{"enemy shot past y=1024", enemyShotGone, false},
		{"enemy shot at y=1022.5", enemyShotKept, true},
	}
	for _, tc := range tests {
		if got := w.Alive(tc.h); got != tc.alive {
			t.Errorf("%s: alive = %v, expected %v", tc.name, got, tc.alive)
		}
	}
}

func TestSessionPathEndRemoves(t *testing.T) {
	for _, kind := range []Kind{KindEnemy, KindPowerUp} {
		t.Run(kind.String(), func(t *testing.T) {
			s := newPlaying(t, quietConfig())
			h := s.World().Add(Entity{
				Kind:         kind,
				PowerUp:      PowerUpSalt,
				Box:          core.NewBox(0, 100, 75, 75),
				Path:         NewPath(Point{X: 0, Y: 100}, Point{X: 0, Y: 200}),
				PathStart:    s.Now(),
				PathDuration: 100 * time.Millisecond,
				LastFired:    time.Hour,
			})

			step(s, 5)
			e, ok := s.World().Get(h)
			if !ok {
				t.Fatal("removed before the path ended")
			}
			if e.Box.Y <= 100 || e.Box.Y >= 200 {
				t.Errorf("y = %v midway along the path", e.Box.Y)
			}
			step(s, 1)
			if s.World().Alive(h) {
				t.Error("still alive after the path ended")
			}
		})
	}
}

func TestSessionPepperFiresFromClones(t *testing.T) {
	s := newPlaying(t, quietConfig())
	box := playerBox(t, s)
	h := park(s, KindPowerUp, box.X, box.Y, 75, 75)
	e, _ := s.World().Get(h)
	e.PowerUp = PowerUpPepper
	step(s, 1)

	step(s, 1, core.ActionFire)
	xs := map[float64]bool{}
	s.World().Each(KindShot, func(_ Handle, e *Entity) bool {
		xs[e.Box.X] = true
		return true
	})
	if len(xs) != 3 || !xs[359] || !xs[279] || !xs[439] {
		t.Errorf("shot columns = %v, expected 279, 359 and 439", xs)
	}
}

func TestSessionMovementClamp(t *testing.T) {
	tests := []struct {
		name   string
		action core.Action
		pepper bool
		wantX  float64
		wantY  float64
	}{
		{"left", core.ActionLeft, false, 0, 800},
		{"right", core.ActionRight, false, 693, 800},
		{"up", core.ActionUp, false, 346.5, 0},
		{"down", core.ActionDown, false, 346.5, 949},
		{"left with clones", core.ActionLeft, true, 80, 800},
		{"right with clones", core.ActionRight, true, 613, 800},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newPlaying(t, quietConfig())
			if tc.pepper {
				box := playerBox(t, s)
				h := park(s, KindPowerUp, box.X, box.Y, 75, 75)
				e, _ := s.World().Get(h)
				e.PowerUp = PowerUpPepper
				step(s, 1)
			}
			step(s, 400, tc.action)

			box := playerBox(t, s)
			if box.X != tc.wantX || box.Y != tc.wantY {
				t.Errorf("player at (%v, %v), expected (%v, %v)", box.X, box.Y, tc.wantX, tc.wantY)
			}
			s.World().Each(KindClone, func(_ Handle, c *Entity) bool {
				if c.Box.X < 0 || c.Box.Right() > 768 {
					t.Errorf("clone left the playfield: %+v", c.Box)
				}
				if c.Box.X != box.X+c.Offset {
					t.Errorf("clone not locked to the ship")
				}
				return true
			})
		})
	}
}

func TestSessionSpawnRamp(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	cfg.Player.Lives = 1000
	s := newPlaying(t, cfg)

	// newPlaying already ran one tick of play.
	step(s, 1798)
	if got := s.SpawnCooldown(); got != 1250*time.Millisecond {
		t.Errorf("cooldown before 30s = %v", got)
	}
	step(s, 1)
	if got := s.SpawnCooldown(); got != 1200*time.Millisecond {
		t.Errorf("cooldown after 30s = %v, expected 1.2s", got)
	}

	step(s, 4*1800)
	if got := s.SpawnCooldown(); got != time.Second {
		t.Errorf("cooldown after 150s = %v, expected 1s floor", got)
	}
	step(s, 1800)
	if got := s.SpawnCooldown(); got != time.Second {
		t.Errorf("cooldown dropped below the floor: %v", got)
	}
}

func TestSessionFixedDifficulty(t *testing.T) {
	cfg := config.DefaultShooterConfig()
	config.ApplyPreset(&cfg, config.DifficultyFixed)
	cfg.Player.Lives = 1000
	s := newPlaying(t, cfg)

	step(s, 3600)
	if got := s.SpawnCooldown(); got != 1250*time.Millisecond {
		t.Errorf("fixed difficulty cooldown = %v, expected 1.25s", got)
	}
}

func TestSessionPauseFreezesClock(t *testing.T) {
	s := newPlaying(t, quietConfig())
	before := s.Now()

	s.Step(core.NewInputFrame(core.ActionPause))
	step(s, 100, core.ActionLeft)
	if s.Now() != before || !s.State().Paused {
		t.Errorf("clock moved while paused: %v -> %v", before, s.Now())
	}
	if playerBox(t, s).X != 346.5 {
		t.Error("player moved while paused")
	}

	s.Step(core.NewInputFrame(core.ActionPause))
	if s.State().Paused || s.Now() == before {
		t.Error("second Pause should resume play")
	}
}

func TestSessionQuit(t *testing.T) {
	s := newPlaying(t, quietConfig())
	res := s.Step(core.NewInputFrame(core.ActionQuit))
	if !res.State.Quit {
		t.Error("Quit should be reported to the platform")
	}
}

func TestSessionClockFromTicks(t *testing.T) {
	s := New(WithConfig(quietConfig()))
	s.Reset(core.RuntimeConfig{TickRate: 60})
	step(s, 1800)
	if s.Now() != 30*time.Second {
		t.Errorf("Now() = %v after 1800 ticks at 60Hz, expected exactly 30s", s.Now())
	}
}

func TestSessionTickRateScalesSpeed(t *testing.T) {
	cfg := quietConfig()
	s := New(WithConfig(cfg))
	s.Reset(core.RuntimeConfig{TickRate: 30, Seed: 7})
	s.Step(core.NewInputFrame(core.ActionConfirm))

	step(s, 30, core.ActionLeft)
	// One second of input at 30Hz moves as far as at 60Hz: 180 units.
	if x := playerBox(t, s).X; x != 346.5-180 {
		t.Errorf("player x = %v, expected %v", x, 346.5-180)
	}
}

func TestSessionRendererSeesWorld(t *testing.T) {
	rec := newRecordRenderer()
	s := newPlaying(t, quietConfig(), WithRenderer(rec))
	box := playerBox(t, s)
	park(s, KindEnemy, 100, 100, 75, 75)
	step(s, 30, core.ActionFire)

	if len(rec.live) != s.World().Len() {
		t.Errorf("renderer tracks %d entities, world has %d", len(rec.live), s.World().Len())
	}

	park(s, KindEnemy, box.X, box.Y, 75, 75)
	for i := 0; i < 300 && s.Phase() == core.PhasePlaying; i++ {
		step(s, 1)
	}
	if rec.visible[s.Player()] {
		t.Error("player should be hidden after game over")
	}
	if len(rec.live) != s.World().Len() {
		t.Errorf("after game over renderer tracks %d, world has %d", len(rec.live), s.World().Len())
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() uint64 {
		cfg := config.DefaultShooterConfig()
		cfg.Player.Lives = 1000
		s := New(WithConfig(cfg))
		s.Reset(core.RuntimeConfig{TickRate: 60, Seed: 12345})
		s.Step(core.NewInputFrame(core.ActionConfirm))
		for i := range 1200 {
			in := core.NewInputFrame(core.ActionFire)
			if i%120 < 60 {
				in.Set(core.ActionLeft)
			} else {
				in.Set(core.ActionRight)
			}
			s.Step(in)
		}
		snap := s.Snapshot()
		return snap.Hash()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed and input diverged: %d vs %d", a, b)
	}
}

func TestSessionRegistered(t *testing.T) {
	s := New()
	if s.ID() != "pizza" || s.Title() != "Pizza Time" {
		t.Errorf("ID/Title = %q/%q", s.ID(), s.Title())
	}
}
