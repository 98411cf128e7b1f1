// Package pizza implements Pizza Time, a vertical shooter: the player ship
// dodges zigzagging enemies and their fire, shoots them for points and
// picks up Salt and Pepper power-ups.
//
// The simulation is a fixed-tick state machine. All time is derived from
// the tick count, so runs are deterministic for a given seed and input
// sequence.
package pizza

import (
	"time"

	"github.com/vovakirdan/pizza-time/internal/config"
	"github.com/vovakirdan/pizza-time/internal/core"
	"github.com/vovakirdan/pizza-time/internal/registry"
)

const (
	GameID    = "pizza"
	GameTitle = "Pizza Time"

	// baseTickRate is the rate per-tick speeds in the configuration assume.
	baseTickRate = 60

	blinkPeriod = 50 * time.Millisecond
	starCount   = 60
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// RunResult describes a finished run.
type RunResult struct {
	Score     int
	HighScore int
	Duration  time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithConfig uses cfg instead of loading the configuration on Reset.
func WithConfig(cfg config.ShooterConfig) Option {
	return func(s *Session) {
		s.cfg = cfg
		s.cfgSet = true
	}
}

// WithAudio sets the cue player.
func WithAudio(a Audio) Option {
	return func(s *Session) { s.SetAudio(a) }
}

// WithOverlay adds an overlay next to the built-in presenter.
func WithOverlay(o Overlay) Option {
	return func(s *Session) { s.overlays = append(s.overlays, o) }
}

// WithRenderer adds a renderer next to the built-in presenter.
func WithRenderer(r Renderer) Option {
	return func(s *Session) { s.renderers = append(s.renderers, r) }
}

// WithGameOverHook calls fn once per finished run.
func WithGameOverHook(fn func(RunResult)) Option {
	return func(s *Session) { s.OnGameOver(fn) }
}

// Session is one player's game: title screen, runs and game-over screens.
// It implements registry.Game.
type Session struct {
	cfg     config.ShooterConfig
	cfgSet  bool
	runtime core.RuntimeConfig
	scale   float64 // baseTickRate / TickRate

	world    *World
	player   Handle
	clones   [2]Handle
	spawner  *Spawner
	resolver Resolver
	effects  Effects
	bg       *Background

	state        State
	phase        core.Phase
	paused       bool
	quit         bool
	playerHidden bool
	gameOverSent bool

	tick         int64
	runStart     time.Duration
	fireCooldown time.Duration
	lastFired    time.Duration

	presenter  *Presenter
	audio      Audio
	overlays   []Overlay
	renderers  []Renderer
	shown      map[Handle]bool
	onGameOver func(RunResult)
}

// New creates a session. Call Reset before stepping it.
func New(opts ...Option) *Session {
	s := &Session{
		audio:  NopAudio{},
		player: NoHandle,
		clones: [2]Handle{NoHandle, NoHandle},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the unique identifier for this game.
func (s *Session) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (s *Session) Title() string {
	return GameTitle
}

// SetAudio sets the cue player. A nil player mutes the session.
func (s *Session) SetAudio(a Audio) {
	if a == nil {
		a = NopAudio{}
	}
	s.audio = a
}

// OnGameOver sets the function called once per finished run.
func (s *Session) OnGameOver(fn func(RunResult)) {
	s.onGameOver = fn
}

// SetHighScore raises the in-memory high score to at least n.
func (s *Session) SetHighScore(n int) {
	if n > s.state.HighScore {
		s.state.HighScore = n
		s.refreshOverlay()
	}
}

// Reset prepares the session for first launch and shows the title screen.
// The high score survives.
func (s *Session) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = baseTickRate
	}
	s.runtime = runtime
	s.scale = float64(baseTickRate) / float64(runtime.TickRate)

	if !s.cfgSet {
		cfg, err := config.LoadShooter(configPath)
		if err != nil {
			cfg = config.DefaultShooterConfig()
		}
		config.ApplyPreset(&cfg, difficultyPreset)
		s.cfg = cfg
	}

	s.world = NewWorld()
	s.spawner = NewSpawner(s.cfg, runtime.Seed)
	s.resolver = NewResolver(s.cfg)
	s.bg = NewBackground(s.cfg.Playfield.Width, s.cfg.Playfield.Height, starCount, runtime.Seed)
	s.presenter = NewPresenter(s.cfg.Playfield)
	s.shown = make(map[Handle]bool)
	s.effects.Reset()

	s.player = NoHandle
	s.clones = [2]Handle{NoHandle, NoHandle}
	s.state = NewState(s.cfg.Player.Lives, s.state.HighScore)
	s.phase = core.PhaseTitle
	s.tick = 0
	s.paused = false
	s.quit = false
	s.playerHidden = false
	s.gameOverSent = false
	s.fireCooldown = config.Ms(s.cfg.Player.FireCooldownMS)
	s.lastFired = never

	for _, o := range s.allOverlays() {
		o.ShowTitle()
	}
	s.refreshOverlay()
}

// Step advances the session by one tick.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		s.quit = true
		return core.StepResult{State: s.State()}
	}

	finished := false
	switch s.phase {
	case core.PhaseTitle:
		s.tick++
		s.bg.Advance(s.cfg.Playfield.BackgroundScroll * s.scale)
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			s.startRun()
		}

	case core.PhasePlaying:
		if in.Has(core.ActionPause) {
			s.paused = !s.paused
		}
		if !s.paused {
			finished = s.update(in)
		}

	case core.PhaseGameOver:
		s.tick++
		s.expireExplosions(s.Now())
		s.bg.Advance(s.cfg.Playfield.BackgroundScroll * s.scale)
		switch {
		case in.Has(core.ActionConfirm), in.Has(core.ActionRestart):
			s.startRun()
		case in.Has(core.ActionBack):
			s.quit = true
		}
	}

	s.sync()
	return core.StepResult{State: s.State(), Finished: finished}
}

// update is one tick of play. Returns true on the tick the run ends.
func (s *Session) update(in core.InputFrame) bool {
	s.tick++
	now := s.Now()

	s.spawner.Ramp(now)
	s.expireEffects(now)
	s.movePlayer(in)
	s.firePlayer(in, now)
	s.spawner.Spawn(s.world, now)
	s.fireEnemies(now)
	s.advance(now)

	events := s.resolver.Resolve(s.world, s.player, s.state, now)
	over := s.apply(events, now)

	s.bg.Advance(s.cfg.Playfield.BackgroundScroll * s.scale)
	s.refreshOverlay()
	return over
}

// apply folds resolver events into the state and fires their side effects.
func (s *Session) apply(events []Event, now time.Duration) bool {
	flash := config.Ms(s.cfg.Player.FlashMS)
	for _, ev := range events {
		s.state.Apply(ev, now)
		switch ev.Kind {
		case EventDamaged:
			s.audio.Play(CueExplosion)
			s.effects.Flash(now, flash)
		case EventScored:
			s.addExplosion(ev.At, now)
			s.audio.Play(CueExplosion)
		case EventPowerUpCollected:
			s.audio.Play(CuePowerUp)
			s.effects.Flash(now, flash)
			s.collect(ev.PowerUp, now)
		case EventGameOver:
			s.gameOver(ev.At, now)
			return true
		}
	}
	return false
}

// collect starts a power-up effect.
func (s *Session) collect(kind PowerUpKind, now time.Duration) {
	d := config.Ms(s.cfg.PowerUp.DurationMS)
	switch kind {
	case PowerUpSalt:
		s.effects.ApplySalt(now, d)
		s.fireCooldown = config.Ms(s.cfg.PowerUp.BoostedCooldown)
	case PowerUpPepper:
		if s.effects.ApplyPepper(now, d) {
			s.addClones()
		}
	}
}

// expireEffects reverts effects whose window has closed.
func (s *Session) expireEffects(now time.Duration) {
	for _, e := range s.effects.Expire(now) {
		switch e {
		case EffectSalt:
			s.fireCooldown = config.Ms(s.cfg.Player.FireCooldownMS)
		case EffectPepper:
			s.removeClones()
		}
	}
}

func (s *Session) addClones() {
	p, ok := s.world.Get(s.player)
	if !ok {
		return
	}
	off := s.cfg.Player.CloneOffset
	for i, o := range [2]float64{-off, off} {
		s.clones[i] = s.world.Add(Entity{
			Kind:   KindClone,
			Box:    p.Box.Translate(o, 0),
			Offset: o,
		})
	}
}

func (s *Session) removeClones() {
	for i, h := range s.clones {
		s.world.Remove(h)
		s.clones[i] = NoHandle
	}
}

// CloneOffsets returns the horizontal offsets of the extra firing origins.
func (s *Session) CloneOffsets() []float64 {
	var offs []float64
	for _, h := range s.clones {
		if c, ok := s.world.Get(h); ok {
			offs = append(offs, c.Offset)
		}
	}
	return offs
}

// gameOver ends the run in the same pass that took the last life.
func (s *Session) gameOver(at Point, now time.Duration) {
	s.phase = core.PhaseGameOver
	s.paused = false
	s.addExplosion(at, now)
	s.audio.Play(CueGameOver)
	s.playerHidden = true

	s.removeClones()
	s.effects.Reset()
	s.world.Purge(KindEnemy, KindShot, KindEnemyShot, KindPowerUp)

	for _, o := range s.allOverlays() {
		o.ShowGameOver()
	}
	if !s.gameOverSent {
		s.gameOverSent = true
		if s.onGameOver != nil {
			s.onGameOver(RunResult{
				Score:     s.state.Score,
				HighScore: s.state.HighScore,
				Duration:  now - s.runStart,
			})
		}
	}
}

// startRun begins a run from a clean slate, keeping the high score.
func (s *Session) startRun() {
	now := s.Now()
	s.world.Clear()
	s.effects.Reset()
	s.clones = [2]Handle{NoHandle, NoHandle}

	s.state = NewState(s.cfg.Player.Lives, s.state.HighScore)
	s.fireCooldown = config.Ms(s.cfg.Player.FireCooldownMS)
	s.lastFired = never
	s.spawner.Reset(now)

	pc := s.cfg.Player
	s.player = s.world.Add(Entity{
		Kind: KindPlayer,
		Box:  core.NewBox(s.cfg.Playfield.Width/2-pc.Width/2, pc.StartY, pc.Width, pc.Height),
	})

	s.phase = core.PhasePlaying
	s.paused = false
	s.playerHidden = false
	s.gameOverSent = false
	s.runStart = now

	s.audio.Play(CueGameStart)
	for _, o := range s.allOverlays() {
		o.HideGameOver()
	}
	s.refreshOverlay()
}

func (s *Session) refreshOverlay() {
	for _, o := range s.allOverlays() {
		o.UpdateScore(s.state.Score, s.state.HighScore)
		o.UpdateLives(s.state.Life)
	}
}

func (s *Session) allOverlays() []Overlay {
	if s.presenter == nil {
		return s.overlays
	}
	return append([]Overlay{s.presenter}, s.overlays...)
}

func (s *Session) allRenderers() []Renderer {
	return append([]Renderer{s.presenter}, s.renderers...)
}

// sync pushes entity lifecycle and positions to the renderers.
func (s *Session) sync() {
	created, removed := s.world.Drain()
	renderers := s.allRenderers()
	now := s.Now()

	for _, h := range created {
		e, ok := s.world.Get(h)
		if !ok {
			continue
		}
		for _, r := range renderers {
			r.Create(h, e.Kind, e.Box)
		}
		if e.Kind == KindPowerUp {
			s.presenter.SetPowerUp(h, e.PowerUp)
		}
		s.shown[h] = true
	}

	s.world.All(func(h Handle, e *Entity) {
		if !s.shown[h] {
			return
		}
		visible := true
		if e.Kind == KindPlayer {
			visible = !s.playerHidden && !s.effects.Blink(now, blinkPeriod)
		}
		for _, r := range renderers {
			r.Update(h, e.Box, visible)
		}
	})

	for _, h := range removed {
		if !s.shown[h] {
			continue
		}
		for _, r := range renderers {
			r.Destroy(h)
		}
		delete(s.shown, h)
	}
}

// Render draws the current game state into the screen buffer.
func (s *Session) Render(dst *core.Screen) {
	if s.presenter == nil {
		dst.Clear()
		return
	}
	s.presenter.Draw(dst, s.bg, s.paused)
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:     s.state.Score,
		HighScore: s.state.HighScore,
		Lives:     s.state.Life,
		Phase:     s.phase,
		GameOver:  s.phase == core.PhaseGameOver,
		Paused:    s.paused,
		Quit:      s.quit,
	}
}

// Now returns the session clock, derived from the tick count.
func (s *Session) Now() time.Duration {
	return time.Duration(s.tick) * time.Second / time.Duration(s.runtime.TickRate)
}

// Phase returns the current phase.
func (s *Session) Phase() core.Phase {
	return s.phase
}

// World exposes the entity arena.
func (s *Session) World() *World {
	return s.world
}

// Player returns the main ship's handle.
func (s *Session) Player() Handle {
	return s.player
}

// FireCooldown returns the current player fire cooldown.
func (s *Session) FireCooldown() time.Duration {
	return s.fireCooldown
}

// SpawnCooldown returns the current enemy spawn cooldown.
func (s *Session) SpawnCooldown() time.Duration {
	return s.spawner.Cooldown()
}

// Effects returns a copy of the timed effects.
func (s *Session) Effects() Effects {
	return s.effects
}

// Config returns the configuration in use.
func (s *Session) Config() config.ShooterConfig {
	return s.cfg
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
