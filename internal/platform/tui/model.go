package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pizza-time/internal/core"
	"github.com/vovakirdan/pizza-time/internal/games/pizza"
	"github.com/vovakirdan/pizza-time/internal/registry"
	"github.com/vovakirdan/pizza-time/internal/storage"
)

// Options wires a Model to its surroundings. Every field is optional.
type Options struct {
	Store      *storage.Store     // Run log; nil disables recording and the scoreboard
	Player     string             // Name recorded with each run
	Audio      pizza.Audio        // Cue player handed to the game
	Logger     *log.Logger        // Defaults to log.Default()
	HoldWindow time.Duration      // See KeyState
	Renderer   *lipgloss.Renderer // Colour profile of the client terminal
}

// Games that report finished runs, take a high score or play sound.
type (
	runReporter interface {
		OnGameOver(func(pizza.RunResult))
	}
	highScoreSeeder interface {
		SetHighScore(int)
	}
	audioSink interface {
		SetAudio(pizza.Audio)
	}
)

// Model is the Bubble Tea model running one game.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	keys     KeyMap
	input    *KeyState
	help     help.Model
	renderer *ScreenRenderer
	logger   *log.Logger

	clock     time.Duration // Advances one tick interval per TickMsg
	lastRun   *string       // Run ID of the latest recorded run, shared with the game-over hook
	gameState core.GameState
	board     *Scoreboard
	showHelp  bool
	quitting  bool
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("game", game.ID(), "player", opts.Player)

	if a, ok := game.(audioSink); ok && opts.Audio != nil {
		a.SetAudio(opts.Audio)
	}
	lastRun := new(string)
	if opts.Store != nil {
		attachRunLog(game, opts.Store, opts.Player, logger, lastRun)
	}

	h := help.New()
	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:    opts.Store,
		config:   cfg,
		keys:     DefaultKeyMap(),
		input:    NewKeyState(opts.HoldWindow),
		help:     h,
		renderer: NewScreenRenderer(opts.Renderer),
		logger:   logger,
		lastRun:  lastRun,
	}
}

// attachRunLog seeds the game's high score from the log and records every
// finished run into it. The ID of the latest run is written to lastRun.
func attachRunLog(game registry.Game, store *storage.Store, player string, logger *log.Logger, lastRun *string) {
	if s, ok := game.(highScoreSeeder); ok {
		high, err := store.HighScore()
		if err != nil {
			logger.Warn("cannot read high score", "err", err)
		}
		s.SetHighScore(high)
	}
	r, ok := game.(runReporter)
	if !ok {
		return
	}
	r.OnGameOver(func(res pizza.RunResult) {
		run, err := store.SaveRun(player, res.Score, res.Duration)
		if err != nil {
			logger.Error("cannot record run", "err", err)
			return
		}
		*lastRun = run.RunID
		logger.Info("run recorded", "run", run.RunID, "score", run.Score, "duration", run.Duration)
	})
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game ready", "seed", m.config.Seed, "tick_rate", m.config.TickRate)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.board != nil {
			return m.updateBoard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input on the game screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keys.AutoFire):
		on := m.input.ToggleAutoFire()
		m.logger.Debug("auto-fire", "on", on)
		return m, nil
	case key.Matches(msg, m.keys.Scores):
		if m.store != nil && m.gameState.Phase != core.PhasePlaying {
			board := NewScoreboard(m.store, *m.lastRun, m.config.ScreenW, m.config.ScreenH)
			m.board = &board
			m.input.Release()
		}
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	m.input.Press(m.keys.Action(msg), m.clock)
	return m, nil
}

func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	board, cmd := m.board.Update(msg)
	switch {
	case board.IsQuitting():
		m.quitting = true
	case board.Closed():
		m.board = nil
	default:
		m.board = &board
	}
	return m, cmd
}

// handleResize follows the terminal size. The game scales into any size,
// so a resize never restarts it.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	if m.board != nil {
		return m.updateBoard(msg)
	}
	return m, nil
}

// handleTick processes simulation ticks.
// The game is frozen while the scoreboard or the full help is open.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if m.board == nil && !m.showHelp {
		result := m.game.Step(m.input.Frame(m.clock))
		m.gameState = result.State
		if result.Finished {
			m.logger.Info("run finished", "score", result.State.Score, "high", result.State.HighScore)
		}
		if result.State.Quit {
			m.quitting = true
			return m, tea.Quit
		}
	}
	m.clock += tickInterval(m.config.TickRate)
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".pizzatime", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	if m.showHelp {
		m.help.ShowAll = true
		panel := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Render(m.help.View(m.keys))
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, panel)
	}

	m.game.Render(m.screen)
	m.help.ShowAll = false
	footer := m.help.View(m.keys)
	if m.input.AutoFire() {
		footer = "[auto-fire] " + footer
	}
	return m.renderer.Render(m.screen) + "\n" + footer
}

// GameState returns the state after the latest tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// ScoreboardOpen reports whether the scoreboard is showing.
func (m Model) ScoreboardOpen() bool {
	return m.board != nil
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
