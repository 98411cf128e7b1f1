package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pizza-time/internal/audio"
	"github.com/vovakirdan/pizza-time/internal/config"
	"github.com/vovakirdan/pizza-time/internal/core"
	"github.com/vovakirdan/pizza-time/internal/games/pizza"
	"github.com/vovakirdan/pizza-time/internal/platform/tui"
	"github.com/vovakirdan/pizza-time/internal/registry"
	"github.com/vovakirdan/pizza-time/internal/storage"
)

var (
	flagMute   bool
	flagHoldMS int
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Pizza Time",
	Long: `Start playing in this terminal.

Controls:
  Arrows/WASD  - Move
  Space        - Fire (hold)
  F            - Toggle auto-fire
  Enter        - Start / continue after game over
  P            - Pause
  Tab          - High scores (title and game over screens)
  Esc          - Leave the game over screen
  Q/Ctrl+C     - Quit

Difficulty options:
  easy    - Slower first waves and a gentler ramp
  normal  - The configured ramp
  hard    - Faster first waves and a steeper ramp
  fixed   - No ramp, enemies keep the initial pace

Examples:
  pizzatime play
  pizzatime play --difficulty hard
  pizzatime play --mute --seed 42
  pizzatime play --config ./my-pizza.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, fs := range []*cobra.Command{rootCmd, playCmd} {
		fs.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
		fs.Flags().IntVar(&flagHoldMS, "hold-ms", int(tui.DefaultHoldWindow/time.Millisecond), "How long a key counts as held after a press")
		fs.Flags().StringVar(&flagPlayer, "name", "", "Name recorded with your runs (default: $USER)")
	}
}

// prepareGame validates the configuration flags and hands them to the game.
func prepareGame() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if _, err := config.LoadShooter(flagConfig); err != nil {
		return err
	}
	pizza.SetConfigPath(flagConfig)
	pizza.SetDifficultyPreset(flagDifficulty)
	return nil
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// play runs one terminal game. Deferred cleanup runs before it returns,
// so callers may exit on error.
func play() error {
	if err := prepareGame(); err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "pizzatime")
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	game, err := registry.Create(pizza.GameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open()
	if err != nil {
		logger.Warn("run log unavailable", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var sound pizza.Audio = audio.Silent{}
	if !flagMute {
		player := audio.New(logger)
		if player.Init() == nil {
			defer player.Close()
			sound = player
		}
	}

	name := flagPlayer
	if name == "" {
		name = os.Getenv("USER")
	}

	logger.Info("starting", "fps", cfg.TickRate, "seed", cfg.Seed, "difficulty", flagDifficulty)
	err = tui.Run(game, cfg, tui.Options{
		Store:      store,
		Player:     name,
		Audio:      sound,
		Logger:     logger,
		HoldWindow: time.Duration(flagHoldMS) * time.Millisecond,
	})
	if err != nil {
		logger.Error("game stopped", "err", err)
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
