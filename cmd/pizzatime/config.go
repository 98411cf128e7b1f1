package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pizza-time/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would start with, as YAML.

The configuration comes from --config if given, otherwise from
~/.pizzatime/configs/shooter.yaml, ./configs/shooter.yaml or the built-in
defaults, in that order. --difficulty is applied on top.

Save the output, edit it and pass it back with --config:
  pizzatime config > my-pizza.yaml
  pizzatime play --config my-pizza.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg, err := config.LoadShooter(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.ApplyPreset(&cfg, preset)

	out, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
	fmt.Println(rampSummary(cfg))
}

// rampSummary describes the spawn ramp as a YAML comment.
func rampSummary(cfg config.ShooterConfig) string {
	start := config.Ms(cfg.Spawn.InitialCooldownMS)
	at, ok := config.FloorReachedAt(cfg.Spawn)
	if !cfg.Difficulty.Enabled || !ok {
		return fmt.Sprintf("# spawn ramp: off, enemies every %v", start)
	}
	return fmt.Sprintf("# spawn ramp: enemies every %v at start, %v after 1m, floor %v from %v",
		start, config.CooldownAt(cfg.Spawn, time.Minute), config.Ms(cfg.Spawn.FloorMS), at)
}
