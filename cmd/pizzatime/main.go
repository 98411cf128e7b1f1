// pizzatime is a vertical arcade shooter played in the terminal.
//
// Usage:
//
//	pizzatime               - Play (same as "pizzatime play")
//	pizzatime play          - Play locally
//	pizzatime serve         - Start SSH server for remote play
//	pizzatime config        - Print the effective configuration
//	pizzatime list          - List available games
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Use a custom YAML config
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/pizza-time/internal/games/pizza"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pizzatime",
	Short: "Pizza Time - a vertical shooter in your terminal",
	Long: `Pizza Time is a vertical arcade shooter. Enemies weave down the screen
in zigzags and shoot back; salt and pepper power-ups speed up your fire
and add wingmen.

Available commands:
  play     - Play locally (default)
  serve    - Start SSH server for remote play
  config   - Print the effective configuration
  list     - Show all available games

Examples:
  pizzatime
  pizzatime play --difficulty hard
  pizzatime serve --ssh :2222
  pizzatime config --config ./my-pizza.yaml`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
