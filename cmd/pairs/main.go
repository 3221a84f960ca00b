// pairs is a TUI memory-matching game for the terminal.
//
// Usage:
//
//	pairs play [difficulty]  - Play (menu when difficulty is omitted)
//	pairs best               - Show recorded best scores
//	pairs leaderboard        - Show the hall of fame
//	pairs serve              - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>    - Set RNG seed for reproducible deals
//	--db <path>       - Set database path (default: ~/.pairs/scores.db)
//	--config <path>   - Path to custom game config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Pairs - A memory-matching game in your terminal",
	Long: `Pairs is a terminal memory game: flip two tiles per turn,
match every pair in as few moves as you can.

Available commands:
  play        - Play a game (interactive menu when no difficulty given)
  best        - View recorded best scores per board
  leaderboard - View the hall of fame
  serve       - Start SSH server for remote play

Examples:
  pairs play
  pairs play medium
  pairs play hard --seed 42
  pairs best
  pairs serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pairs/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(serveCmd)
}
