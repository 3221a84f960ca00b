package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/leaderboard"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the hall of fame",
	Long: `Display the hall of fame.

These are showcase entries bundled with the game; your own scores
live under 'pairs best'.`,
	Args: cobra.NoArgs,
	Run:  runLeaderboard,
}

func runLeaderboard(cmd *cobra.Command, args []string) {
	fmt.Println("Hall of Fame")
	fmt.Println()
	fmt.Printf("  %-4s  %-14s  %-8s  %s\n", "Rank", "Player", "Moves", "Time")
	fmt.Printf("  %-4s  %-14s  %-8s  %s\n", "----", "------", "-----", "----")

	for i, e := range leaderboard.Entries() {
		fmt.Printf("  %-4d  %-14s  %-8d  %02d:%02d\n",
			i+1, e.Name, e.Moves, e.Seconds/60, e.Seconds%60)
	}
}
