package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var flagClear bool

var bestCmd = &cobra.Command{
	Use:   "best [difficulty]",
	Short: "Show recorded best scores",
	Long: `Display the best recorded score (fewest moves) for each board size,
followed by the most recent finished games.

With a difficulty, show the top games for that board instead.
The board key is "{cols}x{rows}", e.g. 4x4.

Examples:
  pairs best
  pairs best 4x4
  pairs best 4x4 --clear
  pairs best --db ./scores.db`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBest,
}

func init() {
	bestCmd.Flags().BoolVar(&flagClear, "clear", false, "Clear the game history for the given board")
}

func runBest(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 1 {
		runBestForBoard(store, args[0])
		return
	}

	if flagClear {
		fmt.Fprintln(os.Stderr, "Error: --clear needs a board, e.g. 'pairs best 4x4 --clear'")
		os.Exit(1)
	}

	bests, err := store.AllBests()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving best scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Best Scores")
	fmt.Println()

	if len(bests) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pairs play' to set the first one!")
		return
	}

	fmt.Printf("  %-8s  %-8s  %-8s  %s\n", "Board", "Moves", "Time", "Set")
	fmt.Printf("  %-8s  %-8s  %-8s  %s\n", "-----", "-----", "----", "---")
	for _, b := range bests {
		fmt.Printf("  %-8s  %-8d  %02d:%02d     %s\n",
			b.Difficulty, b.Moves, b.Seconds/60, b.Seconds%60,
			b.UpdatedAt.Format("2006-01-02 15:04"))
	}

	recent, err := store.RecentResults(10)
	if err != nil || len(recent) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent Games")
	fmt.Println()
	fmt.Printf("  %-8s  %-8s  %-8s  %s\n", "Board", "Moves", "Time", "Played")
	fmt.Printf("  %-8s  %-8s  %-8s  %s\n", "-----", "-----", "----", "------")
	for _, r := range recent {
		fmt.Printf("  %-8s  %-8d  %02d:%02d     %s\n",
			r.Difficulty, r.Moves, r.Seconds/60, r.Seconds%60,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// runBestForBoard shows or clears the game history for one board key.
func runBestForBoard(store *storage.Store, board string) {
	if flagClear {
		if err := store.ClearResults(board); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared game history for %s.\n", board)
		return
	}

	top, err := store.TopResults(board, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Top Games - %s\n", board)
	fmt.Println()

	if len(top) == 0 {
		fmt.Println("No games recorded yet for this board.")
		fmt.Println()
		fmt.Printf("Play 'pairs play' on a %s board to record one!\n", board)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Moves", "Time", "Played")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "----", "------")
	for i, r := range top {
		fmt.Printf("  %-4d  %-8d  %02d:%02d     %s\n",
			i+1, r.Moves, r.Seconds/60, r.Seconds%60,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
