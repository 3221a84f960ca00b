package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pairs/internal/config"
	"github.com/vovakirdan/tui-pairs/internal/core"
	"github.com/vovakirdan/tui-pairs/internal/platform/tui"
	"github.com/vovakirdan/tui-pairs/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [difficulty]",
	Short: "Play a game",
	Long: `Start a game on the given difficulty, or open the difficulty
menu when none is specified.

Controls:
  Arrows/hjkl  - Move cursor
  Space/Enter  - Flip tile
  P            - Pause
  R            - Restart
  B/Esc        - Back to menu
  Q/Ctrl+C     - Quit

Examples:
  pairs play
  pairs play easy
  pairs play hard --seed 42
  pairs play medium --config ./my-pairs.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	pairsCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	runtime := core.DefaultConfig()
	runtime.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if len(args) == 1 {
		diff, findErr := config.Find(pairsCfg.Difficulties, args[0])
		if findErr != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Available difficulties:")
			for _, d := range pairsCfg.Difficulties {
				fmt.Fprintf(os.Stderr, "  %-8s %s\n", d.ID, d.Key())
			}
			os.Exit(1)
		}

		if _, runErr := tui.RunGame(pairsCfg, diff, store, runtime); runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
		return
	}

	// Menu loop
	for {
		menuResult, menuErr := tui.RunMenu(pairsCfg, store, runtime)
		if menuErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", menuErr)
			break
		}

		// Update config with any size changes
		runtime = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, runtime.ScreenW, runtime.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.DifficultyID == "" {
			break
		}

		diff, findErr := config.Find(pairsCfg.Difficulties, menuResult.DifficultyID)
		if findErr != nil {
			// Menu only lists configured difficulties
			continue
		}

		backToMenu, runErr := tui.RunGame(pairsCfg, diff, store, runtime)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			break
		}
		if !backToMenu {
			break
		}
	}
}
