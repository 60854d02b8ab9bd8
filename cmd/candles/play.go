package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/candle-rush/internal/core"
	"github.com/vovakirdan/candle-rush/internal/platform/tui"
	"github.com/vovakirdan/candle-rush/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start the game in this terminal.

Controls:
  Mouse click  - Light a candle, catch a gift (don't click bombs!)
  Enter/Space  - Start
  P/Esc        - Pause
  R            - Play again
  Q            - Abandon the round (on the title screen: exit)
  Ctrl+C       - Exit

Difficulty options:
  easy   - Calm start, ramps up to full speed
  normal - Starts at 30% of the ramp
  hard   - Starts at 70% of the ramp
  fixed  - No ramp, stays at the config's initial level

Examples:
  candles play
  candles play --difficulty easy
  candles play --config ./my-candles.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	game, err := loadGameConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(tui.Options{
		Game: game,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Store: store,
	})
}
