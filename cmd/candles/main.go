// candles is a sixty-second falling-object arcade game for the terminal.
//
// Usage:
//
//	candles play             - Play a round in this terminal
//	candles serve            - Start SSH server for remote play
//	candles sim              - Run a headless round with a scripted player
//	candles scores           - Show the score history
//	candles best             - Print or reset the best score
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.candles/scores.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candle-rush/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "candles",
	Short: "Candle Rush - light the candles, dodge the bombs",
	Long: `Candle Rush is a sixty-second arcade round played in the terminal.

Click falling candles to light them, catch gifts for extra seconds and
leave the bombs alone.

Available commands:
  play     - Play a round in this terminal
  serve    - Start SSH server for remote play
  sim      - Run a headless round with a scripted player
  scores   - View the score history
  best     - Print or reset the best score

Examples:
  candles play
  candles play --difficulty hard
  candles serve --ssh :2222
  candles sim --accuracy 0.8 --seed 7`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.candles/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bestCmd)
}

// loadGameConfig reads the game config and applies the difficulty flag.
func loadGameConfig() (config.CandlesConfig, error) {
	cfg, err := config.LoadCandles(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}
