package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/candle-rush/internal/platform/tui"
	"github.com/vovakirdan/candle-rush/internal/storage"
)

var (
	flagPlain  bool
	flagRecent bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the score history",
	Long: `Browse the recorded rounds, best first.

Without --plain an interactive table is shown; tab switches between the
best and the most recent rounds.

Examples:
  candles scores
  candles scores --plain
  candles scores --plain --recent --limit 5
  candles scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a plain listing instead of the interactive table")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the most recent rounds (with --plain)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to list (with --plain)")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the score history (the best score is kept)")
}

func runScores(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Score history cleared.")
		return nil
	}

	if !flagPlain {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	var runs []storage.RunRecord
	if flagRecent {
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		return err
	}

	if flagRecent {
		fmt.Fprintln(out, "Recent Rounds - Candle Rush")
	} else {
		fmt.Fprintln(out, "High Scores - Candle Rush")
	}
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No rounds recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'candles play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-6s  %-26s  %s\n", "Rank", "Score", "Voucher", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-26s  %s\n", "----", "-----", "-------", "----")

	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-26s  %s\n", i+1, r.Score, r.Voucher, r.PlayedAt.Local().Format("2006-01-02 15:04"))
	}

	// Show the top recorded round
	fmt.Fprintln(out)
	if high, err := store.HighScore(); err == nil {
		fmt.Fprintf(out, "Top round: %d\n", high)
	}
	if stats, err := store.GetStats(); err == nil && stats.GamesCount > 0 {
		fmt.Fprintf(out, "Rounds: %d   Average: %.1f\n", stats.GamesCount, stats.AvgScore)
	}
	return nil
}
