package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candle-rush/internal/storage"
)

var flagReset bool

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Print or reset the best score",
	Long: `Print the best score kept in the scores database.

Examples:
  candles best
  candles best --reset`,
	Args: cobra.NoArgs,
	RunE: runBest,
}

func init() {
	bestCmd.Flags().BoolVar(&flagReset, "reset", false, "Forget the best score")
}

func runBest(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagReset {
		if err := store.ResetBestScore(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Best score reset.")
		return nil
	}

	best, err := store.LoadBestScore()
	if errors.Is(err, storage.ErrMalformedBest) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	} else if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Best: %d\n", best)
	return nil
}
