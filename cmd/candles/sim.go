package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/candle-rush/internal/core"
	"github.com/vovakirdan/candle-rush/internal/games/candles"
	"github.com/vovakirdan/candle-rush/internal/storage"
)

var (
	flagAccuracy float64
	flagRealtime bool
	flagSave     bool
	flagVerbose  bool
)

// maxSimFrames bounds a simulated round; gifts can only add so much time.
const maxSimFrames = 10 * 60 * 60

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless round with a scripted player",
	Long: `Play one round without a screen. A scripted player judges every
object once: with probability --accuracy it does the right thing.

By default the round runs on a simulated clock and finishes at once;
--realtime plays it out on the wall clock.

Examples:
  candles sim
  candles sim --accuracy 0.95 --seed 42
  candles sim --realtime --verbose
  candles sim --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagAccuracy, "accuracy", 0.8, "Probability the scripted player makes the right call")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Run on the wall clock instead of a simulated one")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Record the round in the scores database")
	simCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log every session event")
}

func runSim(cmd *cobra.Command, _ []string) error {
	game, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "candles-sim",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tally := candles.NewTally()
	observers := []candles.Observer{tally}
	if flagVerbose {
		observers = append(observers, candles.NewLogObserver(logger))
	}

	opts := []candles.Option{
		candles.WithSeed(seed),
		candles.WithObserver(candles.Observers(observers...)),
		candles.WithLogger(logger),
	}

	var store *storage.Store
	if flagSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
		opts = append(opts, candles.WithBestStore(store))
	}

	clock := core.NewManualClock(0)
	if !flagRealtime {
		opts = append(opts, candles.WithClock(clock))
	}

	s, err := candles.NewSession(game, opts...)
	if err != nil {
		return err
	}

	bot := candles.NewBot(rand.New(rand.NewSource(seed+1)), flagAccuracy)
	step := time.Second / time.Duration(max(flagFPS, 1))

	s.Start()
	if flagRealtime {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if err := candles.Run(ctx, s, step, bot); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	} else {
		frames := candles.RunSimulated(s, clock, step, maxSimFrames, bot)
		logger.Debug("simulation finished", "frames", frames)
	}

	sum, ok := s.Summary()
	if !ok {
		// Interrupted or out of frames: close the round at its current score.
		sum, _ = s.End()
	}

	if store != nil {
		if _, err := store.SaveSummary(sum); err != nil {
			logger.Warn("could not save round", "error", err)
		}
	}

	printSummary(sum, tally, seed)
	return nil
}

func printSummary(sum candles.Summary, t *candles.Tally, seed int64) {
	fmt.Printf("Run:      %s\n", sum.RunID)
	fmt.Printf("Seed:     %d\n", seed)
	fmt.Printf("Score:    %d\n", sum.FinalScore)
	fmt.Printf("Best:     %d\n", sum.BestScore)
	fmt.Printf("Voucher:  %s\n", sum.Voucher)
	fmt.Printf("Played:   %s\n", sum.PlayedAtISO())
	fmt.Println()
	fmt.Printf("  %-8s  %-8s  %s\n", "Kind", "Spawned", "Tapped")
	for _, k := range []candles.Kind{candles.KindCandle, candles.KindBomb, candles.KindGift} {
		fmt.Printf("  %-8s  %-8d  %d\n", k, t.Spawned[k], t.Resolved[k])
	}
	fmt.Println()
	fmt.Printf("Missed: %d   Cleared: %d   Bonus: +%ds\n", t.Expired, t.Removed, t.Bonus)
}
