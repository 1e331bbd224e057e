package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate one saved attempt",
	Long: `Re-simulate a saved attempt headlessly and print its outcome.

The attempt is rebuilt from its stored seed, tick rate, tuning and jump
ticks, so the score matches the one reached while playing.

Examples:
  flappy replay 12
  flappy replay 12 --log-level debug --log-file -`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func runReplay(_ *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid replay id %q", args[0])
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(viper.GetString("db"))
	if err != nil {
		return fmt.Errorf("could not open replay database: %w", err)
	}
	defer store.Close()

	rep, err := store.LoadReplay(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no replay with id %d", id)
	}
	if err != nil {
		return err
	}

	res, err := replay.Run(rep, logger)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Printf("Replay %d\n", rep.ID)
	fmt.Printf("  seed:      %d\n", rep.Seed)
	fmt.Printf("  tick rate: %d\n", rep.TickRate)
	fmt.Printf("  jumps:     %d\n", len(rep.Jumps))
	fmt.Printf("  recorded:  %s\n", rep.CreatedAt.Format("2006-01-02 15:04:05"))
	if res.Ended {
		color.New(color.FgGreen).Printf("  score %d after %d ticks\n", res.Score, res.Ticks)
	} else {
		color.New(color.FgYellow).Printf("  still alive after %d ticks (score %d)\n", res.Ticks, res.Score)
	}
	return nil
}
