package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse saved attempts",
	Long: `Open an interactive table of the most recent saved attempts.

Press enter on a row to re-simulate it headlessly and show its score,
or d to delete it.

Examples:
  flappy replays
  flappy replays --db ./replays.db`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

func runReplays(_ *cobra.Command, _ []string) error {
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

	status, err := tui.RunReplays(store, logger)
	if err != nil {
		return fmt.Errorf("error running replay browser: %w", err)
	}
	if status != "" {
		fmt.Println(status)
	}
	return nil
}
