package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagLaunchMenu bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a play session in this terminal.

Controls:
  Space/Up/W     - Flap (also starts an attempt)
  Left click     - Flap
  Ctrl+S         - Screenshot to ~/.flappy/screenshots
  ?              - Toggle key help
  Q/Ctrl+C       - Quit

An attempt ends on the first collision; the next one is ready immediately.

Examples:
  flappy play
  flappy play --seed 42 --fps 30
  flappy play --menu
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagLaunchMenu, "menu", false, "Show the title screen before building the world")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	gameCfg, source, err := config.Load(viper.GetString("config"))
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("menu") {
		gameCfg.Session.LaunchMenu = flagLaunchMenu
	}
	logger.Info("config loaded", "source", source)

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: viper.GetInt("fps"),
		Seed:     viper.GetInt64("seed"),
	}

	opts := tui.Options{
		Game:    gameCfg,
		Runtime: rt,
		Assets:  assetFS(),
		Logger:  logger,
	}

	// Continue without storage if the database is unavailable
	store, err := storage.Open(viper.GetString("db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		logger.Warn("replays disabled", "error", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
