package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagPrintDefaults bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the game config and assets",
	Long: `Load the game config and every asset the way a session would,
and report what is wrong with them.

Examples:
  flappy check
  flappy check --config ./my-flappy.yaml --assets ./art
  flappy check --print-defaults > flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagPrintDefaults, "print-defaults", false, "Print the built-in config YAML and exit")
}

var errCheckFailed = errors.New("check failed")

func runCheck(_ *cobra.Command, _ []string) error {
	if flagPrintDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return nil
	}

	header := color.New(color.FgCyan, color.Bold)
	success := color.New(color.FgGreen)
	errorColor := color.New(color.FgRed)
	failed := false

	header.Println("Config")
	_, source, err := config.Load(viper.GetString("config"))
	if err != nil {
		errorColor.Printf("  ✗ %s: %v\n", source, err)
		failed = true
	} else {
		success.Printf("  ✓ %s\n", source)
	}

	header.Println("Assets")
	fsys := assetFS()
	if fsys == nil {
		fsys = assets.EmbeddedFS()
	}
	srv := assets.NewServer(fsys)
	bundle := assets.LoadBundle(srv)
	srv.Wait()
	for _, h := range bundle.Handles() {
		if srv.State(h) == assets.Failed {
			errorColor.Printf("  ✗ %s: %v\n", srv.Path(h), srv.Err(h))
			failed = true
			continue
		}
		success.Printf("  ✓ %s\n", srv.Path(h))
	}

	if failed {
		return errCheckFailed
	}
	fmt.Println()
	success.Println("All good.")
	return nil
}
