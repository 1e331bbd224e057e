// flappy is a terminal side-scroller: flap through the gaps, hit nothing.
//
// Usage:
//
//	flappy play              - Play in this terminal
//	flappy serve             - Start SSH server for remote play
//	flappy replays           - Browse and re-simulate saved attempts
//	flappy replay <id>       - Re-simulate one saved attempt
//	flappy check             - Validate config and assets
//
// Global flags (also FLAPPY_* environment variables):
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.flappy/replays.db)
//	--config <path>     - Custom game config YAML
//	--assets <dir>      - Load sprites and fonts from a directory
//	--log-level <level> - debug, info, warn, error
//	--log-file <path>   - Log destination (default: ~/.flappy/flappy.log)
package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - a side-scroller for your terminal",
	Long: `Flappy is a terminal side-scroller. Flap through the gaps between
the pipes; every gap passed scores a point, anything else ends the attempt.

Every attempt is recorded and can be re-simulated exactly.

Examples:
  flappy play
  flappy play --seed 42
  flappy serve --ssh :2222
  flappy replays
  flappy check --config ./my-flappy.yaml`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().Int("fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64("seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().String("db", "~/.flappy/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().String("config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().String("assets", "", "Directory with sprites/ and fonts/ (default: embedded)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "~/.flappy/flappy.log", "Log file path")

	// Bind flags to viper
	viper.BindPFlag("fps", rootCmd.PersistentFlags().Lookup("fps"))
	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("assets", rootCmd.PersistentFlags().Lookup("assets"))
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(checkCmd)
}

func initConfig() {
	viper.SetEnvPrefix("FLAPPY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger builds the process logger. An empty log-file or "-" logs to w.
// The returned closer releases the log file.
func newLogger(w io.Writer) (*log.Logger, func(), error) {
	closer := func() {}
	if path := viper.GetString("log-file"); path != "" && path != "-" {
		path = expandHome(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, closer, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, closer, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	level, err := log.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		closer()
		return nil, func() {}, fmt.Errorf("invalid log level %q: %w", viper.GetString("log-level"), err)
	}
	logger.SetLevel(level)
	return logger, closer, nil
}

// assetFS returns the --assets directory, or nil for the embedded tree.
func assetFS() fs.FS {
	dir := viper.GetString("assets")
	if dir == "" {
		return nil
	}
	return os.DirFS(expandHome(dir))
}
