// wezzle is a tile-matching puzzle game for the terminal.
//
// Usage:
//
//	wezzle list               - List game modes
//	wezzle play [mode]        - Play a mode (default: wezzle)
//	wezzle menu               - Pick modes, scores and saved games interactively
//	wezzle serve              - Start SSH server for remote play
//	wezzle scores <mode>      - Show high scores for a mode
//	wezzle snapshots          - List or delete saved games
//	wezzle board              - Print a freshly generated board
//	wezzle sim                - Autoplay many games and print statistics
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.wezzle/scores.db)
//	--config <path>     - Use a custom wezzle.yaml
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/storage"

	// Register game modes
	_ "github.com/vovakirdan/wezzle/internal/games/wezzle"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wezzle",
	Short: "Wezzle - a tile-matching puzzle in your terminal",
	Long: `Wezzle is a tile-matching puzzle. Place the piece over the board to
clear tiles, keep the board from filling up and reach the level target
before the timer runs out.

Available commands:
  list       - Show all game modes
  play       - Play a mode directly
  menu       - Interactive menu
  serve      - Start SSH server for remote play
  scores     - View high scores
  snapshots  - Manage saved games
  board      - Print a generated board
  sim        - Autoplay games headlessly

Examples:
  wezzle play
  wezzle play wezzle_hard --sound
  wezzle menu
  wezzle serve --ssh :2222
  wezzle sim --games 500 --workers 8`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.wezzle/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom wezzle.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the logger for a command. Full-screen commands pass
// quiet so that, without --log-file, nothing is written over the UI.
func newLogger(prefix string, quiet bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", openErr)
			out = io.Discard
			break
		}
		out = f
		closeFn = func() { f.Close() }
	case quiet:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn
}

// loadConfig reads the game configuration or exits.
func loadConfig() config.WezzleConfig {
	cfg, err := config.LoadWezzle(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openStore opens the scores database. Play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}
