package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wezzle/internal/audio"
	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/core"
	"github.com/vovakirdan/wezzle/internal/engine"
	"github.com/vovakirdan/wezzle/internal/games/wezzle"
	"github.com/vovakirdan/wezzle/internal/platform/tui"
	"github.com/vovakirdan/wezzle/internal/registry"
	"github.com/vovakirdan/wezzle/internal/storage"
)

var (
	flagDifficulty string
	flagLevel      int
	flagResume     int64
	flagSound      bool
	flagShotDir    string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing. Without a mode, --difficulty picks one.

Controls:
  Arrows/WASD/HJKL  - Move the piece
  Z / X             - Rotate left / right
  Space/Enter       - Clear the tiles under the piece
  P                 - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Save the game
  F2                - Screenshot
  ?                 - Toggle help
  Q/Ctrl+C          - Quit

Difficulty options:
  easy  - Slower drops and a generous timer
  hard  - Faster refactors, bigger drops, less time

Examples:
  wezzle play
  wezzle play wezzle_hard
  wezzle play --difficulty hard --level 5
  wezzle play --resume 12
  wezzle play --sound --config ./my-wezzle.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "easy", "Difficulty preset when no mode is given: easy, hard")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at")
	playCmd.Flags().Int64Var(&flagResume, "resume", 0, "Resume the saved game with this ID")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().StringVar(&flagShotDir, "screenshots", "", "Screenshot directory (default: ~/.wezzle/screenshots)")
}

func runPlay(_ *cobra.Command, args []string) {
	logger, closeLog := newLogger("wezzle", true)
	defer closeLog()

	gameCfg := loadConfig()
	store := openStore(logger)
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	listener, closeAudio := openAudio(gameCfg.Sound, logger)
	defer closeAudio()
	deps := registry.Deps{Config: gameCfg, Listener: listener, Logger: logger}

	game, err := createGame(args, store, deps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}

	if err := tui.Run(game, runtimeConfig(), tui.Options{
		Store:         store,
		Logger:        logger,
		ScreenshotDir: flagShotDir,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}

// createGame resolves the mode from the arguments and flags, or the saved
// game when --resume is set.
func createGame(args []string, store *storage.Store, deps registry.Deps) (registry.Game, error) {
	if flagResume != 0 {
		return tui.LoadGame(store, flagResume, deps)
	}

	var gameID string
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return nil, fmt.Errorf("unknown mode %q, run 'wezzle list' to see available modes", gameID)
		}
	} else {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return nil, err
		}
		gameID = wezzle.ModeFor(preset)
	}

	game, err := registry.Create(gameID, deps)
	if err != nil {
		return nil, err
	}
	if g, ok := game.(*wezzle.Game); ok && flagLevel > 1 {
		g.SetStartLevel(flagLevel)
	}
	return game, nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openAudio starts the sound dispatcher when --sound or the config asks
// for it. Without a working audio device the game runs silently.
func openAudio(cfg config.SoundConfig, logger *log.Logger) (engine.Listener, func()) {
	if !flagSound && !cfg.Enabled {
		return nil, func() {}
	}
	d, err := audio.Open(cfg, logger)
	if err != nil {
		logger.Warn("sound disabled", "error", err)
		return nil, func() {}
	}
	return d, d.Close
}
