package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wezzle/internal/games/wezzle"
	"github.com/vovakirdan/wezzle/internal/platform/tui"
	"github.com/vovakirdan/wezzle/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start wezzle with an interactive menu",
	Long: `Start wezzle in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Tab          - Scoreboard
  L            - Saved games
  Q            - Quit

Picking a mode asks for the start level.

Examples:
  wezzle menu
  wezzle menu --fps 30
  wezzle menu --db ./scores.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runMenu(_ *cobra.Command, _ []string) {
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

	cfg := runtimeConfig()
	opts := tui.Options{Store: store, Logger: logger}

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		var game registry.Game
		if menuResult.WantsSnapshots {
			res, snapErr := tui.RunSnapshots(store, cfg.ScreenW, cfg.ScreenH)
			if snapErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", snapErr)
				continue
			}
			if res.ID == 0 {
				if res.GoBack {
					continue
				}
				return
			}
			game, err = tui.LoadGame(store, res.ID, deps)
		} else {
			if menuResult.GameID == "" {
				return
			}
			game, err = registry.Create(menuResult.GameID, deps)
		}
		if err != nil {
			logger.Error("cannot start game", "error", err)
			continue
		}

		if g, ok := game.(*wezzle.Game); ok && !menuResult.WantsSnapshots {
			levels := tui.Levels(g.Config(), g.Preset(), tui.SelectableLevels)
			level, selErr := tui.RunLevelSelector(cfg, g.Title(), levels)
			if selErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
				continue
			}
			if level == 0 {
				continue
			}
			g.SetStartLevel(level)
		}

		cfg.Seed = time.Now().UnixNano()
		if flagSeed != 0 {
			cfg.Seed = flagSeed
		}
		if err := tui.Run(game, cfg, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
