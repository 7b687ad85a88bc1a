package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/sim"
)

var (
	flagSimGames      int
	flagSimWorkers    int
	flagSimMoves      int
	flagSimDifficulty string
	flagSimStrategy   string
	flagSimQuiet      bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Autoplay games headlessly and print statistics",
	Long: `Play many games without a terminal UI and summarize the results.
Game i is played with seed --seed+i, so runs are reproducible.

Strategies:
  greedy  - Commit where the piece covers the most tiles
  random  - Commit at a random position

Examples:
  wezzle sim
  wezzle sim --games 1000 --workers 8
  wezzle sim --difficulty hard --strategy random --moves 500 --seed 1`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimGames, "games", 100, "Number of games")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Parallel games")
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 200, "Move limit per game")
	simCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "easy", "Difficulty preset: easy, hard")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", "greedy", "Autoplayer strategy: greedy, random")
	simCmd.Flags().BoolVar(&flagSimQuiet, "quiet", false, "Hide the progress bar")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger("wezzle-sim", false)
	defer closeLog()

	preset, err := config.ParsePreset(flagSimDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	strategy, err := sim.ParseStrategy(flagSimStrategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bar := pb.StartNew(flagSimGames)
	if flagSimQuiet {
		bar.SetWriter(io.Discard)
	}
	rep, err := sim.Run(ctx, sim.Options{
		Config:   loadConfig(),
		Preset:   preset,
		Strategy: strategy,
		Games:    flagSimGames,
		Workers:  flagSimWorkers,
		Seed:     seed,
		MaxMoves: flagSimMoves,
		StepMs:   1000 / max(flagFPS, 1),
		Logger:   logger,
	}, func() { bar.Increment() })
	bar.Finish()
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	played := len(rep.Results)
	fmt.Println()
	fmt.Printf("Games      %d of %d (%s, %s, seed %d)\n", played, flagSimGames, preset, strategy, seed)
	fmt.Printf("Game overs %d\n", rep.GameOvers)
	if rep.Failed > 0 {
		fmt.Printf("Failed     %d\n", rep.Failed)
	}
	fmt.Printf("Score      mean %.1f  sd %.1f  median %.0f  best %d\n",
		rep.ScoreMean, rep.ScoreStdDev, rep.ScoreMedian, rep.BestScore)
	fmt.Printf("Level      mean %.2f\n", rep.LevelMean)
	fmt.Printf("Max chain  mean %.2f\n", rep.MaxChainMean)
	fmt.Printf("Elapsed    %s\n", rep.Elapsed.Round(time.Millisecond))
}
