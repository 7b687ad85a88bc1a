// Package sim plays wezzle games headlessly with a simple autoplayer and
// aggregates the results over many seeds.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/stat"

	"github.com/vovakirdan/wezzle/internal/board"
	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/engine"
)

// ErrStuck is returned when a game never comes back to the player.
var ErrStuck = errors.New("sim: game stuck")

// Strategy picks where the autoplayer commits.
type Strategy string

const (
	StrategyRandom Strategy = "random"
	StrategyGreedy Strategy = "greedy" // most tiles under the piece
)

// ParseStrategy resolves a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case StrategyRandom, StrategyGreedy:
		return Strategy(name), nil
	}
	return "", fmt.Errorf("sim: unknown strategy %q", name)
}

// Options configures a batch of games.
type Options struct {
	Config   config.WezzleConfig
	Preset   config.DifficultyPreset
	Strategy Strategy
	Games    int
	Workers  int
	Seed     int64 // game i plays Seed+i
	MaxMoves int   // per game
	StepMs   int   // simulated frame length
	Logger   *log.Logger
}

const (
	defaultMaxMoves = 200
	defaultStepMs   = 16
	maxIdleSteps    = 100000
)

// Result is the outcome of one game.
type Result struct {
	Seed     int64
	Stats    engine.Stats
	GameOver bool
	Err      error
}

// Report aggregates a batch.
type Report struct {
	Results      []Result
	Failed       int
	GameOvers    int
	BestScore    int
	ScoreMean    float64
	ScoreStdDev  float64
	ScoreMedian  float64
	LevelMean    float64
	MaxChainMean float64
	Elapsed      time.Duration
}

// Play runs one game until it is over or maxMoves pieces were committed.
func Play(cfg config.WezzleConfig, preset config.DifficultyPreset, strategy Strategy, seed int64, maxMoves, stepMs int) Result {
	res := Result{Seed: seed}
	if maxMoves <= 0 {
		maxMoves = defaultMaxMoves
	}
	if stepMs <= 0 {
		stepMs = defaultStepMs
	}

	eng, err := engine.New(engine.Options{Config: cfg, Preset: preset, Seed: seed})
	if err != nil {
		res.Err = err
		return res
	}
	rng := rand.New(rand.NewSource(seed ^ 0x5eed))

	for moves := 0; moves < maxMoves; moves++ {
		if err := Settle(eng, stepMs); err != nil {
			res.Err = err
			break
		}
		if eng.GameOver() {
			break
		}

		column, row := pick(eng, strategy, rng)
		c, r := eng.Pieces().Cursor()
		eng.MoveCursor(column-c, row-r)
		if err := eng.Commit(); err != nil {
			res.Err = err
			break
		}
	}

	res.Stats = eng.Stats()
	res.GameOver = eng.GameOver()
	return res
}

// Settle steps eng until it waits for a move or the game ends.
func Settle(eng *engine.Engine, stepMs int) error {
	if stepMs <= 0 {
		stepMs = defaultStepMs
	}
	for i := 0; !eng.AwaitingMove(); i++ {
		if eng.GameOver() {
			return nil
		}
		if i >= maxIdleSteps {
			return fmt.Errorf("%w after %d steps", ErrStuck, i)
		}
		if err := eng.Step(stepMs); err != nil {
			return err
		}
	}
	return nil
}

func pick(eng *engine.Engine, strategy Strategy, rng *rand.Rand) (column, row int) {
	b := eng.Board()
	if strategy != StrategyGreedy {
		return eng.Pieces().Clamp(rng.Intn(b.Columns()), rng.Intn(b.Rows()))
	}

	best, ties := -1, 0
	tiles := board.NewSet(b.Cells())
	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Columns(); c++ {
			tiles.Clear()
			cc, rr := eng.Pieces().Selection(c, r, tiles, nil)
			n := tiles.Len()
			switch {
			case n > best:
				best, ties = n, 1
				column, row = cc, rr
			case n == best:
				// Reservoir sampling keeps ties uniform.
				ties++
				if rng.Intn(ties) == 0 {
					column, row = cc, rr
				}
			}
		}
	}
	return column, row
}

// Run plays opts.Games games on opts.Workers goroutines and aggregates the
// results. progress, if not nil, is called once per finished game, never
// concurrently. Cancelling ctx stops handing out new games.
func Run(ctx context.Context, opts Options, progress func()) (Report, error) {
	if opts.Games < 1 {
		return Report{}, errors.New("sim: games must be > 0")
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyGreedy
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if err := opts.Config.Validate(); err != nil {
		return Report{}, err
	}

	start := time.Now()
	results := make([]Result, opts.Games)
	jobs := make(chan int, opts.Workers)

	var mu sync.Mutex
	wg := new(sync.WaitGroup)
	wg.Add(opts.Workers)
	for w := 0; w < opts.Workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = Play(opts.Config, opts.Preset, opts.Strategy, opts.Seed+int64(i), opts.MaxMoves, opts.StepMs)
				if results[i].Err != nil {
					opts.Logger.Warn("game failed", "seed", results[i].Seed, "error", results[i].Err)
				}
				if progress != nil {
					mu.Lock()
					progress()
					mu.Unlock()
				}
			}
		}()
	}

	played := opts.Games
feed:
	for i := 0; i < opts.Games; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			played = i
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	rep := summarize(results[:played])
	rep.Elapsed = time.Since(start)
	opts.Logger.Info("simulation finished",
		"games", played,
		"failed", rep.Failed,
		"mean", fmt.Sprintf("%.1f", rep.ScoreMean),
		"elapsed", rep.Elapsed.Round(time.Millisecond),
	)
	return rep, ctx.Err()
}

func summarize(results []Result) Report {
	rep := Report{Results: results}
	if len(results) == 0 {
		return rep
	}

	scores := make([]float64, 0, len(results))
	levels := make([]float64, 0, len(results))
	chains := make([]float64, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			rep.Failed++
			continue
		}
		if r.GameOver {
			rep.GameOvers++
		}
		rep.BestScore = max(rep.BestScore, r.Stats.Score)
		scores = append(scores, float64(r.Stats.Score))
		levels = append(levels, float64(r.Stats.Level))
		chains = append(chains, float64(r.Stats.MaxChain))
	}
	if len(scores) == 0 {
		return rep
	}

	rep.ScoreMean, rep.ScoreStdDev = stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		rep.ScoreStdDev = 0
	}
	slices.Sort(scores)
	rep.ScoreMedian = stat.Quantile(0.5, stat.Empirical, scores, nil)
	rep.LevelMean = stat.Mean(levels, nil)
	rep.MaxChainMean = stat.Mean(chains, nil)
	return rep
}
