package sim

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/engine"
)

func TestPlayIsDeterministic(t *testing.T) {
	cfg := config.DefaultWezzleConfig()
	for _, s := range []Strategy{StrategyRandom, StrategyGreedy} {
		a := Play(cfg, config.DifficultyEasy, s, 7, 20, 0)
		b := Play(cfg, config.DifficultyEasy, s, 7, 20, 0)
		if a.Err != nil {
			t.Fatalf("%s: Play: %v", s, a.Err)
		}
		if a.Stats != b.Stats {
			t.Errorf("%s: same seed gave %+v and %+v", s, a.Stats, b.Stats)
		}
		if a.Stats.Moves == 0 {
			t.Errorf("%s: no moves were played", s)
		}
		if a.Stats.Moves > 20 {
			t.Errorf("%s: moves = %d, over the cap", s, a.Stats.Moves)
		}
	}
}

func TestRunAggregates(t *testing.T) {
	var progress atomic.Int64
	rep, err := Run(context.Background(), Options{
		Config:   config.DefaultWezzleConfig(),
		Preset:   config.DifficultyEasy,
		Games:    6,
		Workers:  3,
		Seed:     100,
		MaxMoves: 10,
	}, func() { progress.Add(1) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Results) != 6 {
		t.Fatalf("results = %d, want 6", len(rep.Results))
	}
	if progress.Load() != 6 {
		t.Errorf("progress = %d, want 6", progress.Load())
	}
	for i, r := range rep.Results {
		if r.Seed != 100+int64(i) {
			t.Errorf("result %d has seed %d", i, r.Seed)
		}
	}
	if rep.ScoreMean > float64(rep.BestScore) {
		t.Errorf("mean %.1f above best %d", rep.ScoreMean, rep.BestScore)
	}

	// Results do not depend on how games were spread over workers.
	again := Play(config.DefaultWezzleConfig(), config.DifficultyEasy, StrategyGreedy, 103, 10, 0)
	if again.Stats != rep.Results[3].Stats {
		t.Errorf("seed 103 = %+v, single run = %+v", rep.Results[3].Stats, again.Stats)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := Run(ctx, Options{Config: config.DefaultWezzleConfig(), Games: 50, Workers: 2, MaxMoves: 5}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(rep.Results) == 50 {
		t.Error("cancelled run played every game")
	}
}

func TestRunRejectsBadOptions(t *testing.T) {
	if _, err := Run(context.Background(), Options{Config: config.DefaultWezzleConfig()}, nil); err == nil {
		t.Error("zero games accepted")
	}
	cfg := config.DefaultWezzleConfig()
	cfg.Board.Columns = 1
	if _, err := Run(context.Background(), Options{Config: cfg, Games: 1}, nil); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestSummarize(t *testing.T) {
	rep := summarize([]Result{
		{Stats: engine.Stats{Score: 10, Level: 1, MaxChain: 1}},
		{Stats: engine.Stats{Score: 30, Level: 3, MaxChain: 3}, GameOver: true},
		{Stats: engine.Stats{Score: 20, Level: 2, MaxChain: 2}},
		{Err: ErrStuck},
	})
	if rep.Failed != 1 || rep.GameOvers != 1 {
		t.Errorf("failed %d, game overs %d", rep.Failed, rep.GameOvers)
	}
	if rep.BestScore != 30 || rep.ScoreMean != 20 || rep.ScoreMedian != 20 {
		t.Errorf("best %d mean %v median %v", rep.BestScore, rep.ScoreMean, rep.ScoreMedian)
	}
	if rep.LevelMean != 2 || rep.MaxChainMean != 2 {
		t.Errorf("level mean %v chain mean %v", rep.LevelMean, rep.MaxChainMean)
	}
	if rep.ScoreStdDev != 10 {
		t.Errorf("stddev = %v, want 10", rep.ScoreStdDev)
	}
}

func TestParseStrategy(t *testing.T) {
	if s, err := ParseStrategy("greedy"); err != nil || s != StrategyGreedy {
		t.Errorf("ParseStrategy(greedy) = %q, %v", s, err)
	}
	if _, err := ParseStrategy("clever"); err == nil {
		t.Error("unknown strategy accepted")
	}
}

func TestSettleWaitsForMove(t *testing.T) {
	eng, err := engine.New(engine.Options{Config: config.DefaultWezzleConfig(), Seed: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := Settle(eng, 0); err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if !eng.AwaitingMove() {
		t.Error("engine not waiting for a move after Settle")
	}
}
