package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{GameID: "wezzle", Score: 100, Level: 1, Moves: 12},
		{GameID: "wezzle", Score: 50, Level: 1, Moves: 4},
		{GameID: "wezzle", Score: 2200, Level: 2, Moves: 40, MaxChain: 3},
		{GameID: "wezzle_hard", Score: 500, Level: 1, Moves: 9},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("wezzle", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 2200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
	if scores[0].Level != 2 || scores[0].Moves != 40 || scores[0].MaxChain != 3 {
		t.Errorf("Game details not stored: %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	hard, err := store.TopScores("wezzle_hard", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(hard) != 1 {
		t.Errorf("Expected 1 hard score, got %d", len(hard))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{GameID: "test", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("wezzle")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore(ScoreEntry{GameID: "wezzle", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "wezzle", Score: 300})
	store.SaveScore(ScoreEntry{GameID: "wezzle", Score: 200})

	high, err = store.HighScore("wezzle")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{GameID: "wezzle", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "wezzle", Score: 200})
	store.SaveScore(ScoreEntry{GameID: "wezzle_hard", Score: 300})

	if err := store.ClearScores("wezzle"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	easy, _ := store.TopScores("wezzle", 10)
	if len(easy) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(easy))
	}
	hard, _ := store.TopScores("wezzle_hard", 10)
	if len(hard) != 1 {
		t.Errorf("Hard scores should not be affected by clearing easy")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore(ScoreEntry{GameID: "test", Score: i * 10})
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{GameID: "wezzle", Score: 1000, Level: 1, MaxChain: 2})
	store.SaveScore(ScoreEntry{GameID: "wezzle", Score: 3000, Level: 3, MaxChain: 4})
	store.SaveScore(ScoreEntry{GameID: "wezzle_hard", Score: 10, Level: 1})

	stats, err := store.GetGameStats("wezzle")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 3000 || stats.TotalScore != 4000 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 2000 {
		t.Errorf("AvgScore = %v, want 2000", stats.AvgScore)
	}
	if stats.BestLevel != 3 || stats.BestMaxChain != 4 {
		t.Errorf("best level %d, best chain %d", stats.BestLevel, stats.BestMaxChain)
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for unplayed game: %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["wezzle_hard"].HighScore != 10 {
		t.Errorf("unexpected stats map: %v", all)
	}
}
