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

	for _, e := range []struct {
		score, lines, level int
	}{
		{100, 4, 1},
		{50, 2, 1},
		{200, 11, 2},
	} {
		if _, err := store.SaveScore("tetris", e.score, e.lines, e.level); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("tetris_ai", 5000, 60, 7); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Sorted descending by score, with lines and level carried along.
	if scores[0].Score != 200 || scores[0].Lines != 11 || scores[0].Level != 2 {
		t.Errorf("Top entry = %+v, want 200/11/2", scores[0])
	}
	if scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Order wrong: %d, %d", scores[1].Score, scores[2].Score)
	}

	aiScores, err := store.TopScores("tetris_ai", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(aiScores) != 1 {
		t.Errorf("Expected 1 autoplay score, got %d", len(aiScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("tetris", (i+1)*100, i, 1)
	}

	scores, err := store.TopScores("tetris", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty variant, got %d", high)
	}

	store.SaveScore("tetris", 100, 3, 1)
	store.SaveScore("tetris", 300, 14, 2)
	store.SaveScore("tetris", 200, 9, 1)

	high, err = store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tetris", 100, 2, 1)
	store.SaveScore("tetris", 200, 6, 1)
	store.SaveScore("tetris_ai", 300, 12, 2)

	if err := store.ClearScores("tetris"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("tetris", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	aiScores, _ := store.TopScores("tetris_ai", 10)
	if len(aiScores) != 1 {
		t.Errorf("Clearing tetris should not touch tetris_ai")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tetris", 100, 4, 1)
	store.SaveScore("tetris", 300, 12, 2)

	stats, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}

	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TotalLines != 16 {
		t.Errorf("TotalLines = %d, want 16", stats.TotalLines)
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("tetris", 100, 4, 1)
	store.SaveScore("tetris_ai", 900, 30, 4)

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 variants, got %d", len(all))
	}
	if all["tetris"].HighScore != 100 || all["tetris_ai"].HighScore != 900 {
		t.Errorf("Wrong per-variant stats: %+v", all)
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
