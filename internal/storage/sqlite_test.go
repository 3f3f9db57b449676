package storage

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
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

func mustSave(t *testing.T, store *Store, gameID, player string, score int) {
	t.Helper()
	if _, err := store.SaveScore(ScoreEntry{GameID: gameID, Player: player, Score: score}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
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

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, "flappy", "ana", 42)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("flappy")
	if err != nil || high != 42 {
		t.Errorf("HighScore() after reopen = %d, %v; want 42", high, err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "flappy", "ana", 10)
	mustSave(t, store, "flappy", "", 5)
	mustSave(t, store, "flappy", "bo", 20)
	mustSave(t, store, "flappy_lenient", "ana", 50)

	scores, err := store.TopScores("flappy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []struct {
		player string
		score  int
	}{{"bo", 20}, {"ana", 10}, {DefaultPlayerName, 5}}
	for i, w := range want {
		if scores[i].Player != w.player || scores[i].Score != w.score {
			t.Errorf("scores[%d] = %s/%d, want %s/%d", i, scores[i].Player, scores[i].Score, w.player, w.score)
		}
		if _, err := uuid.Parse(scores[i].RunID); err != nil {
			t.Errorf("scores[%d] has invalid run id %q", i, scores[i].RunID)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d] has no timestamp", i)
		}
	}
}

func TestStoreSaveScoreValidation(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(ScoreEntry{Score: 1}); err == nil {
		t.Error("Expected error for empty game id")
	}
	if _, err := store.SaveScore(ScoreEntry{GameID: "flappy", RunID: "not-a-uuid"}); err == nil {
		t.Error("Expected error for malformed run id")
	}

	runID := uuid.NewString()
	if _, err := store.SaveScore(ScoreEntry{GameID: "flappy", RunID: runID, Score: 3, Frames: 900}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore(ScoreEntry{GameID: "flappy", RunID: runID, Score: 4}); err == nil {
		t.Error("Expected error when saving the same run twice")
	}

	scores, _ := store.TopScores("flappy", 10)
	if len(scores) != 1 || scores[0].RunID != runID || scores[0].Frames != 900 {
		t.Errorf("Unexpected stored rows: %+v", scores)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, "test", "p", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	scores, _ = store.TopScores("test", 0)
	if len(scores) != 5 {
		t.Errorf("Expected default limit to return all 5 scores, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, "flappy", "a", 100)
	mustSave(t, store, "flappy", "b", 300)
	mustSave(t, store, "flappy", "a", 200)

	high, err = store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStorePlayerBestAndRank(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "flappy", "ana", 12)
	mustSave(t, store, "flappy", "ana", 30)
	mustSave(t, store, "flappy", "bo", 25)
	mustSave(t, store, "flappy", "cy", 30)
	mustSave(t, store, "flappy", "dee", 7)
	mustSave(t, store, "flappy_lenient", "dee", 99)

	best, err := store.PlayerBest("flappy", "ana")
	if err != nil || best != 30 {
		t.Errorf("PlayerBest(ana) = %d, %v; want 30", best, err)
	}

	tests := []struct {
		player string
		want   int
	}{
		{"ana", 1},
		{"cy", 1},
		{"bo", 3},
		{"dee", 4},
		{"nobody", 0},
	}
	for _, tt := range tests {
		got, err := store.PlayerRank("flappy", tt.player)
		if err != nil {
			t.Fatalf("PlayerRank(%s) failed: %v", tt.player, err)
		}
		if got != tt.want {
			t.Errorf("PlayerRank(%s) = %d, want %d", tt.player, got, tt.want)
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "flappy", "a", 100)
	mustSave(t, store, "flappy", "a", 200)
	mustSave(t, store, "flappy_lenient", "a", 300)

	if err := store.ClearScores("flappy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("flappy", 10); len(scores) != 0 {
		t.Errorf("Expected 0 flappy scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("flappy_lenient", 10); len(scores) != 1 {
		t.Errorf("Lenient scores should not be affected by clearing flappy")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	mustSave(t, store, "flappy", "a", 10)
	mustSave(t, store, "flappy", "b", 20)
	mustSave(t, store, "flappy", "a", 30)
	mustSave(t, store, "flappy_lenient", "c", 5)

	stats, err = store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 || stats.HighScore != 30 || stats.TotalScore != 60 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("Expected average 20, got %v", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected last played time")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["flappy_lenient"].HighScore != 5 {
		t.Errorf("Unexpected per-game stats: %v", all)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			if _, err := store.SaveScore(ScoreEntry{GameID: "flappy", Score: score}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		// Concurrent writers may see SQLITE_BUSY; anything else is a bug.
		if !strings.Contains(err.Error(), "busy") && !strings.Contains(err.Error(), "locked") {
			t.Errorf("SaveScore() failed: %v", err)
		}
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
