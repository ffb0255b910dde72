package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/match"
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

var vsHard = TallyKey{
	Mode:            "ai",
	Difficulty:      "hard",
	Player1Category: "animals",
	Player2Category: "food",
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

func TestStoreAddWinAccumulates(t *testing.T) {
	store := openTestStore(t)

	for _, seat := range []blink.Seat{blink.Seat1, blink.Seat2, blink.Seat1} {
		if err := store.AddWin(vsHard, seat); err != nil {
			t.Fatalf("AddWin() failed: %v", err)
		}
	}

	entry, err := store.Tally(vsHard)
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if entry.Player1Wins != 2 || entry.Player2Wins != 1 {
		t.Errorf("Tally() = %d-%d, expected 2-1", entry.Player1Wins, entry.Player2Wins)
	}
	if entry.Total() != 3 {
		t.Errorf("Total() = %d, expected 3", entry.Total())
	}
}

func TestStoreTallyMissingKey(t *testing.T) {
	store := openTestStore(t)

	entry, err := store.Tally(vsHard)
	if err != nil {
		t.Fatalf("Tally() failed: %v", err)
	}
	if entry.Total() != 0 {
		t.Errorf("Expected empty tally, got %+v", entry)
	}
}

func TestStoreAddWinRejectsNoSeat(t *testing.T) {
	store := openTestStore(t)

	if err := store.AddWin(vsHard, blink.NoSeat); err == nil {
		t.Error("AddWin(NoSeat) should fail")
	}
}

func TestStoreRecordWinKeepsOnlyCounters(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		err := store.RecordWin(match.WinRecord{
			MatchID:         match.NewMatchID(),
			Mode:            blink.ModeTwoPlayer,
			Player1Category: "sports",
			Player2Category: "space",
			Winner:          blink.Seat2,
		})
		if err != nil {
			t.Fatalf("RecordWin() failed: %v", err)
		}
	}

	entries, err := store.Tallies()
	if err != nil {
		t.Fatalf("Tallies() failed: %v", err)
	}
	// Three distinct matches collapse into one row.
	if len(entries) != 1 {
		t.Fatalf("Expected 1 tally row, got %d", len(entries))
	}
	if entries[0].Mode != "pvp" || entries[0].Player2Wins != 3 {
		t.Errorf("Unexpected tally: %+v", entries[0])
	}
}

func TestStoreTalliesOrderedByTotal(t *testing.T) {
	store := openTestStore(t)

	quiet := TallyKey{Mode: "pvp", Player1Category: "food", Player2Category: "animals"}
	store.AddWin(quiet, blink.Seat1)
	for i := 0; i < 3; i++ {
		store.AddWin(vsHard, blink.Seat2)
	}

	entries, err := store.Tallies()
	if err != nil {
		t.Fatalf("Tallies() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(entries))
	}
	if entries[0].TallyKey != vsHard {
		t.Errorf("Expected busiest pairing first, got %+v", entries[0].TallyKey)
	}
}

func TestStoreTotalsByMode(t *testing.T) {
	store := openTestStore(t)

	store.AddWin(vsHard, blink.Seat1)
	store.AddWin(TallyKey{Mode: "ai", Difficulty: "easy", Player1Category: "food", Player2Category: "sports"}, blink.Seat1)
	store.AddWin(TallyKey{Mode: "pvp", Player1Category: "food", Player2Category: "sports"}, blink.Seat2)

	totals, err := store.TotalsByMode()
	if err != nil {
		t.Fatalf("TotalsByMode() failed: %v", err)
	}
	if totals["ai"].Player1Wins != 2 || totals["ai"].Player2Wins != 0 {
		t.Errorf("ai totals = %+v", totals["ai"])
	}
	if totals["pvp"].Player2Wins != 1 {
		t.Errorf("pvp totals = %+v", totals["pvp"])
	}
}

func TestStoreClearTallies(t *testing.T) {
	store := openTestStore(t)

	store.AddWin(vsHard, blink.Seat1)
	if err := store.ClearTallies(); err != nil {
		t.Fatalf("ClearTallies() failed: %v", err)
	}

	entries, _ := store.Tallies()
	if len(entries) != 0 {
		t.Errorf("Expected no tallies after clear, got %d", len(entries))
	}
}

func TestStoreNestedPath(t *testing.T) {
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
