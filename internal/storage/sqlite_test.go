package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndLatest(t *testing.T) {
	store := openTestStore(t)

	latest, err := store.LatestRun("billiards")
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if latest != nil {
		t.Errorf("LatestRun() = %+v, expected nil on an empty store", latest)
	}

	first := Run{SceneID: "billiards", Steps: 120, Contacts: 7, Elapsed: 2 * time.Second, Hash: 0xdeadbeef}
	second := Run{SceneID: "billiards", Steps: 300, Contacts: 9, Elapsed: 5 * time.Second, Wall: 10 * time.Second, Hash: 1<<63 + 5}
	for _, r := range []Run{first, second} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(Run{SceneID: "resting", Steps: 180, Hash: 1}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	latest, err = store.LatestRun("billiards")
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if latest == nil {
		t.Fatal("LatestRun() = nil")
	}

	if latest.Steps != second.Steps {
		t.Errorf("Steps = %d, expected %d", latest.Steps, second.Steps)
	}
	if latest.Contacts != second.Contacts {
		t.Errorf("Contacts = %d, expected %d", latest.Contacts, second.Contacts)
	}
	if latest.Elapsed != second.Elapsed {
		t.Errorf("Elapsed = %v, expected %v", latest.Elapsed, second.Elapsed)
	}
	if latest.Wall != second.Wall {
		t.Errorf("Wall = %v, expected %v", latest.Wall, second.Wall)
	}
	if latest.Hash != second.Hash {
		t.Errorf("Hash = %x, expected %x", latest.Hash, second.Hash)
	}
	if latest.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStoreMigratesOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	_, err = db.Exec(`
		CREATE TABLE runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			steps INTEGER NOT NULL,
			contacts INTEGER NOT NULL DEFAULT 0,
			elapsed_ns INTEGER NOT NULL DEFAULT 0,
			hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO runs (scene_id, steps, elapsed_ns, hash) VALUES ('resting', 60, 1000000000, '00000000000000ff');
	`)
	db.Close()
	if err != nil {
		t.Fatalf("creating old schema failed: %v", err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	old, err := store.LatestRun("resting")
	if err != nil || old == nil {
		t.Fatalf("LatestRun() = %v, %v", old, err)
	}
	if old.Wall != 0 || old.Elapsed != time.Second || old.Hash != 0xff {
		t.Errorf("LatestRun() = %+v, expected the old row with Wall 0", old)
	}

	if _, err := store.SaveRun(Run{SceneID: "resting", Steps: 61, Wall: 3 * time.Second}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	latest, err := store.LatestRun("resting")
	if err != nil || latest == nil {
		t.Fatalf("LatestRun() = %v, %v", latest, err)
	}
	if latest.Wall != 3*time.Second {
		t.Errorf("Wall = %v, expected %v", latest.Wall, 3*time.Second)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveRun(Run{SceneID: "swarm", Steps: uint64(i)}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(Run{SceneID: "resting", Steps: 99}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	tests := []struct {
		name     string
		sceneID  string
		limit    int
		expected []uint64
	}{
		{"limited", "swarm", 3, []uint64{4, 3, 2}},
		{"other scene", "resting", 10, []uint64{99}},
		{"all scenes", "", 2, []uint64{99, 4}},
		{"unknown", "nope", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs, err := store.RecentRuns(tt.sceneID, tt.limit)
			if err != nil {
				t.Fatalf("RecentRuns() failed: %v", err)
			}
			if len(runs) != len(tt.expected) {
				t.Fatalf("RecentRuns() returned %d runs, expected %d", len(runs), len(tt.expected))
			}
			for i, r := range runs {
				if r.Steps != tt.expected[i] {
					t.Errorf("runs[%d].Steps = %d, expected %d", i, r.Steps, tt.expected[i])
				}
			}
		})
	}
}

func TestStoreDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	for range 15 {
		if _, err := store.SaveRun(Run{SceneID: "swarm"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns("swarm", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 10 {
		t.Errorf("RecentRuns() returned %d runs, expected 10", len(runs))
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{SceneID: "swarm"})
	store.SaveRun(Run{SceneID: "swarm"})
	store.SaveRun(Run{SceneID: "resting"})

	if err := store.ClearRuns("swarm"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	count, err := store.RunCount("swarm")
	if err != nil {
		t.Fatalf("RunCount() failed: %v", err)
	}
	if count != 0 {
		t.Errorf("RunCount(swarm) = %d, expected 0", count)
	}

	count, err = store.RunCount("resting")
	if err != nil {
		t.Fatalf("RunCount() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("RunCount(resting) = %d, expected 1", count)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arcadephys-test/runs.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arcadephys-test", "runs.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}
