// Package storage provides SQLite-based persistence for simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// Run is one recorded headless simulation.
type Run struct {
	ID        int64
	SceneID   string
	Steps     uint64
	Contacts  int
	Elapsed   time.Duration // Simulated time
	Wall      time.Duration // Wall time fed to the world
	Hash      uint64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scene_id TEXT NOT NULL,
			steps INTEGER NOT NULL,
			contacts INTEGER NOT NULL DEFAULT 0,
			elapsed_ns INTEGER NOT NULL DEFAULT 0,
			wall_ns INTEGER NOT NULL DEFAULT 0,
			hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scene_id ON runs(scene_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.addColumn("runs", "wall_ns", "INTEGER NOT NULL DEFAULT 0")
}

// addColumn adds a column to a table created by an older schema.
func (s *Store) addColumn(table, column, decl string) error {
	rows, err := s.db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (scene_id, steps, contacts, elapsed_ns, wall_ns, hash) VALUES (?, ?, ?, ?, ?, ?)",
		r.SceneID, int64(r.Steps), r.Contacts, int64(r.Elapsed), int64(r.Wall), formatHash(r.Hash), //#nosec G115 -- step counts fit in int64
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the newest runs, newest first. An empty sceneID
// matches every scene.
func (s *Store) RecentRuns(sceneID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, scene_id, steps, contacts, elapsed_ns, wall_ns, hash, created_at
		 FROM runs
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// LatestRun returns the newest run of the scene, or nil if it was never
// recorded.
func (s *Store) LatestRun(sceneID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, scene_id, steps, contacts, elapsed_ns, wall_ns, hash, created_at
		 FROM runs
		 WHERE scene_id = ?
		 ORDER BY id DESC
		 LIMIT 1`,
		sceneID,
	)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RunCount returns the number of recorded runs of the scene.
func (s *Store) RunCount(sceneID string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE scene_id = ?", sceneID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return count, nil
}

// ClearRuns deletes all runs of the scene.
func (s *Store) ClearRuns(sceneID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scene_id = ?", sceneID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r         Run
		steps     int64
		elapsed   int64
		wall      int64
		hash      string
		createdAt any
	)
	if err := sc.Scan(&r.ID, &r.SceneID, &steps, &r.Contacts, &elapsed, &wall, &hash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	r.Steps = uint64(steps) //#nosec G115 -- stored from a uint64
	r.Elapsed = time.Duration(elapsed)
	r.Wall = time.Duration(wall)

	h, err := strconv.ParseUint(hash, 16, 64)
	if err != nil {
		return r, fmt.Errorf("storage: bad hash %q: %w", hash, err)
	}
	r.Hash = h

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}

func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}
