// Package history keeps a sqlite ledger of builds: one row per run and the
// content hash of every page the run wrote. It lets a build report how many
// pages actually changed since the previous run.
package history

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB with the ledger helpers.
type DB struct {
	*sql.DB
	mu   sync.Mutex
	path string
}

// Page is one written file.
type Page struct {
	Path string
	Hash string
}

// Run is a recorded build.
type Run struct {
	ID        string
	StartedAt time.Time
	Services  int
	Areas     int
	Combos    int
	Pages     int
	Changed   int
}

// Counts are the per-kind page totals of a run.
type Counts struct {
	Services int
	Areas    int
	Combos   int
}

// Open creates or opens the ledger at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// OpenMemory creates an in-memory ledger for tests.
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Each new connection to :memory: is a fresh database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    seq INTEGER NOT NULL,
    started_at DATETIME NOT NULL,
    services INTEGER NOT NULL DEFAULT 0,
    areas INTEGER NOT NULL DEFAULT 0,
    combos INTEGER NOT NULL DEFAULT 0,
    pages INTEGER NOT NULL DEFAULT 0,
    changed INTEGER NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_runs_seq ON runs(seq);

CREATE TABLE IF NOT EXISTS pages (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    path TEXT NOT NULL,
    sha256 TEXT NOT NULL,
    PRIMARY KEY (run_id, path)
);
`

// Hash returns the hex sha256 of page content.
func Hash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// RecordRun stores a run with its pages and returns it. Changed counts pages
// that are new or whose hash differs from the most recent previous run.
func (d *DB) RecordRun(startedAt time.Time, counts Counts, pages []Page) (*Run, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	tx, err := d.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	prev, seq, err := previousHashes(tx)
	if err != nil {
		return nil, err
	}

	changed := 0
	for _, p := range pages {
		if h, ok := prev[p.Path]; !ok || h != p.Hash {
			changed++
		}
	}

	run := &Run{
		ID:        uuid.New().String(),
		StartedAt: startedAt.UTC(),
		Services:  counts.Services,
		Areas:     counts.Areas,
		Combos:    counts.Combos,
		Pages:     len(pages),
		Changed:   changed,
	}

	_, err = tx.Exec(
		`INSERT INTO runs (id, seq, started_at, services, areas, combos, pages, changed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, seq+1, run.StartedAt, run.Services, run.Areas, run.Combos, run.Pages, run.Changed,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO pages (run_id, path, sha256) VALUES (?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing page insert: %w", err)
	}
	defer stmt.Close()
	for _, p := range pages {
		if _, err := stmt.Exec(run.ID, p.Path, p.Hash); err != nil {
			return nil, fmt.Errorf("inserting page %s: %w", p.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing run: %w", err)
	}
	return run, nil
}

// previousHashes returns the page hashes of the latest run and its sequence
// number (0 when the ledger is empty).
func previousHashes(tx *sql.Tx) (map[string]string, int64, error) {
	var (
		id  string
		seq int64
	)
	err := tx.QueryRow(`SELECT id, seq FROM runs ORDER BY seq DESC LIMIT 1`).Scan(&id, &seq)
	if err == sql.ErrNoRows {
		return map[string]string{}, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("querying previous run: %w", err)
	}

	rows, err := tx.Query(`SELECT path, sha256 FROM pages WHERE run_id = ?`, id)
	if err != nil {
		return nil, 0, fmt.Errorf("querying previous pages: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var path, hash string
		if err := rows.Scan(&path, &hash); err != nil {
			return nil, 0, err
		}
		hashes[path] = hash
	}
	return hashes, seq, rows.Err()
}

// RecentRuns returns up to limit runs, newest first.
func (d *DB) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := d.Query(
		`SELECT id, started_at, services, areas, combos, pages, changed
		 FROM runs ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Services, &r.Areas, &r.Combos, &r.Pages, &r.Changed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Pages returns the pages recorded for a run, sorted by path.
func (d *DB) Pages(runID string) ([]Page, error) {
	rows, err := d.Query(`SELECT path, sha256 FROM pages WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.Path, &p.Hash); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
