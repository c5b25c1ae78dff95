// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists pipeline run history in SQLite with full-text
// search over note bodies.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/noteforge/pkg/types"
)

const (
	indexDir = "index"
	dbFile   = "noteforge.db"
)

// Store manages the run history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at dataDir/index/noteforge.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.DataDir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			video_id TEXT,
			title TEXT,
			notes_path TEXT,
			tex_path TEXT,
			pdf_path TEXT,
			created_at TEXT,
			notes TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_video_id ON runs(video_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='runs_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE runs_fts USING fts5(title, notes, content=runs, content_rowid=rowid)`,
			`CREATE TRIGGER runs_ai AFTER INSERT ON runs BEGIN
				INSERT INTO runs_fts(rowid, title, notes) VALUES (new.rowid, new.title, new.notes);
			END`,
			`CREATE TRIGGER runs_ad AFTER DELETE ON runs BEGIN
				INSERT INTO runs_fts(runs_fts, rowid, title, notes) VALUES('delete', old.rowid, old.title, old.notes);
			END`,
			`CREATE TRIGGER runs_au AFTER UPDATE ON runs BEGIN
				INSERT INTO runs_fts(runs_fts, rowid, title, notes) VALUES('delete', old.rowid, old.title, old.notes);
				INSERT INTO runs_fts(rowid, title, notes) VALUES (new.rowid, new.title, new.notes);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Record inserts or replaces one run.
func (s *Store) Record(ctx context.Context, run types.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run ID required")
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, video_id, title, notes_path, tex_path, pdf_path, created_at, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			video_id=excluded.video_id, title=excluded.title,
			notes_path=excluded.notes_path, tex_path=excluded.tex_path,
			pdf_path=excluded.pdf_path, created_at=excluded.created_at,
			notes=excluded.notes`,
		run.ID, run.VideoID, run.Title, run.NotesPath, run.TexPath, run.PDFPath,
		run.CreatedAt, run.Notes)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", run.ID, err)
	}
	return nil
}

// List returns runs newest first, capped at the configured maximum.
func (s *Store) List(ctx context.Context) ([]types.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, title, notes_path, tex_path, pdf_path, created_at, notes
		 FROM runs ORDER BY created_at DESC LIMIT ?`, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// SearchResult is one full-text match with its relevance rank.
type SearchResult struct {
	Run  types.Run `json:"run" yaml:"run"`
	Rank float64   `json:"rank" yaml:"rank"`
}

// Search runs an FTS5 query over titles and note bodies, best match first.
func (s *Store) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query required")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.video_id, r.title, r.notes_path, r.tex_path, r.pdf_path,
			r.created_at, r.notes, bm25(runs_fts)
		 FROM runs_fts JOIN runs r ON r.rowid = runs_fts.rowid
		 WHERE runs_fts MATCH ?
		 ORDER BY bm25(runs_fts) LIMIT ?`, query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching runs: %w", err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var res SearchResult
		if err := rows.Scan(&res.Run.ID, &res.Run.VideoID, &res.Run.Title,
			&res.Run.NotesPath, &res.Run.TexPath, &res.Run.PDFPath,
			&res.Run.CreatedAt, &res.Run.Notes, &res.Rank); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Get returns the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (types.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, video_id, title, notes_path, tex_path, pdf_path, created_at, notes
		 FROM runs WHERE id = ?`, id)
	var run types.Run
	err := row.Scan(&run.ID, &run.VideoID, &run.Title, &run.NotesPath,
		&run.TexPath, &run.PDFPath, &run.CreatedAt, &run.Notes)
	if err == sql.ErrNoRows {
		return types.Run{}, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return types.Run{}, fmt.Errorf("reading run %s: %w", id, err)
	}
	return run, nil
}

// Export writes every run as YAML to w, newest first without the list cap.
func (s *Store) Export(ctx context.Context, w io.Writer) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, video_id, title, notes_path, tex_path, pdf_path, created_at, notes
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return fmt.Errorf("reading runs for export: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(struct {
		Runs []types.Run `yaml:"runs"`
	}{Runs: runs})
	if err != nil {
		return fmt.Errorf("marshaling export: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]types.Run, error) {
	var runs []types.Run
	for rows.Next() {
		var run types.Run
		if err := rows.Scan(&run.ID, &run.VideoID, &run.Title, &run.NotesPath,
			&run.TexPath, &run.PDFPath, &run.CreatedAt, &run.Notes); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
