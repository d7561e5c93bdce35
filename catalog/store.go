// Package catalog persists conversion-run history in SQLite, so batch
// tooling can track which decks were converted, when, and how completely.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phuslu/log"
	_ "modernc.org/sqlite"
)

// Run is one parse+translate pass over a single deck.
type Run struct {
	ID          string    `json:"id"`
	InputFile   string    `json:"input_file"`
	Technology  string    `json:"technology"`
	ProcessNode string    `json:"process_node"`
	Layers      int       `json:"layers"`
	Rules       int       `json:"rules"`
	Translated  int       `json:"translated"`
	Errors      int       `json:"errors"`
	Warnings    int       `json:"warnings"`
	CreatedAt   time.Time `json:"created_at"`
}

// Coverage is translated/rules for this run; 1.0 for an empty deck.
func (r *Run) Coverage() float64 {
	if r.Rules == 0 {
		return 1.0
	}
	return float64(r.Translated) / float64(r.Rules)
}

// NewRun creates a run record with a fresh ID and timestamp.
func NewRun(inputFile string) *Run {
	return &Run{
		ID:        uuid.New().String(),
		InputFile: inputFile,
		CreatedAt: time.Now().UTC(),
	}
}

// Store handles SQLite persistence for conversion runs. Use ":memory:"
// as the path for an ephemeral store.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	log.Debug().Str("path", path).Msg("conversion catalog opened")
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		input_file TEXT NOT NULL,
		technology TEXT NOT NULL DEFAULT '',
		process_node TEXT NOT NULL DEFAULT '',
		layers INTEGER NOT NULL DEFAULT 0,
		rules INTEGER NOT NULL DEFAULT 0,
		translated INTEGER NOT NULL DEFAULT 0,
		errors INTEGER NOT NULL DEFAULT 0,
		warnings INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input_file);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts one run record.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, input_file, technology, process_node,
		 layers, rules, translated, errors, warnings, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.InputFile, run.Technology, run.ProcessNode,
		run.Layers, run.Rules, run.Translated, run.Errors, run.Warnings,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun retrieves one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input_file, technology, process_node,
		 layers, rules, translated, errors, warnings, created_at
		 FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_file, technology, process_node,
		 layers, rules, translated, errors, warnings, created_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	err := row.Scan(&run.ID, &run.InputFile, &run.Technology, &run.ProcessNode,
		&run.Layers, &run.Rules, &run.Translated, &run.Errors, &run.Warnings,
		&run.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &run, nil
}
