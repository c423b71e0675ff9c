package reference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/joseph-ayodele/report-analyzer/internal/entity"
)

// SQLiteStore is the default learned-range backend. Per-key upserts are
// atomic at the statement level, so concurrent analyses cannot lose
// each other's writes the way whole-file rewrites can.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

const learnedSchema = `
CREATE TABLE IF NOT EXISTS learned_range (
	canonical_name TEXT PRIMARY KEY,
	low            REAL NOT NULL,
	high           REAL NOT NULL,
	unit           TEXT NOT NULL DEFAULT '',
	source         TEXT NOT NULL DEFAULT '',
	learned_date   TEXT NOT NULL,
	confidence     TEXT NOT NULL DEFAULT 'medium'
);`

// NewSQLiteStore opens (creating if needed) the learned-range database.
// If path is empty it defaults to ./learned_reference_ranges.db.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "learned_reference_ranges.db"
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	// WAL mode for concurrent readers alongside a writer.
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening learned store: %w", err)
	}
	if _, err := db.Exec(learnedSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating learned_range table: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Get(ctx context.Context, canonical string) (entity.LearnedRange, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT low, high, unit, source, learned_date, confidence
		   FROM learned_range WHERE canonical_name = ?`, canonical)

	var lr entity.LearnedRange
	var learnedDate string
	err := row.Scan(&lr.Low, &lr.High, &lr.Unit, &lr.Source, &learnedDate, &lr.Confidence)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.LearnedRange{}, false, nil
	}
	if err != nil {
		return entity.LearnedRange{}, false, fmt.Errorf("query learned range: %w", err)
	}
	if t, perr := time.Parse(time.RFC3339, learnedDate); perr == nil {
		lr.LearnedDate = t
	}
	return lr, true, nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, canonical string, lr entity.LearnedRange) error {
	if lr.LearnedDate.IsZero() {
		lr.LearnedDate = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO learned_range (canonical_name, low, high, unit, source, learned_date, confidence)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(canonical_name) DO UPDATE SET
		   low = excluded.low,
		   high = excluded.high,
		   unit = excluded.unit,
		   source = excluded.source,
		   learned_date = excluded.learned_date,
		   confidence = excluded.confidence`,
		canonical, lr.Low, lr.High, lr.Unit, lr.Source,
		lr.LearnedDate.UTC().Format(time.RFC3339), lr.Confidence)
	if err != nil {
		return fmt.Errorf("upsert learned range: %w", err)
	}
	return nil
}

func (s *SQLiteStore) All(ctx context.Context) (map[string]entity.LearnedRange, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT canonical_name, low, high, unit, source, learned_date, confidence
		   FROM learned_range ORDER BY canonical_name`)
	if err != nil {
		return nil, fmt.Errorf("list learned ranges: %w", err)
	}
	defer rows.Close()

	out := make(map[string]entity.LearnedRange)
	for rows.Next() {
		var name, learnedDate string
		var lr entity.LearnedRange
		if err := rows.Scan(&name, &lr.Low, &lr.High, &lr.Unit, &lr.Source, &learnedDate, &lr.Confidence); err != nil {
			return nil, fmt.Errorf("scan learned range: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, learnedDate); perr == nil {
			lr.LearnedDate = t
		}
		out[name] = lr
	}
	return out, rows.Err()
}
