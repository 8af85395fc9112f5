// Package store persists submitted assessments, their reports and generated
// narratives in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/finassess/assessment-engine/internal/domain"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no assessment has the requested ID.
var ErrNotFound = errors.New("assessment not found")

const schema = `
CREATE TABLE IF NOT EXISTS assessments (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	input_json TEXT NOT NULL,
	report_json TEXT NOT NULL,
	narrative TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessments_created ON assessments (created_at);
`

// Record is one stored assessment.
type Record struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	CreatedAt time.Time                `json:"created_at"`
	Input     *domain.Assessment       `json:"input"`
	Report    *domain.AssessmentReport `json:"report"`
	Narrative string                   `json:"narrative,omitempty"`
}

// Summary is the listing view of a stored assessment.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the SQLite database at path.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveAssessment stores an input with its report and returns the new ID.
func (s *Store) SaveAssessment(ctx context.Context, input *domain.Assessment, report *domain.AssessmentReport) (string, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("encode assessment: %w", err)
	}
	out, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, name, input_json, report_json, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, input.Name, string(in), string(out), s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("insert assessment: %w", err)
	}
	return id, nil
}

// GetAssessment loads a stored assessment.
func (s *Store) GetAssessment(ctx context.Context, id string) (*Record, error) {
	var (
		rec            Record
		in, out, stamp string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, input_json, report_json, narrative, created_at FROM assessments WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Name, &in, &out, &rec.Narrative, &stamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query assessment %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(in), &rec.Input); err != nil {
		return nil, fmt.Errorf("decode assessment %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(out), &rec.Report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
		return nil, fmt.Errorf("decode timestamp %s: %w", id, err)
	}
	return &rec, nil
}

// SaveNarrative attaches a generated narrative to a stored assessment.
func (s *Store) SaveNarrative(ctx context.Context, id, text string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE assessments SET narrative = ? WHERE id = ?`, text, id)
	if err != nil {
		return fmt.Errorf("update narrative %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAssessments returns the most recent assessments, newest first.
func (s *Store) ListAssessments(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM assessments ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum   Summary
			stamp string
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &stamp); err != nil {
			return nil, err
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
