package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Row is one riddle as stored in the puzzles table.
type Row struct {
	Round    int
	Position int
	Question string
	Answer   string
	Hints    []string
}

type PuzzleStore struct{ db *sql.DB }

func NewPuzzleStore(db *sql.DB) *PuzzleStore { return &PuzzleStore{db: db} }

// Puzzles returns every row ordered by round, then position.
func (s *PuzzleStore) Puzzles(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT round, position, question, answer, hints
		FROM puzzles
		ORDER BY round ASC, position ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var hints string
		if err := rows.Scan(&r.Round, &r.Position, &r.Question, &r.Answer, &hints); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(hints), &r.Hints); err != nil {
			return nil, fmt.Errorf("puzzle %d/%d hints: %w", r.Round, r.Position, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PuzzleStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM puzzles`).Scan(&n)
	return n, err
}

// Seed inserts rows in a single transaction; any conflict aborts the whole batch.
func (s *PuzzleStore) Seed(ctx context.Context, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO puzzles(round, position, question, answer, hints)
		VALUES(?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		hints := r.Hints
		if hints == nil {
			hints = []string{}
		}
		b, err := json.Marshal(hints)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, r.Round, r.Position, r.Question, r.Answer, string(b)); err != nil {
			return fmt.Errorf("insert puzzle %d/%d: %w", r.Round, r.Position, err)
		}
	}
	return tx.Commit()
}
