package postgres

import (
	"context"
	"database/sql"

	"healthvault/internal/model"
	"healthvault/internal/repository"
)

// WellnessEntryPostgres is a PostgreSQL implementation of
// repository.WellnessEntryRepository.
type WellnessEntryPostgres struct {
	db *sql.DB
}

// NewWellnessEntryPostgres creates a new WellnessEntryPostgres repository.
func NewWellnessEntryPostgres(db *sql.DB) *WellnessEntryPostgres {
	return &WellnessEntryPostgres{db: db}
}

var _ repository.WellnessEntryRepository = (*WellnessEntryPostgres)(nil)

// Create inserts a new entry row and returns the stored entry.
func (r *WellnessEntryPostgres) Create(ctx context.Context, e *model.WellnessEntry) (*model.WellnessEntry, error) {
	const q = `
		INSERT INTO wellness_entries (id, user_id, mood, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, mood, notes, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		e.ID,
		e.UserID,
		e.Mood,
		e.Notes,
		e.CreatedAt,
	)
	var out model.WellnessEntry
	if err := row.Scan(
		&out.ID,
		&out.UserID,
		&out.Mood,
		&out.Notes,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByUser returns the user's entries, newest first.
func (r *WellnessEntryPostgres) ListByUser(ctx context.Context, userID string) ([]model.WellnessEntry, error) {
	const q = `
		SELECT id, user_id, mood, notes, created_at
		FROM wellness_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.WellnessEntry, 0)
	for rows.Next() {
		var e model.WellnessEntry
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Mood,
			&e.Notes,
			&e.CreatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
