package postgres

import (
	"context"
	"database/sql"
	"errors"

	"healthvault/internal/model"
	"healthvault/internal/repository"
)

// MedicalRecordPostgres is a PostgreSQL implementation of
// repository.MedicalRecordRepository. Ownership is enforced inside the query
// predicates (WHERE id = $1 AND user_id = $2), never by fetch-then-compare.
type MedicalRecordPostgres struct {
	db *sql.DB
}

// NewMedicalRecordPostgres creates a new MedicalRecordPostgres repository.
func NewMedicalRecordPostgres(db *sql.DB) *MedicalRecordPostgres {
	return &MedicalRecordPostgres{db: db}
}

var _ repository.MedicalRecordRepository = (*MedicalRecordPostgres)(nil)

// Create inserts a new record row and returns the stored record.
func (r *MedicalRecordPostgres) Create(ctx context.Context, rec *model.MedicalRecord) (*model.MedicalRecord, error) {
	const q = `
		INSERT INTO medical_records (id, user_id, file_name, original_name, file_type, file_size, storage_path, download_url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, user_id, file_name, original_name, file_type, file_size, storage_path, download_url, uploaded_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.UserID,
		rec.FileName,
		rec.OriginalName,
		rec.FileType,
		rec.FileSize,
		rec.StoragePath,
		rec.DownloadURL,
		rec.UploadedAt,
	)
	var out model.MedicalRecord
	if err := scanRecord(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByUser returns the user's records, newest upload first.
func (r *MedicalRecordPostgres) ListByUser(ctx context.Context, userID string) ([]model.MedicalRecord, error) {
	const q = `
		SELECT id, user_id, file_name, original_name, file_type, file_size, storage_path, download_url, uploaded_at
		FROM medical_records
		WHERE user_id = $1
		ORDER BY uploaded_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.MedicalRecord, 0)
	for rows.Next() {
		var rec model.MedicalRecord
		if err := scanRecord(rows, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// FindByUser returns the record only when owned by userID; ErrNotFound otherwise.
func (r *MedicalRecordPostgres) FindByUser(ctx context.Context, id, userID string) (*model.MedicalRecord, error) {
	const q = `
		SELECT id, user_id, file_name, original_name, file_type, file_size, storage_path, download_url, uploaded_at
		FROM medical_records
		WHERE id = $1 AND user_id = $2
	`
	var rec model.MedicalRecord
	if err := scanRecord(r.db.QueryRowContext(ctx, q, id, userID), &rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// DeleteByUser deletes the record only when owned by userID. The single
// ownership-scoped predicate leaves no window between check and delete.
func (r *MedicalRecordPostgres) DeleteByUser(ctx context.Context, id, userID string) (bool, error) {
	const q = `DELETE FROM medical_records WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner, rec *model.MedicalRecord) error {
	return s.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.FileName,
		&rec.OriginalName,
		&rec.FileType,
		&rec.FileSize,
		&rec.StoragePath,
		&rec.DownloadURL,
		&rec.UploadedAt,
	)
}
