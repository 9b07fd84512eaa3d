package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, memory) and must satisfy
// identical contracts: same sentinel errors, same ordering, same ownership
// predicates. Handlers and services never depend on which backend is active.

import (
	"context"
	"errors"

	"healthvault/internal/model"
)

var (
	// ErrNotFound is returned when a row is absent. For owner-scoped lookups
	// it also covers rows owned by another user; callers cannot distinguish
	// the two cases.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (username or email).
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines data access for user identity records.
type UserRepository interface {
	// Create inserts a new user. Returns ErrDuplicate if the username or
	// email is already taken.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// FindByUsername returns a user by username, or ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// MedicalRecordRepository defines data access for uploaded record metadata.
// Every read and delete is scoped to the owning user in the query predicate
// itself, so "absent" and "owned by someone else" are indistinguishable.
type MedicalRecordRepository interface {
	// Create inserts a new record row.
	Create(ctx context.Context, rec *model.MedicalRecord) (*model.MedicalRecord, error)

	// ListByUser returns the user's records ordered by uploaded_at descending.
	// An empty slice (not an error) is returned when none exist.
	ListByUser(ctx context.Context, userID string) ([]model.MedicalRecord, error)

	// FindByUser returns the record only if it exists and is owned by userID.
	FindByUser(ctx context.Context, id, userID string) (*model.MedicalRecord, error)

	// DeleteByUser deletes the record only if it is owned by userID.
	// It returns false, not an error, when nothing was deleted.
	DeleteByUser(ctx context.Context, id, userID string) (bool, error)
}

// WellnessEntryRepository defines data access for mood log entries.
type WellnessEntryRepository interface {
	// Create inserts a new entry.
	Create(ctx context.Context, e *model.WellnessEntry) (*model.WellnessEntry, error)

	// ListByUser returns the user's entries ordered by created_at descending.
	ListByUser(ctx context.Context, userID string) ([]model.WellnessEntry, error)
}
