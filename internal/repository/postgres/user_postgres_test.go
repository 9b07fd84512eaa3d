package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"healthvault/internal/model"
	"healthvault/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "username", "email", "password_hash", "created_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	user := &model.User{
		ID:           "user-uuid",
		Username:     "ann",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)

		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnRows(rows)

		result, err := repo.Create(ctx, user)

		assert.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, user.ID, result.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrDuplicate", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO users").
			WithArgs(user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		result, err := repo.Create(ctx, user)

		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, result)
	})
}

func TestUserPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow("user-1", "ann", "a@x.com", "hash", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
			WithArgs("user-1").
			WillReturnRows(rows)

		u, err := repo.FindByID(ctx, "user-1")

		assert.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "ann", u.Username)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		u, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, u)
	})
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow("user-1", "ann", "a@x.com", "hash", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("a@x.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "a@x.com")

		assert.NoError(t, err)
		require.NotNil(t, u)
		assert.Equal(t, "user-1", u.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE email = ?").
			WithArgs("b@x.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(ctx, "b@x.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestUserPostgres_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	rows := sqlmock.NewRows(userColumns).
		AddRow("user-1", "ann", "a@x.com", "hash", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ?").
		WithArgs("ann").
		WillReturnRows(rows)

	u, err := repo.FindByUsername(ctx, "ann")

	assert.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "a@x.com", u.Email)
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isDuplicate(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isDuplicate(errors.New("plain error")))
}
