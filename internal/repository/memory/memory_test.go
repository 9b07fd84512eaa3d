package memory

import (
	"context"
	"testing"
	"time"

	"healthvault/internal/model"
	"healthvault/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewUserMemory()

	ann := &model.User{ID: "u-1", Username: "ann", Email: "ann@x.com", PasswordHash: "hash", CreatedAt: time.Now()}

	t.Run("create and find", func(t *testing.T) {
		stored, err := repo.Create(ctx, ann)
		require.NoError(t, err)
		assert.Equal(t, "u-1", stored.ID)

		byID, err := repo.FindByID(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "ann", byID.Username)

		byEmail, err := repo.FindByEmail(ctx, "ann@x.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", byEmail.ID)

		byName, err := repo.FindByUsername(ctx, "ann")
		require.NoError(t, err)
		assert.Equal(t, "u-1", byName.ID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.User{ID: "u-2", Username: "other", Email: "ann@x.com"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.User{ID: "u-3", Username: "ann", Email: "new@x.com"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repo.FindByEmail(ctx, "nope@x.com")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("stored copy is isolated from the caller", func(t *testing.T) {
		ann.Username = "mutated"
		byID, err := repo.FindByID(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "ann", byID.Username)
	})
}

func TestMedicalRecordMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewMedicalRecordMemory()

	now := time.Now()
	seed := []model.MedicalRecord{
		{ID: "rec-old", UserID: "u-1", FileName: "old.pdf", UploadedAt: now.Add(-time.Hour)},
		{ID: "rec-a", UserID: "u-1", FileName: "a.pdf", UploadedAt: now},
		{ID: "rec-b", UserID: "u-1", FileName: "b.pdf", UploadedAt: now},
		{ID: "rec-other", UserID: "u-2", FileName: "theirs.pdf", UploadedAt: now},
	}
	for i := range seed {
		_, err := repo.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	t.Run("list is owner scoped, newest first, insertion order breaks ties", func(t *testing.T) {
		records, err := repo.ListByUser(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "rec-b", records[0].ID)
		assert.Equal(t, "rec-a", records[1].ID)
		assert.Equal(t, "rec-old", records[2].ID)
	})

	t.Run("list for unknown user is empty, not nil", func(t *testing.T) {
		records, err := repo.ListByUser(ctx, "u-9")
		require.NoError(t, err)
		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("find is owner scoped", func(t *testing.T) {
		rec, err := repo.FindByUser(ctx, "rec-a", "u-1")
		require.NoError(t, err)
		assert.Equal(t, "a.pdf", rec.FileName)

		_, err = repo.FindByUser(ctx, "rec-a", "u-2")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete is owner scoped", func(t *testing.T) {
		ok, err := repo.DeleteByUser(ctx, "rec-other", "u-1")
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.DeleteByUser(ctx, "rec-other", "u-2")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.DeleteByUser(ctx, "rec-other", "u-2")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestWellnessEntryMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewWellnessEntryMemory()

	now := time.Now()
	seed := []model.WellnessEntry{
		{ID: "e-1", UserID: "u-1", Mood: 2, CreatedAt: now.Add(-time.Minute)},
		{ID: "e-2", UserID: "u-1", Mood: 4, CreatedAt: now},
		{ID: "e-3", UserID: "u-1", Mood: 5, CreatedAt: now},
		{ID: "e-4", UserID: "u-2", Mood: 1, CreatedAt: now},
	}
	for i := range seed {
		_, err := repo.Create(ctx, &seed[i])
		require.NoError(t, err)
	}

	entries, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "e-3", entries[0].ID)
	assert.Equal(t, "e-2", entries[1].ID)
	assert.Equal(t, "e-1", entries[2].ID)

	entries, err = repo.ListByUser(ctx, "u-3")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
