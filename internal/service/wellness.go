package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"healthvault/internal/cache"
	"healthvault/internal/model"
	"healthvault/internal/repository"
)

var ErrMoodOutOfRange = errors.New("mood must be between 1 and 5")

// WellnessService defines the mood-tracking use cases.
type WellnessService interface {
	// Create validates the mood range and persists a new entry.
	Create(ctx context.Context, userID string, mood int, notes string) (*model.WellnessEntry, error)

	// List returns the user's entries, newest first.
	List(ctx context.Context, userID string) ([]model.WellnessEntry, error)
}

type wellnessService struct {
	entries repository.WellnessEntryRepository
	cache   *cache.Cache
}

// NewWellnessService constructs a new WellnessService. lc may be nil to
// disable list caching.
func NewWellnessService(entries repository.WellnessEntryRepository, lc *cache.Cache) WellnessService {
	return &wellnessService{entries: entries, cache: lc}
}

func wellnessCacheKey(userID string) string {
	return "wellness:user:" + userID
}

func (s *wellnessService) Create(ctx context.Context, userID string, mood int, notes string) (*model.WellnessEntry, error) {
	if mood < 1 || mood > 5 {
		return nil, ErrMoodOutOfRange
	}

	entry := &model.WellnessEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Mood:      mood,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.entries.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, wellnessCacheKey(userID))
	return stored, nil
}

func (s *wellnessService) List(ctx context.Context, userID string) ([]model.WellnessEntry, error) {
	key := wellnessCacheKey(userID)
	var cached []model.WellnessEntry
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, entries)
	return entries, nil
}
