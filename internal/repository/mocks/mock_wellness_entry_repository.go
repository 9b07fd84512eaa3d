package mocks

import (
	"context"

	"healthvault/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockWellnessEntryRepository struct {
	mock.Mock
}

func (m *MockWellnessEntryRepository) Create(ctx context.Context, e *model.WellnessEntry) (*model.WellnessEntry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WellnessEntry), args.Error(1)
}

func (m *MockWellnessEntryRepository) ListByUser(ctx context.Context, userID string) ([]model.WellnessEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WellnessEntry), args.Error(1)
}
