package mocks

import (
	"context"

	"healthvault/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockWellnessService struct {
	mock.Mock
}

func (m *MockWellnessService) Create(ctx context.Context, userID string, mood int, notes string) (*model.WellnessEntry, error) {
	args := m.Called(ctx, userID, mood, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WellnessEntry), args.Error(1)
}

func (m *MockWellnessService) List(ctx context.Context, userID string) ([]model.WellnessEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WellnessEntry), args.Error(1)
}
