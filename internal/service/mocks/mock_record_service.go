package mocks

import (
	"context"
	"io"

	"healthvault/internal/model"
	"healthvault/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Upload(ctx context.Context, r io.Reader, originalName, contentType string, size int64, userID string) (*model.MedicalRecord, error) {
	args := m.Called(ctx, r, originalName, contentType, size, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalRecord), args.Error(1)
}

func (m *MockRecordService) List(ctx context.Context, userID string) ([]model.MedicalRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MedicalRecord), args.Error(1)
}

func (m *MockRecordService) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRecordService) Open(ctx context.Context, fileName string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, fileName)
	if args.Get(0) == nil {
		return nil, args.Get(1).(storage.ObjectInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(storage.ObjectInfo), args.Error(2)
}
