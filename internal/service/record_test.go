package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"healthvault/internal/model"
	"healthvault/internal/repository"
	repomocks "healthvault/internal/repository/mocks"
	"healthvault/internal/storage"
	storagemocks "healthvault/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		records := new(repomocks.MockMedicalRecordRepository)

		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "records/") && strings.HasSuffix(key, ".pdf")
		}), mock.Anything, mock.AnythingOfType("storage.PutObjectOptions")).
			Return(func(_ context.Context, key string, _ io.Reader, _ storage.PutObjectOptions) storage.ObjectInfo {
				return storage.ObjectInfo{Key: key, Size: 4, ContentType: "application/pdf"}
			}, nil)

		var created *model.MedicalRecord
		records.On("Create", ctx, mock.AnythingOfType("*model.MedicalRecord")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*model.MedicalRecord) }).
			Return(&model.MedicalRecord{ID: "rec-1"}, nil)

		svc := NewRecordService(store, records, nil)
		rec, err := svc.Upload(ctx, bytes.NewReader([]byte("%PDF")), "report.pdf", "application/pdf", 4, "user-1")

		require.NoError(t, err)
		assert.Equal(t, "rec-1", rec.ID)
		require.NotNil(t, created)
		assert.Equal(t, "user-1", created.UserID)
		assert.Equal(t, "report.pdf", created.OriginalName)
		assert.Equal(t, "application/pdf", created.FileType)
		assert.Equal(t, int64(4), created.FileSize)
		assert.True(t, strings.HasSuffix(created.FileName, ".pdf"))
		assert.NotEqual(t, "report.pdf", created.FileName)
		assert.Equal(t, "/uploads/"+created.FileName, created.DownloadURL)
		assert.Equal(t, "records/"+created.FileName, created.StoragePath)
		store.AssertExpectations(t)
		records.AssertExpectations(t)
	})

	t.Run("rejects before touching storage", func(t *testing.T) {
		cases := []struct {
			name        string
			size        int64
			contentType string
			nilReader   bool
			want        error
		}{
			{"nil reader", 4, "application/pdf", true, ErrReaderNil},
			{"empty file", 0, "application/pdf", false, ErrFileEmpty},
			{"too large", MaxFileSize + 1, "application/pdf", false, ErrFileTooLarge},
			{"type not allowed", 4, "text/html", false, ErrFileTypeNotAllowed},
			{"png not allowed", 4, "image/png", false, ErrFileTypeNotAllowed},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				store := new(storagemocks.MockStorage)
				records := new(repomocks.MockMedicalRecordRepository)
				svc := NewRecordService(store, records, nil)

				var reader *bytes.Reader
				if !tc.nilReader {
					reader = bytes.NewReader([]byte("data"))
				}
				var err error
				if tc.nilReader {
					_, err = svc.Upload(ctx, nil, "f.pdf", tc.contentType, tc.size, "user-1")
				} else {
					_, err = svc.Upload(ctx, reader, "f.pdf", tc.contentType, tc.size, "user-1")
				}

				assert.ErrorIs(t, err, tc.want)
				store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("rolls back the object when the insert fails", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		records := new(repomocks.MockMedicalRecordRepository)

		var storedKey string
		store.On("Put", ctx, mock.AnythingOfType("string"), mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { storedKey = args.String(1) }).
			Return(storage.ObjectInfo{Size: 4}, nil)
		records.On("Create", ctx, mock.Anything).Return(nil, errors.New("insert failed"))
		store.On("Delete", ctx, mock.AnythingOfType("string")).Return(nil)

		svc := NewRecordService(store, records, nil)
		_, err := svc.Upload(ctx, bytes.NewReader([]byte("%PDF")), "report.pdf", "application/pdf", 4, "user-1")

		require.Error(t, err)
		store.AssertCalled(t, "Delete", ctx, storedKey)
	})
}

func TestRecordService_List(t *testing.T) {
	ctx := context.Background()

	records := new(repomocks.MockMedicalRecordRepository)
	want := []model.MedicalRecord{
		{ID: "rec-2", UserID: "user-1", UploadedAt: time.Now()},
		{ID: "rec-1", UserID: "user-1", UploadedAt: time.Now().Add(-time.Hour)},
	}
	records.On("ListByUser", ctx, "user-1").Return(want, nil)

	svc := NewRecordService(new(storagemocks.MockStorage), records, nil)
	got, err := svc.List(ctx, "user-1")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecordService_Delete(t *testing.T) {
	ctx := context.Background()

	rec := &model.MedicalRecord{ID: "rec-1", UserID: "user-1", StoragePath: "records/a.pdf"}

	t.Run("success removes file then row", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		records := new(repomocks.MockMedicalRecordRepository)

		records.On("FindByUser", ctx, "rec-1", "user-1").Return(rec, nil)
		store.On("Delete", ctx, "records/a.pdf").Return(nil)
		records.On("DeleteByUser", ctx, "rec-1", "user-1").Return(true, nil)

		svc := NewRecordService(store, records, nil)
		err := svc.Delete(ctx, "rec-1", "user-1")

		assert.NoError(t, err)
		store.AssertExpectations(t)
		records.AssertExpectations(t)
	})

	t.Run("not owned looks like not found", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		records := new(repomocks.MockMedicalRecordRepository)
		records.On("FindByUser", ctx, "rec-1", "user-2").Return(nil, repository.ErrNotFound)

		svc := NewRecordService(store, records, nil)
		err := svc.Delete(ctx, "rec-1", "user-2")

		assert.ErrorIs(t, err, ErrRecordNotFound)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("storage failure keeps the row", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		records := new(repomocks.MockMedicalRecordRepository)
		records.On("FindByUser", ctx, "rec-1", "user-1").Return(rec, nil)
		store.On("Delete", ctx, "records/a.pdf").Return(errors.New("storage down"))

		svc := NewRecordService(store, records, nil)
		err := svc.Delete(ctx, "rec-1", "user-1")

		require.Error(t, err)
		records.AssertNotCalled(t, "DeleteByUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecordService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("traversal attempts are rejected", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		svc := NewRecordService(store, new(repomocks.MockMedicalRecordRepository), nil)

		for _, name := range []string{"", "../secret.pdf", "a/b.pdf", `a\b.pdf`} {
			_, _, err := svc.Open(ctx, name)
			assert.ErrorIs(t, err, ErrRecordNotFound, "fileName %q", name)
		}
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("delegates to storage under the records prefix", func(t *testing.T) {
		store := new(storagemocks.MockStorage)
		store.On("Get", ctx, "records/a.pdf").
			Return(nil, storage.ObjectInfo{}, errors.New("not found"))

		svc := NewRecordService(store, new(repomocks.MockMedicalRecordRepository), nil)
		_, _, err := svc.Open(ctx, "a.pdf")

		assert.Error(t, err)
		store.AssertExpectations(t)
	})
}
