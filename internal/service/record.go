package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthvault/internal/cache"
	"healthvault/internal/model"
	"healthvault/internal/repository"
	"healthvault/internal/storage"
)

// Upload constraints. Files outside the allow-list or over the size cap are
// rejected before any storage mutation occurs.
const MaxFileSize = 5 << 20 // 5 MiB

var allowedFileTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/jpg":       {},
}

var (
	ErrReaderNil          = errors.New("reader is nil")
	ErrFileEmpty          = errors.New("file is empty")
	ErrFileTooLarge       = errors.New("file exceeds the 5 MB limit")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrRecordNotFound     = errors.New("record not found")
)

// RecordService defines the use cases for medical record documents.
// Every operation is scoped to the owning user.
type RecordService interface {
	// Upload validates the file, streams it to object storage under a
	// storage-assigned name, and persists the metadata. If the metadata
	// insert fails the stored object is rolled back.
	Upload(ctx context.Context, r io.Reader, originalName, contentType string, size int64, userID string) (*model.MedicalRecord, error)

	// List returns the user's records, newest upload first.
	List(ctx context.Context, userID string) ([]model.MedicalRecord, error)

	// Delete removes the record and its stored file. ErrRecordNotFound
	// covers both a missing record and one owned by another user.
	Delete(ctx context.Context, id, userID string) error

	// Open streams a stored file by its storage-assigned name.
	Open(ctx context.Context, fileName string) (io.ReadCloser, storage.ObjectInfo, error)
}

type recordService struct {
	store   storage.Storage
	records repository.MedicalRecordRepository
	cache   *cache.Cache
}

// NewRecordService constructs a new RecordService. lc may be nil to disable
// list caching.
func NewRecordService(store storage.Storage, records repository.MedicalRecordRepository, lc *cache.Cache) RecordService {
	return &recordService{store: store, records: records, cache: lc}
}

func recordsCacheKey(userID string) string {
	return "records:user:" + userID
}

func (s *recordService) Upload(ctx context.Context, r io.Reader, originalName, contentType string, size int64, userID string) (*model.MedicalRecord, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if size <= 0 {
		return nil, ErrFileEmpty
	}
	if size > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	if _, ok := allowedFileTypes[contentType]; !ok {
		return nil, ErrFileTypeNotAllowed
	}

	// Storage-assigned name: UUID + original extension
	ext := filepath.Ext(originalName)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("records", genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	rec := &model.MedicalRecord{
		ID:           uuid.New().String(),
		UserID:       userID,
		FileName:     genName,
		OriginalName: originalName,
		FileType:     contentType,
		FileSize:     objInfo.Size,
		StoragePath:  objInfo.Key,
		DownloadURL:  "/uploads/" + genName,
		UploadedAt:   time.Now().UTC(),
	}
	stored, err := s.records.Create(ctx, rec)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.cache.Delete(ctx, recordsCacheKey(userID))
	return stored, nil
}

func (s *recordService) List(ctx context.Context, userID string) ([]model.MedicalRecord, error) {
	key := recordsCacheKey(userID)
	var cached []model.MedicalRecord
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	records, err := s.records.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, records)
	return records, nil
}

func (s *recordService) Delete(ctx context.Context, id, userID string) error {
	// The lookup is owner-scoped, so another user's record is
	// indistinguishable from a missing one.
	rec, err := s.records.FindByUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	// Delete from storage first; if this fails, keep the row so the
	// record stays listable rather than orphaned.
	if err := s.store.Delete(ctx, rec.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}

	deleted, err := s.records.DeleteByUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecordNotFound
	}

	s.cache.Delete(ctx, recordsCacheKey(userID))
	return nil
}

func (s *recordService) Open(ctx context.Context, fileName string) (io.ReadCloser, storage.ObjectInfo, error) {
	if fileName == "" || strings.ContainsAny(fileName, "/\\") {
		return nil, storage.ObjectInfo{}, ErrRecordNotFound
	}
	return s.store.Get(ctx, "records/"+fileName)
}
