package memory

// Package memory provides map-backed implementations of the repository
// contracts for development and tests. It must be selected explicitly
// (STORAGE_DRIVER=memory); nothing survives a restart. All types are safe
// for concurrent use within a single process only.

import (
	"context"
	"sort"
	"sync"

	"healthvault/internal/model"
	"healthvault/internal/repository"
)

// UserMemory implements repository.UserRepository over a mutex-guarded map.
type UserMemory struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewUserMemory() *UserMemory {
	return &UserMemory{users: make(map[string]model.User)}
}

var _ repository.UserRepository = (*UserMemory)(nil)

func (r *UserMemory) Create(_ context.Context, u *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, repository.ErrDuplicate
		}
	}
	stored := *u
	r.users[stored.ID] = stored
	out := stored
	return &out, nil
}

func (r *UserMemory) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := u
	return &out, nil
}

func (r *UserMemory) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.findBy(func(u model.User) bool { return u.Email == email })
}

func (r *UserMemory) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.findBy(func(u model.User) bool { return u.Username == username })
}

func (r *UserMemory) findBy(match func(model.User) bool) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			out := u
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

// MedicalRecordMemory implements repository.MedicalRecordRepository.
// A monotonic sequence breaks ties between records sharing a timestamp,
// mirroring the postgres backend's secondary sort key.
type MedicalRecordMemory struct {
	mu      sync.RWMutex
	records map[string]model.MedicalRecord
	order   map[string]uint64
	seq     uint64
}

func NewMedicalRecordMemory() *MedicalRecordMemory {
	return &MedicalRecordMemory{
		records: make(map[string]model.MedicalRecord),
		order:   make(map[string]uint64),
	}
}

var _ repository.MedicalRecordRepository = (*MedicalRecordMemory)(nil)

func (r *MedicalRecordMemory) Create(_ context.Context, rec *model.MedicalRecord) (*model.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *rec
	r.seq++
	r.records[stored.ID] = stored
	r.order[stored.ID] = r.seq
	out := stored
	return &out, nil
}

func (r *MedicalRecordMemory) ListByUser(_ context.Context, userID string) ([]model.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	records := make([]model.MedicalRecord, 0)
	for _, rec := range r.records {
		if rec.UserID == userID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].UploadedAt.Equal(records[j].UploadedAt) {
			return records[i].UploadedAt.After(records[j].UploadedAt)
		}
		return r.order[records[i].ID] > r.order[records[j].ID]
	})
	return records, nil
}

func (r *MedicalRecordMemory) FindByUser(_ context.Context, id, userID string) (*model.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return nil, repository.ErrNotFound
	}
	out := rec
	return &out, nil
}

func (r *MedicalRecordMemory) DeleteByUser(_ context.Context, id, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return false, nil
	}
	delete(r.records, id)
	delete(r.order, id)
	return true, nil
}

// WellnessEntryMemory implements repository.WellnessEntryRepository.
type WellnessEntryMemory struct {
	mu      sync.RWMutex
	entries map[string]model.WellnessEntry
	order   map[string]uint64
	seq     uint64
}

func NewWellnessEntryMemory() *WellnessEntryMemory {
	return &WellnessEntryMemory{
		entries: make(map[string]model.WellnessEntry),
		order:   make(map[string]uint64),
	}
}

var _ repository.WellnessEntryRepository = (*WellnessEntryMemory)(nil)

func (r *WellnessEntryMemory) Create(_ context.Context, e *model.WellnessEntry) (*model.WellnessEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *e
	r.seq++
	r.entries[stored.ID] = stored
	r.order[stored.ID] = r.seq
	out := stored
	return &out, nil
}

func (r *WellnessEntryMemory) ListByUser(_ context.Context, userID string) ([]model.WellnessEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]model.WellnessEntry, 0)
	for _, e := range r.entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return r.order[entries[i].ID] > r.order[entries[j].ID]
	})
	return entries, nil
}
