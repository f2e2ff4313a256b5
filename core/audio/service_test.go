package audio_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/code-harsh006/new-backend/model"
	"github.com/code-harsh006/new-backend/repository"
	"github.com/code-harsh006/new-backend/storage"
)

// fakeBackend keeps objects in memory and counts Remove calls.
type fakeBackend struct {
	objects     map[string][]byte
	removeCalls map[string]int
	failStore   bool
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		objects:     make(map[string][]byte),
		removeCalls: make(map[string]int),
	}
}

func (b *fakeBackend) Store(ctx context.Context, r io.Reader, size int64, contentType, originalFilename string) (*storage.StoredObject, error) {
	if b.failStore {
		return nil, errors.New("backend unreachable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	key := storage.GenerateKey(originalFilename)
	b.objects[key] = data
	return &storage.StoredObject{Key: key, PublicURL: b.Resolve(key), Size: int64(len(data))}, nil
}

func (b *fakeBackend) Resolve(key string) string {
	return "/uploads/" + key
}

func (b *fakeBackend) Remove(ctx context.Context, key string) error {
	b.removeCalls[key]++
	delete(b.objects, key)
	return nil
}

// fakeAudioRepo implements repository.AudioRepository in memory with the
// same visibility and filter semantics as the GORM implementation.
type fakeAudioRepo struct {
	records    map[int64]*model.AudioRecord
	nextID     int64
	failCreate error
}

func newFakeAudioRepo() *fakeAudioRepo {
	return &fakeAudioRepo{records: make(map[int64]*model.AudioRecord)}
}

func (r *fakeAudioRepo) Create(ctx context.Context, record *model.AudioRecord) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.nextID++
	record.ID = r.nextID
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	record.UpdatedAt = record.CreatedAt
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *fakeAudioRepo) GetByID(ctx context.Context, id int64) (*model.AudioRecord, error) {
	record, ok := r.records[id]
	if !ok || !record.IsActive {
		return nil, nil
	}
	clone := *record
	return &clone, nil
}

func sortNewestFirst(records []*model.AudioRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}

func pageOf(records []*model.AudioRecord, offset, limit int) []*model.AudioRecord {
	if offset >= len(records) {
		return nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end]
}

func (r *fakeAudioRepo) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*model.AudioRecord, int64, error) {
	matches := make([]*model.AudioRecord, 0)
	for _, record := range r.records {
		if record.OwnerID == ownerID && record.IsActive {
			clone := *record
			matches = append(matches, &clone)
		}
	}
	sortNewestFirst(matches)
	return pageOf(matches, offset, limit), int64(len(matches)), nil
}

func textMatches(record *model.AudioRecord, text string) bool {
	needle := strings.ToLower(text)
	haystacks := []string{record.Title, record.Description, record.Artist, record.Album}
	haystacks = append(haystacks, record.Tags...)
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

func (r *fakeAudioRepo) Search(ctx context.Context, q repository.AudioQuery) ([]*model.AudioRecord, int64, error) {
	matches := make([]*model.AudioRecord, 0)
	for _, record := range r.records {
		if !record.IsActive {
			continue
		}
		if !record.IsPublic && record.OwnerID != q.ViewerID {
			continue
		}
		if q.Mood != "" && record.Mood != q.Mood {
			continue
		}
		if q.Environment != "" && record.Environment != q.Environment {
			continue
		}
		if q.Genre != "" && record.Genre != q.Genre {
			continue
		}
		if q.Text != "" && !textMatches(record, q.Text) {
			continue
		}
		clone := *record
		matches = append(matches, &clone)
	}
	sortNewestFirst(matches)
	return pageOf(matches, q.Offset, q.Limit), int64(len(matches)), nil
}

func (r *fakeAudioRepo) Trending(ctx context.Context, limit int, window time.Duration) ([]*model.AudioRecord, error) {
	since := time.Now().Add(-window)
	matches := make([]*model.AudioRecord, 0)
	for _, record := range r.records {
		if record.IsPublic && record.IsActive && !record.CreatedAt.Before(since) {
			clone := *record
			matches = append(matches, &clone)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].PlayCount != matches[j].PlayCount {
			return matches[i].PlayCount > matches[j].PlayCount
		}
		return matches[i].Likes > matches[j].Likes
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *fakeAudioRepo) Update(ctx context.Context, record *model.AudioRecord) error {
	if _, ok := r.records[record.ID]; !ok {
		return fmt.Errorf("record %d does not exist", record.ID)
	}
	clone := *record
	r.records[record.ID] = &clone
	return nil
}

func (r *fakeAudioRepo) Deactivate(ctx context.Context, id int64) error {
	record, ok := r.records[id]
	if !ok {
		return fmt.Errorf("record %d does not exist", id)
	}
	record.IsActive = false
	return nil
}

func (r *fakeAudioRepo) IncrementPlayCount(ctx context.Context, id int64) error {
	record, ok := r.records[id]
	if !ok {
		return fmt.Errorf("record %d does not exist", id)
	}
	record.PlayCount++
	return nil
}

// fakeUserRepo only tracks upload counters; the other methods exist to
// satisfy the interface.
type fakeUserRepo struct {
	uploadCounts map[int64]int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{uploadCounts: make(map[int64]int64)}
}

func (r *fakeUserRepo) CreateUser(user *model.User) (int64, error)              { return 1, nil }
func (r *fakeUserRepo) GetUserByID(id int64) (*model.User, error)               { return nil, nil }
func (r *fakeUserRepo) GetUserByUsername(username string) (*model.User, error)  { return nil, nil }
func (r *fakeUserRepo) GetUserByEmail(email string) (*model.User, error)        { return nil, nil }
func (r *fakeUserRepo) UpdateLastLogin(userID int64) error                      { return nil }

func (r *fakeUserRepo) IncrementUploadCount(userID int64) error {
	r.uploadCounts[userID]++
	return nil
}
