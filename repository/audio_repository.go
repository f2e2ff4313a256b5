package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/code-harsh006/new-backend/model"
)

// AudioQuery describes a playlist/search query. Empty filter fields are
// skipped; the ones provided are combined conjunctively.
type AudioQuery struct {
	Mood        string
	Environment string
	Genre       string
	Text        string // Matched case-insensitively against title, description, tags, artist, album
	ViewerID    int64  // 0 for anonymous callers
	Offset      int
	Limit       int
}

// AudioRepository defines the interface for audio record operations.
type AudioRepository interface {
	Create(ctx context.Context, record *model.AudioRecord) error
	GetByID(ctx context.Context, id int64) (*model.AudioRecord, error)
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*model.AudioRecord, int64, error)
	Search(ctx context.Context, q AudioQuery) ([]*model.AudioRecord, int64, error)
	Trending(ctx context.Context, limit int, window time.Duration) ([]*model.AudioRecord, error)
	Update(ctx context.Context, record *model.AudioRecord) error
	Deactivate(ctx context.Context, id int64) error
	IncrementPlayCount(ctx context.Context, id int64) error
}

// gormAudioRepository implements AudioRepository on GORM.
type gormAudioRepository struct {
	db *gorm.DB
}

// NewGormAudioRepository creates a new gormAudioRepository.
func NewGormAudioRepository(db *gorm.DB) AudioRepository {
	return &gormAudioRepository{db: db}
}

// Create inserts a new audio record.
func (r *gormAudioRepository) Create(ctx context.Context, record *model.AudioRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create audio record: %w", err)
	}
	return nil
}

// GetByID retrieves a record by ID regardless of visibility; the caller
// applies the visibility rule. Inactive records are treated as absent.
func (r *gormAudioRepository) GetByID(ctx context.Context, id int64) (*model.AudioRecord, error) {
	record := &model.AudioRecord{}
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Record not found
		}
		return nil, fmt.Errorf("failed to get audio record %d: %w", id, err)
	}
	return record, nil
}

// ListByOwner returns the owner's active records, newest first, with the
// total count for pagination.
func (r *gormAudioRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]*model.AudioRecord, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.AudioRecord{}).
		Where("owner_id = ? AND is_active = ?", ownerID, true)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count records for owner %d: %w", ownerID, err)
	}

	records := make([]*model.AudioRecord, 0)
	err := tx.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list records for owner %d: %w", ownerID, err)
	}
	return records, total, nil
}

// Search applies the provided filters conjunctively over visible records.
// A record is visible when it is public or owned by the viewer.
func (r *gormAudioRepository) Search(ctx context.Context, q AudioQuery) ([]*model.AudioRecord, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.AudioRecord{}).
		Where("is_active = ?", true)

	if q.ViewerID > 0 {
		tx = tx.Where("is_public = ? OR owner_id = ?", true, q.ViewerID)
	} else {
		tx = tx.Where("is_public = ?", true)
	}

	if q.Mood != "" {
		tx = tx.Where("mood = ?", strings.ToLower(q.Mood))
	}
	if q.Environment != "" {
		tx = tx.Where("environment = ?", strings.ToLower(q.Environment))
	}
	if q.Genre != "" {
		tx = tx.Where("genre = ?", strings.ToLower(q.Genre))
	}
	if q.Text != "" {
		like := "%" + strings.ToLower(q.Text) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(artist) LIKE ? OR LOWER(album) LIKE ?",
			like, like, like, like, like,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	records := make([]*model.AudioRecord, 0)
	err := tx.Order("created_at DESC").Offset(q.Offset).Limit(q.Limit).Find(&records).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search audio records: %w", err)
	}
	return records, total, nil
}

// Trending returns public active records from the recency window, ordered
// by play count then likes.
func (r *gormAudioRepository) Trending(ctx context.Context, limit int, window time.Duration) ([]*model.AudioRecord, error) {
	since := time.Now().Add(-window)
	records := make([]*model.AudioRecord, 0)
	err := r.db.WithContext(ctx).
		Where("is_public = ? AND is_active = ? AND created_at >= ?", true, true, since).
		Order("play_count DESC").
		Order("likes DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query trending records: %w", err)
	}
	return records, nil
}

// Update saves all fields of the record.
func (r *gormAudioRepository) Update(ctx context.Context, record *model.AudioRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update audio record %d: %w", record.ID, err)
	}
	return nil
}

// Deactivate soft-deletes a record by clearing its is_active flag.
func (r *gormAudioRepository) Deactivate(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Model(&model.AudioRecord{}).
		Where("id = ?", id).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate audio record %d: %w", id, err)
	}
	return nil
}

// IncrementPlayCount bumps the play counter. Not serialized against
// concurrent increments; lost updates under contention are accepted.
func (r *gormAudioRepository) IncrementPlayCount(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Model(&model.AudioRecord{}).
		Where("id = ?", id).
		Update("play_count", gorm.Expr("play_count + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment play count for record %d: %w", id, err)
	}
	return nil
}
