package audio

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/code-harsh006/new-backend/logger"
	"github.com/code-harsh006/new-backend/model"
)

// UploadInput carries the file content and metadata for one upload.
type UploadInput struct {
	File             io.Reader
	Size             int64
	ContentType      string
	OriginalFilename string

	Title           string
	Description     string
	Mood            string
	Environment     string
	Genre           string
	Artist          string
	Album           string
	Tags            []string
	DurationSeconds float64
	IsPublic        bool
}

// normalize lower-cases the categorical fields and trims free-text ones.
// Called before validation so the enum checks see canonical values.
func (in *UploadInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Mood = strings.ToLower(strings.TrimSpace(in.Mood))
	in.Environment = strings.ToLower(strings.TrimSpace(in.Environment))
	in.Genre = strings.ToLower(strings.TrimSpace(in.Genre))
	in.Artist = strings.TrimSpace(in.Artist)
	in.Album = strings.TrimSpace(in.Album)

	tags := make([]string, 0, len(in.Tags))
	seen := make(map[string]bool)
	for _, tag := range in.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	in.Tags = tags
}

func (s *Service) validateUpload(in *UploadInput) error {
	if in.File == nil {
		return newValidationError("file", "audio file is required")
	}
	if in.Size <= 0 {
		return newValidationError("file", "audio file is empty")
	}
	if in.Size > s.maxFileSize {
		return newValidationError("file", "file exceeds the maximum allowed size")
	}
	if !model.IsAllowedMimeType(in.ContentType) {
		return newValidationError("file", "unsupported audio content type: "+in.ContentType)
	}
	ext := strings.ToLower(filepath.Ext(in.OriginalFilename))
	if !model.IsAllowedExtension(ext) {
		return newValidationError("file", "unsupported audio file extension: "+ext)
	}

	if in.Title == "" {
		return newValidationError("title", "title is required")
	}
	if len(in.Title) > 100 {
		return newValidationError("title", "title must be at most 100 characters")
	}
	if len(in.Description) > 500 {
		return newValidationError("description", "description must be at most 500 characters")
	}

	if in.Mood == "" {
		return newValidationError("mood", "mood is required")
	}
	if !model.IsValidMood(in.Mood) {
		return newValidationError("mood", "unknown mood: "+in.Mood)
	}
	if in.Environment == "" {
		return newValidationError("environment", "environment is required")
	}
	if !model.IsValidEnvironment(in.Environment) {
		return newValidationError("environment", "unknown environment: "+in.Environment)
	}
	if in.Genre != "" && !model.IsValidGenre(in.Genre) {
		return newValidationError("genre", "unknown genre: "+in.Genre)
	}

	for _, tag := range in.Tags {
		if len(tag) > 30 {
			return newValidationError("tags", "tag must be at most 30 characters: "+tag)
		}
	}
	if in.DurationSeconds < 0 {
		return newValidationError("durationSeconds", "duration must not be negative")
	}
	return nil
}

// Upload runs the full upload orchestration: validate, store the file,
// persist the record and compensate with an object delete if the metadata
// write fails. No record ever references a key whose store call failed.
func (s *Service) Upload(ctx context.Context, ownerID int64, in UploadInput) (*model.AudioRecord, error) {
	in.normalize()
	if err := s.validateUpload(&in); err != nil {
		return nil, err
	}

	obj, err := s.backend.Store(ctx, in.File, in.Size, in.ContentType, in.OriginalFilename)
	if err != nil {
		// Nothing persisted yet, no compensation needed.
		return nil, err
	}

	record := &model.AudioRecord{
		Title:            in.Title,
		Description:      in.Description,
		StorageKey:       obj.Key,
		OriginalFilename: in.OriginalFilename,
		FileSizeBytes:    obj.Size,
		MimeType:         strings.ToLower(in.ContentType),
		DurationSeconds:  in.DurationSeconds,
		Mood:             in.Mood,
		Environment:      in.Environment,
		Genre:            in.Genre,
		Artist:           in.Artist,
		Album:            in.Album,
		Tags:             in.Tags,
		OwnerID:          ownerID,
		IsPublic:         in.IsPublic,
		IsActive:         true,
	}

	if err := s.records.Create(ctx, record); err != nil {
		// Compensating delete: never block on or surface cleanup failures,
		// the original error is what the caller needs.
		if rmErr := s.backend.Remove(ctx, obj.Key); rmErr != nil {
			logger.Error("compensating delete failed, object may be orphaned",
				logger.String("storageKey", obj.Key),
				logger.ErrorField(rmErr))
		}
		return nil, err
	}

	if err := s.users.IncrementUploadCount(ownerID); err != nil {
		// Counter drift is tolerated.
		logger.Warn("failed to increment upload count",
			logger.Int64("userId", ownerID),
			logger.ErrorField(err))
	}

	return record, nil
}
