package audio

import (
	"context"
	"strings"
	"time"

	"github.com/code-harsh006/new-backend/logger"
	"github.com/code-harsh006/new-backend/model"
	"github.com/code-harsh006/new-backend/repository"
)

// PlaylistFilter selects records by mood/environment/genre/text. Provided
// filters combine conjunctively; the text query matches any of title,
// description, tags, artist or album.
type PlaylistFilter struct {
	Mood        string
	Environment string
	Genre       string
	Text        string
}

func (f *PlaylistFilter) normalize() {
	f.Mood = strings.ToLower(strings.TrimSpace(f.Mood))
	f.Environment = strings.ToLower(strings.TrimSpace(f.Environment))
	f.Genre = strings.ToLower(strings.TrimSpace(f.Genre))
	f.Text = strings.TrimSpace(f.Text)
}

func (f *PlaylistFilter) validate() error {
	if f.Mood != "" && !model.IsValidMood(f.Mood) {
		return newValidationError("mood", "unknown mood: "+f.Mood)
	}
	if f.Environment != "" && !model.IsValidEnvironment(f.Environment) {
		return newValidationError("environment", "unknown environment: "+f.Environment)
	}
	if f.Genre != "" && !model.IsValidGenre(f.Genre) {
		return newValidationError("genre", "unknown genre: "+f.Genre)
	}
	return nil
}

// ByOwner lists the owner's records, newest first.
func (s *Service) ByOwner(ctx context.Context, ownerID int64, page PageRequest) ([]*Response, Pagination, error) {
	page.normalize()
	records, total, err := s.records.ListByOwner(ctx, ownerID, page.offset(), page.Limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	return s.projectAll(records), NewPagination(page, total), nil
}

// Playlist queries visible records by the provided filters. viewerID is 0
// for anonymous callers, who only see public records.
func (s *Service) Playlist(ctx context.Context, viewerID int64, filter PlaylistFilter, page PageRequest) ([]*Response, Pagination, error) {
	filter.normalize()
	if err := filter.validate(); err != nil {
		return nil, Pagination{}, err
	}
	page.normalize()

	records, total, err := s.records.Search(ctx, repository.AudioQuery{
		Mood:        filter.Mood,
		Environment: filter.Environment,
		Genre:       filter.Genre,
		Text:        filter.Text,
		ViewerID:    viewerID,
		Offset:      page.offset(),
		Limit:       page.Limit,
	})
	if err != nil {
		return nil, Pagination{}, err
	}
	return s.projectAll(records), NewPagination(page, total), nil
}

// Trending returns public active records from the last seven days, most
// played first, likes breaking ties.
func (s *Service) Trending(ctx context.Context, limit int) ([]*Response, error) {
	if limit < 1 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}
	records, err := s.records.Trending(ctx, limit, trendingWindowDays*24*time.Hour)
	if err != nil {
		return nil, err
	}
	return s.projectAll(records), nil
}

// ByID returns a single record subject to the visibility rule: public
// records are visible to everyone, private ones only to their owner.
// Invisible and absent records are indistinguishable.
func (s *Service) ByID(ctx context.Context, viewerID, id int64) (*Response, error) {
	record, err := s.visibleRecord(ctx, viewerID, id)
	if err != nil {
		return nil, err
	}
	return Project(record, s.backend), nil
}

// UpdateInput is a partial-field update; nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Mood        *string
	Environment *string
	Genre       *string
	Artist      *string
	Album       *string
	Tags        *[]string
	IsPublic    *bool
}

// Update applies a partial update to a record owned by callerID.
// Categorical fields are re-validated against the enum sets.
func (s *Service) Update(ctx context.Context, callerID, id int64, in UpdateInput) (*Response, error) {
	record, err := s.ownedRecord(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, newValidationError("title", "title is required")
		}
		if len(title) > 100 {
			return nil, newValidationError("title", "title must be at most 100 characters")
		}
		record.Title = title
	}
	if in.Description != nil {
		if len(*in.Description) > 500 {
			return nil, newValidationError("description", "description must be at most 500 characters")
		}
		record.Description = strings.TrimSpace(*in.Description)
	}
	if in.Mood != nil {
		mood := strings.ToLower(strings.TrimSpace(*in.Mood))
		if !model.IsValidMood(mood) {
			return nil, newValidationError("mood", "unknown mood: "+mood)
		}
		record.Mood = mood
	}
	if in.Environment != nil {
		environment := strings.ToLower(strings.TrimSpace(*in.Environment))
		if !model.IsValidEnvironment(environment) {
			return nil, newValidationError("environment", "unknown environment: "+environment)
		}
		record.Environment = environment
	}
	if in.Genre != nil {
		genre := strings.ToLower(strings.TrimSpace(*in.Genre))
		if genre != "" && !model.IsValidGenre(genre) {
			return nil, newValidationError("genre", "unknown genre: "+genre)
		}
		record.Genre = genre
	}
	if in.Artist != nil {
		record.Artist = strings.TrimSpace(*in.Artist)
	}
	if in.Album != nil {
		record.Album = strings.TrimSpace(*in.Album)
	}
	if in.Tags != nil {
		tags := make([]string, 0, len(*in.Tags))
		seen := make(map[string]bool)
		for _, tag := range *in.Tags {
			tag = strings.ToLower(strings.TrimSpace(tag))
			if tag == "" || seen[tag] {
				continue
			}
			if len(tag) > 30 {
				return nil, newValidationError("tags", "tag must be at most 30 characters: "+tag)
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
		record.Tags = tags
	}
	if in.IsPublic != nil {
		record.IsPublic = *in.IsPublic
	}

	if err := s.records.Update(ctx, record); err != nil {
		return nil, err
	}
	return Project(record, s.backend), nil
}

// Delete removes a record owned by callerID: the record is deactivated
// first, then the stored object is deleted. The object delete is issued
// exactly once and never blocks the record deletion; a failed cleanup is
// logged and swallowed.
func (s *Service) Delete(ctx context.Context, callerID, id int64) error {
	record, err := s.ownedRecord(ctx, callerID, id)
	if err != nil {
		return err
	}

	if err := s.records.Deactivate(ctx, id); err != nil {
		return err
	}

	if err := s.backend.Remove(ctx, record.StorageKey); err != nil {
		logger.Error("failed to remove stored object for deleted record",
			logger.Int64("recordId", id),
			logger.String("storageKey", record.StorageKey),
			logger.ErrorField(err))
	}
	return nil
}

// Play bumps the play counter of a visible record. Best-effort: lost
// updates under concurrent plays are accepted.
func (s *Service) Play(ctx context.Context, viewerID, id int64) error {
	if _, err := s.visibleRecord(ctx, viewerID, id); err != nil {
		return err
	}
	return s.records.IncrementPlayCount(ctx, id)
}

func (s *Service) visibleRecord(ctx context.Context, viewerID, id int64) (*model.AudioRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil || (!record.IsPublic && record.OwnerID != viewerID) {
		return nil, ErrNotFound
	}
	return record, nil
}

func (s *Service) ownedRecord(ctx context.Context, callerID, id int64) (*model.AudioRecord, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil || record.OwnerID != callerID {
		return nil, ErrNotFound
	}
	return record, nil
}
