package audio

import (
	"time"

	"github.com/code-harsh006/new-backend/model"
	"github.com/code-harsh006/new-backend/storage"
)

// Response is the outward shape of an audio record. The storage key stays
// internal; callers get an addressable URL resolved at response time.
type Response struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	URL              string    `json:"url"`
	OriginalFilename string    `json:"originalFilename"`
	FileSizeBytes    int64     `json:"fileSizeBytes"`
	MimeType         string    `json:"mimeType"`
	DurationSeconds  float64   `json:"durationSeconds,omitempty"`
	Mood             string    `json:"mood"`
	Environment      string    `json:"environment"`
	Genre            string    `json:"genre,omitempty"`
	Artist           string    `json:"artist,omitempty"`
	Album            string    `json:"album,omitempty"`
	Tags             []string  `json:"tags"`
	OwnerID          int64     `json:"ownerId"`
	IsPublic         bool      `json:"isPublic"`
	PlayCount        int64     `json:"playCount"`
	Likes            int64     `json:"likes"`
	Shares           int64     `json:"shares"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Project maps a record to its response shape, resolving the storage key
// to a fresh URL. Pure function: the entity stays plain data.
func Project(record *model.AudioRecord, backend storage.Backend) *Response {
	tags := record.Tags
	if tags == nil {
		tags = model.StringList{}
	}
	return &Response{
		ID:               record.ID,
		Title:            record.Title,
		Description:      record.Description,
		URL:              backend.Resolve(record.StorageKey),
		OriginalFilename: record.OriginalFilename,
		FileSizeBytes:    record.FileSizeBytes,
		MimeType:         record.MimeType,
		DurationSeconds:  record.DurationSeconds,
		Mood:             record.Mood,
		Environment:      record.Environment,
		Genre:            record.Genre,
		Artist:           record.Artist,
		Album:            record.Album,
		Tags:             tags,
		OwnerID:          record.OwnerID,
		IsPublic:         record.IsPublic,
		PlayCount:        record.PlayCount,
		Likes:            record.Likes,
		Shares:           record.Shares,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
	}
}

func (s *Service) projectAll(records []*model.AudioRecord) []*Response {
	out := make([]*Response, 0, len(records))
	for _, record := range records {
		out = append(out, Project(record, s.backend))
	}
	return out
}
