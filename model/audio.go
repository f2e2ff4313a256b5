package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AudioRecord is the metadata row behind one stored audio object.
// The struct is plain data; projections and validation live outside it.
type AudioRecord struct {
	ID               int64      `json:"id" gorm:"primaryKey"`
	Title            string     `json:"title" gorm:"size:100;not null"`
	Description      string     `json:"description" gorm:"size:500"`
	StorageKey       string     `json:"-" gorm:"size:512;uniqueIndex;not null"`
	OriginalFilename string     `json:"originalFilename" gorm:"size:255"`
	FileSizeBytes    int64      `json:"fileSizeBytes" gorm:"not null"`
	MimeType         string     `json:"mimeType" gorm:"size:120;not null"`
	DurationSeconds  float64    `json:"durationSeconds"`
	Mood             string     `json:"mood" gorm:"size:32;index;not null"`
	Environment      string     `json:"environment" gorm:"size:32;index;not null"`
	Genre            string     `json:"genre,omitempty" gorm:"size:32;index"`
	Artist           string     `json:"artist,omitempty" gorm:"size:100"`
	Album            string     `json:"album,omitempty" gorm:"size:100"`
	Tags             StringList `json:"tags" gorm:"type:text"`
	OwnerID          int64      `json:"ownerId" gorm:"index;not null"`
	IsPublic         bool       `json:"isPublic" gorm:"default:false"`
	IsActive         bool       `json:"isActive" gorm:"default:true;index"`
	PlayCount        int64      `json:"playCount" gorm:"default:0"`
	Likes            int64      `json:"likes" gorm:"default:0"`
	Shares           int64      `json:"shares" gorm:"default:0"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// TableName fixes the table name for GORM.
func (AudioRecord) TableName() string {
	return "audio_records"
}

// StringList stores a string slice as a JSON text column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for string list: %T", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}
