package model

import "strings"

// Moods accepted for an audio record.
var Moods = []string{
	"happy", "sad", "energetic", "calm", "relaxed",
	"focused", "romantic", "melancholic", "angry", "nostalgic",
	"dreamy", "uplifting", "dark", "peaceful", "intense",
}

// Environments accepted for an audio record.
var Environments = []string{
	"home", "office", "gym", "car", "party", "nature", "beach", "city",
	"night", "morning", "rain", "study", "travel", "workout", "sleep", "cafe",
}

// Genres accepted for an audio record.
var Genres = []string{
	"pop", "rock", "jazz", "classical", "electronic",
	"hiphop", "ambient", "folk", "blues", "country",
	"metal", "reggae", "rnb", "latin", "indie",
}

// AllowedMimeTypes are the declared content types accepted for uploads.
var AllowedMimeTypes = []string{
	"audio/mpeg", "audio/mp3", "audio/wav", "audio/x-wav",
	"audio/mp4", "audio/aac", "audio/ogg", "audio/flac", "audio/webm",
}

// AllowedExtensions are the file extensions accepted for uploads.
var AllowedExtensions = []string{
	".mp3", ".wav", ".m4a", ".aac", ".ogg", ".flac", ".webm",
}

func contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

// IsValidMood reports whether mood belongs to the mood set.
// Comparison is done on the lower-cased value.
func IsValidMood(mood string) bool {
	return contains(Moods, strings.ToLower(mood))
}

// IsValidEnvironment reports whether environment belongs to the environment set.
func IsValidEnvironment(environment string) bool {
	return contains(Environments, strings.ToLower(environment))
}

// IsValidGenre reports whether genre belongs to the genre set.
func IsValidGenre(genre string) bool {
	return contains(Genres, strings.ToLower(genre))
}

// IsAllowedMimeType reports whether the declared content type is on the audio allow-list.
func IsAllowedMimeType(mimeType string) bool {
	return contains(AllowedMimeTypes, strings.ToLower(mimeType))
}

// IsAllowedExtension reports whether the file extension is on the audio allow-list.
func IsAllowedExtension(ext string) bool {
	return contains(AllowedExtensions, strings.ToLower(ext))
}
