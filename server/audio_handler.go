package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/code-harsh006/new-backend/core/audio"
	"github.com/code-harsh006/new-backend/logger"
)

// UploadHandler handles multipart audio uploads.
// Expected form fields:
// - audioFile: the audio file (required)
// - title, mood, environment: required metadata
// - description, genre, artist, album, tags, durationSeconds, isPublic: optional
func (h *APIHandler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Cap the request body a little above the file limit to leave room for
	// the other form fields.
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxFileSize+1<<20)
	if err := r.ParseMultipartForm(h.cfg.MaxFileSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			writeMessage(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeMessage(w, http.StatusBadRequest, "Failed to parse upload form")
		return
	}

	file, header, err := r.FormFile("audioFile")
	if err != nil {
		if err == http.ErrMissingFile {
			writeMessage(w, http.StatusBadRequest, "Missing audio file. Please select a file to upload.")
		} else {
			writeMessage(w, http.StatusBadRequest, "Failed to process uploaded file")
		}
		return
	}
	defer file.Close()

	var duration float64
	if v := r.FormValue("durationSeconds"); v != "" {
		duration, err = strconv.ParseFloat(v, 64)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "Invalid durationSeconds")
			return
		}
	}

	var tags []string
	if v := r.FormValue("tags"); v != "" {
		tags = strings.Split(v, ",")
	}

	in := audio.UploadInput{
		File:             file,
		Size:             header.Size,
		ContentType:      header.Header.Get("Content-Type"),
		OriginalFilename: header.Filename,
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		Mood:             r.FormValue("mood"),
		Environment:      r.FormValue("environment"),
		Genre:            r.FormValue("genre"),
		Artist:           r.FormValue("artist"),
		Album:            r.FormValue("album"),
		Tags:             tags,
		DurationSeconds:  duration,
		IsPublic:         r.FormValue("isPublic") == "true",
	}

	record, err := h.audioService.Upload(r.Context(), userID, in)
	if err != nil {
		h.writeError(w, err)
		return
	}

	logger.Info("audio uploaded",
		logger.Int64("recordId", record.ID),
		logger.Int64("userId", userID),
		logger.Int64("sizeBytes", record.FileSizeBytes))

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"record": audio.Project(record, h.backend),
	})
}

func pageFromQuery(r *http.Request) audio.PageRequest {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return audio.PageRequest{Page: page, Limit: limit}
}

// MyAudioHandler lists the caller's own records.
func (h *APIHandler) MyAudioHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	records, pagination, err := h.audioService.ByOwner(r.Context(), userID, pageFromQuery(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records":    records,
		"pagination": pagination,
	})
}

// PlaylistHandler filters visible records by mood/environment/genre/text.
func (h *APIHandler) PlaylistHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := audio.PlaylistFilter{
		Mood:        query.Get("mood"),
		Environment: query.Get("environment"),
		Genre:       query.Get("genre"),
		Text:        query.Get("q"),
	}

	records, pagination, err := h.audioService.Playlist(
		r.Context(), ViewerIDFromContext(r.Context()), filter, pageFromQuery(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records":    records,
		"pagination": pagination,
	})
}

// TrendingHandler returns the most played public records of the last week.
func (h *APIHandler) TrendingHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.audioService.Trending(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
	})
}

// GetAudioHandler returns a single record subject to the visibility rule.
func (h *APIHandler) GetAudioHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	record, err := h.audioService.ByID(r.Context(), ViewerIDFromContext(r.Context()), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"record": record,
	})
}

// UpdateAudioRequest is the partial-update request body; absent fields are
// left unchanged.
type UpdateAudioRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Mood        *string   `json:"mood"`
	Environment *string   `json:"environment"`
	Genre       *string   `json:"genre"`
	Artist      *string   `json:"artist"`
	Album       *string   `json:"album"`
	Tags        *[]string `json:"tags"`
	IsPublic    *bool     `json:"isPublic"`
}

// UpdateAudioHandler applies an owner-only partial update.
func (h *APIHandler) UpdateAudioHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	var req UpdateAudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, err := h.audioService.Update(r.Context(), userID, id, audio.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Mood:        req.Mood,
		Environment: req.Environment,
		Genre:       req.Genre,
		Artist:      req.Artist,
		Album:       req.Album,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"record": record,
	})
}

// DeleteAudioHandler deactivates an owned record and removes its stored
// object.
func (h *APIHandler) DeleteAudioHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	if err := h.audioService.Delete(r.Context(), userID, id); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Audio record deleted",
	})
}

// PlayHandler bumps the play counter of a visible record.
func (h *APIHandler) PlayHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid record ID")
		return
	}

	if err := h.audioService.Play(r.Context(), ViewerIDFromContext(r.Context()), id); err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Play recorded",
	})
}
