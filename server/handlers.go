package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/code-harsh006/new-backend/config"
	"github.com/code-harsh006/new-backend/core/audio"
	"github.com/code-harsh006/new-backend/core/auth"
	"github.com/code-harsh006/new-backend/logger"
	"github.com/code-harsh006/new-backend/repository"
	"github.com/code-harsh006/new-backend/storage"
)

// APIHandler handles all API requests.
type APIHandler struct {
	audioService *audio.Service
	userRepo     repository.UserRepository
	tokens       *auth.TokenIssuer
	backend      storage.Backend
	cfg          *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	audioService *audio.Service,
	userRepo repository.UserRepository,
	tokens *auth.TokenIssuer,
	backend storage.Backend,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		audioService: audioService,
		userRepo:     userRepo,
		tokens:       tokens,
		backend:      backend,
		cfg:          cfg,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps domain errors to HTTP responses. Validation failures
// carry field detail; absent and invisible records both map to 404;
// everything unclassified degrades to a generic 500 in production.
func (h *APIHandler) writeError(w http.ResponseWriter, err error) {
	var validationErr *audio.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "validation failed",
			"field":  validationErr.Field,
			"detail": validationErr.Message,
		})
	case errors.Is(err, audio.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Audio record not found")
	case errors.Is(err, repository.ErrDuplicateUser):
		writeMessage(w, http.StatusConflict, "Username or email already exists")
	default:
		logger.Error("request failed", logger.ErrorField(err))
		if h.cfg.IsProduction() {
			writeMessage(w, http.StatusInternalServerError, "Internal server error")
		} else {
			writeMessage(w, http.StatusInternalServerError, err.Error())
		}
	}
}
