package server

import (
	"net/http"

	"github.com/code-harsh006/new-backend/logger"
)

// MeHandler returns the caller's profile.
func (h *APIHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userRepo.GetUserByID(userID)
	if err != nil {
		logger.Error("failed to load user profile",
			logger.Int64("userId", userID),
			logger.ErrorField(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to get user profile")
		return
	}
	if user == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	profile := map[string]interface{}{
		"id":          user.ID,
		"username":    user.Username,
		"email":       user.Email,
		"uploadCount": user.UploadCount,
		"role":        user.Role,
		"createdAt":   user.CreatedAt,
		"updatedAt":   user.UpdatedAt,
	}
	if user.DisplayName.Valid {
		profile["displayName"] = user.DisplayName.String
	}
	if user.Bio.Valid {
		profile["bio"] = user.Bio.String
	}
	if user.FavoriteGenres.Valid {
		profile["favoriteGenres"] = user.FavoriteGenres.String
	}
	if user.LastLogin.Valid {
		profile["lastLogin"] = user.LastLogin.Time
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": profile,
	})
}
