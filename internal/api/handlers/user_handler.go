package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shubhswain45/connectify-server-app/internal/auth"
	"github.com/shubhswain45/connectify-server-app/internal/services"
)

// UserHandler handles HTTP requests for user profiles and follows.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// Follow toggles the follow relation between the caller and the target
// user, returning the new state.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	targetID := chi.URLParam(r, "id")

	following, err := h.service.ToggleFollow(r.Context(), claims.UserID, targetID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, following)
}

// GetProfile returns the public profile for a username. Works for anonymous
// callers; followedByMe is then always false.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var callerID string
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		callerID = claims.UserID
	}

	profile, err := h.service.GetUserProfile(r.Context(), username, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
