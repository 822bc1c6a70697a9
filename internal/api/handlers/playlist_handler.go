package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shubhswain45/connectify-server-app/internal/auth"
	"github.com/shubhswain45/connectify-server-app/internal/services"
)

// PlaylistHandler handles HTTP requests for playlists.
type PlaylistHandler struct {
	service services.PlaylistServiceProvider
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(service services.PlaylistServiceProvider) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

// Create handles playlist creation for the authenticated caller.
func (h *PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var payload services.CreatePlaylistPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Name == "" || payload.CoverImageURL == "" {
		http.Error(w, "name and coverImageUrl are required", http.StatusBadRequest)
		return
	}

	playlist, err := h.service.CreatePlaylist(r.Context(), claims.UserID, payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, playlist)
}

// Get retrieves a single playlist, respecting its visibility.
func (h *PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var callerID string
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		callerID = claims.UserID
	}

	playlist, err := h.service.GetPlaylistByID(r.Context(), id, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, playlist)
}

// GetForUser lists a user's playlists, including private ones for the owner.
func (h *PlaylistHandler) GetForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var callerID string
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		callerID = claims.UserID
	}

	playlists, err := h.service.GetUserPlaylists(r.Context(), userID, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, playlists)
}
