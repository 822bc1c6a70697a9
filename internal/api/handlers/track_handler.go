package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shubhswain45/connectify-server-app/internal/auth"
	"github.com/shubhswain45/connectify-server-app/internal/services"
)

// TrackHandler handles HTTP requests for tracks.
type TrackHandler struct {
	service services.TrackServiceProvider
}

// NewTrackHandler creates a new TrackHandler.
func NewTrackHandler(service services.TrackServiceProvider) *TrackHandler {
	return &TrackHandler{service: service}
}

// Create handles track creation for the authenticated caller.
func (h *TrackHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())

	var payload services.CreateTrackPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if payload.Title == "" || payload.AudioFileURL == "" || payload.Duration == "" {
		http.Error(w, "title, audioFileUrl and duration are required", http.StatusBadRequest)
		return
	}

	track, err := h.service.CreateTrack(r.Context(), claims.UserID, payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, track)
}

// Get retrieves a single track by its ID.
func (h *TrackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var callerID string
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		callerID = claims.UserID
	}

	track, err := h.service.GetTrackByID(r.Context(), id, callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, track)
}

// GetFeed returns recent tracks, newest first.
func (h *TrackHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	var callerID string
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		callerID = claims.UserID
	}

	tracks, err := h.service.GetFeedTracks(r.Context(), callerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tracks)
}

// Delete removes a track. Only the author may delete their track.
func (h *TrackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteTrack(r.Context(), id, claims.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Like toggles the like relation between the caller and the track,
// returning the new state.
func (h *TrackHandler) Like(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	trackID := chi.URLParam(r, "id")

	liked, err := h.service.ToggleLike(r.Context(), claims.UserID, trackID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, liked)
}
