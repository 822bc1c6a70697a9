package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/shubhswain45/connectify-server-app/internal/auth"
	"github.com/shubhswain45/connectify-server-app/internal/services"
)

// AuthHandler handles HTTP requests for the auth lifecycle.
type AuthHandler struct {
	service services.AuthServiceProvider
	tokens  *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider, tokens *auth.Service) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens}
}

// Signup handles new user registration. On success a session cookie is set
// and the created user returned.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload services.SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.Signup(r.Context(), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate session token")
		writeServiceError(w, err)
		return
	}
	auth.SetSessionCookie(w, token)

	respondJSON(w, http.StatusCreated, user)
}

// Login handles authentication by username or email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload services.LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.Login(r.Context(), payload)
	if err != nil {
		log.Warn().Err(err).Str("username_or_email", payload.UsernameOrEmail).Msg("Failed authentication attempt")
		writeServiceError(w, err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate session token")
		writeServiceError(w, err)
		return
	}
	auth.SetSessionCookie(w, token)

	respondJSON(w, http.StatusOK, user)
}

// Logout instructs the client to discard the session cookie. The token is
// stateless, so the server holds nothing to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, true)
}

// VerifyEmail confirms control of an email address with the 6-digit code.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var payload services.VerifyEmailPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.service.VerifyEmail(r.Context(), payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// ForgotPassword starts the password-reset flow.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		EmailOrUsername string `json:"emailOrUsername"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ForgotPassword(r.Context(), payload.EmailOrUsername); err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, true)
}

// ResetPassword completes the password-reset flow.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload services.ResetPasswordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ResetPassword(r.Context(), payload); err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, true)
}

// GetMe retrieves the currently authenticated user from the session token.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusOK, nil)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
