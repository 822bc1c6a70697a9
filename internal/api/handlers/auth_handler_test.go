package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shubhswain45/connectify-server-app/internal/auth"
	"github.com/shubhswain45/connectify-server-app/internal/models"
	"github.com/shubhswain45/connectify-server-app/internal/services"
)

// fakeAuthService returns canned results per operation.
type fakeAuthService struct {
	user *models.User
	err  error
}

func (f *fakeAuthService) Signup(context.Context, services.SignupPayload) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeAuthService) Login(context.Context, services.LoginPayload) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeAuthService) VerifyEmail(context.Context, services.VerifyEmailPayload) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeAuthService) ForgotPassword(context.Context, string) error { return f.err }

func (f *fakeAuthService) ResetPassword(context.Context, services.ResetPasswordPayload) error {
	return f.err
}

func (f *fakeAuthService) GetUserByID(context.Context, string) (*models.User, error) {
	return f.user, f.err
}

func newAuthHandler(svc services.AuthServiceProvider) *AuthHandler {
	return NewAuthHandler(svc, auth.NewService("test-secret"))
}

func TestSignupHandler_SetsSessionCookie(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{user: &models.User{ID: "u1", Username: "alice"}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"username":"alice","fullName":"Alice A","email":"a@x.com","password":"pw123456"}`))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestSignupHandler_Conflict(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{err: services.ErrUsernameTaken})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"username":"alice"}`))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "username is already in use")
}

func TestSignupHandler_BadBody(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.Signup(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{err: services.ErrInvalidCredentials})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"usernameOrEmail":"alice","password":"wrongpw"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginHandler_HidesInternalErrors(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{err: errors.New("pq: connection refused")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"usernameOrEmail":"alice","password":"pw"}`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "something went wrong")
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestLogoutHandler_ClearsCookie(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestGetMeHandler_Anonymous(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()

	h.GetMe(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
}

func TestGetMeHandler_Authenticated(t *testing.T) {
	h := newAuthHandler(&fakeAuthService{user: &models.User{ID: "u1", Username: "alice"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	ctx := context.WithValue(req.Context(), auth.UserClaimsKey, &auth.Claims{UserID: "u1", Username: "alice"})
	rec := httptest.NewRecorder()

	h.GetMe(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}
