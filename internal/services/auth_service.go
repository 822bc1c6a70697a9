package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/shubhswain45/connectify-server-app/internal/mailer"
	"github.com/shubhswain45/connectify-server-app/internal/models"
)

const (
	verificationCodeValidity = 24 * time.Hour
	resetTokenValidity       = 1 * time.Hour
	resetTokenBytes          = 20
)

// SignupPayload defines the structure for signup requests.
type SignupPayload struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// VerifyEmailPayload defines the structure for email verification requests.
type VerifyEmailPayload struct {
	Code  string `json:"code"`
	Email string `json:"email"`
}

// ResetPasswordPayload defines the structure for password reset requests.
type ResetPasswordPayload struct {
	Token           string `json:"token"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthServiceProvider defines the interface for the auth lifecycle.
type AuthServiceProvider interface {
	Signup(ctx context.Context, payload SignupPayload) (*models.User, error)
	Login(ctx context.Context, payload LoginPayload) (*models.User, error)
	VerifyEmail(ctx context.Context, payload VerifyEmailPayload) (*models.User, error)
	ForgotPassword(ctx context.Context, emailOrUsername string) error
	ResetPassword(ctx context.Context, payload ResetPasswordPayload) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService orchestrates signup, login, email verification and password
// reset against the user store and the mailer.
type AuthService struct {
	db          *sql.DB
	mailer      mailer.Mailer
	frontendURL string
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *sql.DB, m mailer.Mailer, frontendURL string) *AuthService {
	return &AuthService{db: db, mailer: m, frontendURL: frontendURL}
}

const userColumns = `id, username, email, full_name, password_hash, is_verified,
	verification_code, verification_expires_at, reset_token, reset_expires_at,
	profile_image_url, bio, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.PasswordHash, &user.IsVerified,
		&user.VerificationCode, &user.VerificationExpiresAt,
		&user.ResetToken, &user.ResetExpiresAt,
		&user.ProfileImageURL, &user.Bio, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Signup registers a new account, stores a 6-digit verification code and
// sends the verification email. The email send is awaited: a delivery
// failure fails the signup response even though the row is already created.
func (s *AuthService) Signup(ctx context.Context, payload SignupPayload) (*models.User, error) {
	var existingUsername, existingEmail string
	err := s.db.QueryRowContext(ctx,
		"SELECT username, email FROM users WHERE username = ? OR email = ?",
		payload.Username, payload.Email).Scan(&existingUsername, &existingEmail)
	if err == nil {
		if existingUsername == payload.Username {
			return nil, ErrUsernameTaken
		}
		return nil, ErrEmailTaken
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}
	expiresAt := time.Now().Add(verificationCodeValidity)

	user := &models.User{
		ID:                    uuid.New().String(),
		Username:              payload.Username,
		Email:                 payload.Email,
		FullName:              payload.FullName,
		PasswordHash:          string(hashedPassword),
		IsVerified:            false,
		VerificationCode:      &code,
		VerificationExpiresAt: &expiresAt,
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, full_name, password_hash, is_verified,
			verification_code, verification_expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.FullName, user.PasswordHash,
		code, expiresAt, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if err := mailer.SendVerificationEmail(ctx, s.mailer, user.Email, code); err != nil {
		return nil, fmt.Errorf("sending verification email: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User signed up")
	return user, nil
}

// Login authenticates a user by username or email.
func (s *AuthService) Login(ctx context.Context, payload LoginPayload) (*models.User, error) {
	user, err := s.getUserByUsernameOrEmail(ctx, payload.UsernameOrEmail)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// VerifyEmail marks the account verified when the submitted code matches
// and has not expired. The welcome email is fire-and-forget.
func (s *AuthService) VerifyEmail(ctx context.Context, payload VerifyEmailPayload) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", payload.Email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}

	if user.IsVerified {
		return nil, ErrAlreadyVerified
	}
	if user.VerificationCode == nil || *user.VerificationCode != payload.Code {
		return nil, ErrInvalidCode
	}
	if user.VerificationExpiresAt != nil && user.VerificationExpiresAt.Before(time.Now()) {
		return nil, ErrCodeExpired
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET is_verified = 1, verification_code = NULL,
			verification_expires_at = NULL, updated_at = ? WHERE id = ?`,
		time.Now(), user.ID)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	user.IsVerified = true
	user.VerificationCode = nil
	user.VerificationExpiresAt = nil

	if err := mailer.SendWelcomeEmail(ctx, s.mailer, user.Email, user.Username); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to send welcome email")
	}

	return user, nil
}

// ForgotPassword stores a fresh reset token and mails the reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, emailOrUsername string) error {
	user, err := s.getUserByUsernameOrEmail(ctx, emailOrUsername)
	if err != nil {
		return err
	}

	token, err := makeRandHexString(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiresAt := time.Now().Add(resetTokenValidity)

	_, err = s.db.ExecContext(ctx,
		"UPDATE users SET reset_token = ?, reset_expires_at = ?, updated_at = ? WHERE id = ?",
		token, expiresAt, time.Now(), user.ID)
	if err != nil {
		return fmt.Errorf("storing reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token)
	if err := mailer.SendPasswordResetEmail(ctx, s.mailer, user.Email, resetURL); err != nil {
		return fmt.Errorf("sending reset email: %w", err)
	}

	return nil
}

// ResetPassword completes a password reset. The confirmation email is
// fire-and-forget.
func (s *AuthService) ResetPassword(ctx context.Context, payload ResetPasswordPayload) error {
	if payload.NewPassword != payload.ConfirmPassword {
		return ErrPasswordMismatch
	}

	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE reset_token = ?", payload.Token))
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrInvalidOrExpiredToken
		}
		return fmt.Errorf("finding user by reset token: %w", err)
	}

	if user.ResetExpiresAt == nil || !user.ResetExpiresAt.After(time.Now()) {
		return ErrInvalidOrExpiredToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, reset_token = NULL,
			reset_expires_at = NULL, updated_at = ? WHERE id = ?`,
		string(hashedPassword), time.Now(), user.ID)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	if err := mailer.SendResetSuccessEmail(ctx, s.mailer, user.Email); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to send reset confirmation email")
	}

	return nil
}

// GetUserByID retrieves a single user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) getUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*models.User, error) {
	user, err := scanUser(s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ? OR email = ?",
		usernameOrEmail, usernameOrEmail))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return user, nil
}

// generateVerificationCode draws a uniform 6-digit code from crypto/rand.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// makeRandHexString generates a random hexadecimal string of size random
// bytes (the final string is twice as long).
func makeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
