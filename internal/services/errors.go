package services

import "errors"

// Business-rule failures surfaced to the caller. Handlers map these to HTTP
// status codes; anything else is logged and returned as a generic 500 so
// store and mailer internals never leak.
var (
	ErrUsernameTaken         = errors.New("username is already in use")
	ErrEmailTaken            = errors.New("email is already in use")
	ErrNotFound              = errors.New("not found")
	ErrUserNotFound          = errors.New("sorry, user does not exist")
	ErrInvalidCredentials    = errors.New("incorrect password")
	ErrAlreadyVerified       = errors.New("your email is already verified")
	ErrInvalidCode           = errors.New("invalid verification code")
	ErrCodeExpired           = errors.New("verification code has expired")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	ErrInvalidVisibility     = errors.New("visibility must be Public or Private")
	ErrForbidden             = errors.New("you cannot modify another user's resource")
)
