package models

import "time"

// User represents a user account in the system.
type User struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	PasswordHash    string    `json:"-"` // Never expose this to the client
	IsVerified      bool      `json:"isVerified"`
	ProfileImageURL *string   `json:"profileImageURL,omitempty"`
	Bio             *string   `json:"bio,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`

	// Verification code and reset token live on the user row. Each value
	// and its expiry are set and cleared together.
	VerificationCode      *string    `json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	ResetToken            *string    `json:"-"`
	ResetExpiresAt        *time.Time `json:"-"`
}

// UserProfile is the public view of a user, with aggregate counters
// resolved for the requesting caller.
type UserProfile struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	FullName        string  `json:"fullName"`
	ProfileImageURL *string `json:"profileImageURL,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	TotalTracks     int     `json:"totalTracks"`
	TotalFollowers  int     `json:"totalFollowers"`
	TotalFollowings int     `json:"totalFollowings"`
	FollowedByMe    bool    `json:"followedByMe"`
}
