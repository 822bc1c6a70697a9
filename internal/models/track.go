package models

import "time"

// Track represents an uploaded audio track.
type Track struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Artist        *string   `json:"artist,omitempty"`
	Duration      string    `json:"duration"`
	AudioFileURL  string    `json:"audioFileUrl"`
	CoverImageURL *string   `json:"coverImageUrl,omitempty"`
	AuthorID      string    `json:"authorId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// HasLiked is resolved per request for the authenticated caller.
	HasLiked bool `json:"hasLiked"`
}
