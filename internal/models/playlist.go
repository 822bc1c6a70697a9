package models

import "time"

// Playlist visibility values.
const (
	VisibilityPublic  = "Public"
	VisibilityPrivate = "Private"
)

// Playlist represents a named, ordered collection of tracks.
type Playlist struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	CoverImageURL string    `json:"coverImageUrl"`
	Visibility    string    `json:"visibility"`
	AuthorID      string    `json:"authorId"`
	TrackIDs      []string  `json:"tracks"`
	CreatedAt     time.Time `json:"createdAt"`
}
