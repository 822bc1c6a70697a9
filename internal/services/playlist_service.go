package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shubhswain45/connectify-server-app/internal/dbx"
	"github.com/shubhswain45/connectify-server-app/internal/models"
	"github.com/shubhswain45/connectify-server-app/internal/storage"
)

// CreatePlaylistPayload defines the structure for playlist creation requests.
type CreatePlaylistPayload struct {
	Name          string   `json:"name"`
	CoverImageURL string   `json:"coverImageUrl"`
	Visibility    string   `json:"visibility"`
	Tracks        []string `json:"tracks"`
}

// PlaylistServiceProvider defines the interface for playlist services.
type PlaylistServiceProvider interface {
	CreatePlaylist(ctx context.Context, authorID string, payload CreatePlaylistPayload) (*models.Playlist, error)
	GetPlaylistByID(ctx context.Context, id, callerID string) (*models.Playlist, error)
	GetUserPlaylists(ctx context.Context, userID, callerID string) ([]models.Playlist, error)
}

// PlaylistService provides business logic for playlist management.
type PlaylistService struct {
	db    *sql.DB
	media storage.MediaStore
}

// NewPlaylistService creates a new PlaylistService.
func NewPlaylistService(db *sql.DB, media storage.MediaStore) *PlaylistService {
	return &PlaylistService{db: db, media: media}
}

// CreatePlaylist re-hosts the cover image and stores the playlist together
// with its ordered track links in one transaction.
func (s *PlaylistService) CreatePlaylist(ctx context.Context, authorID string, payload CreatePlaylistPayload) (*models.Playlist, error) {
	if payload.Visibility != models.VisibilityPublic && payload.Visibility != models.VisibilityPrivate {
		return nil, ErrInvalidVisibility
	}

	coverURL, err := s.media.Upload(ctx, payload.CoverImageURL)
	if err != nil {
		return nil, fmt.Errorf("uploading cover image: %w", err)
	}

	playlist := &models.Playlist{
		ID:            uuid.New().String(),
		Name:          payload.Name,
		CoverImageURL: coverURL,
		Visibility:    payload.Visibility,
		AuthorID:      authorID,
		TrackIDs:      payload.Tracks,
		CreatedAt:     time.Now(),
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO playlists (id, name, cover_image_url, visibility, author_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			playlist.ID, playlist.Name, playlist.CoverImageURL, playlist.Visibility,
			playlist.AuthorID, playlist.CreatedAt)
		if err != nil {
			return err
		}

		for i, trackID := range payload.Tracks {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO playlist_tracks (playlist_id, track_id, position) VALUES (?, ?, ?)",
				playlist.ID, trackID, i)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating playlist: %w", err)
	}

	return playlist, nil
}

// GetPlaylistByID retrieves a playlist. Private playlists are visible to
// their author only; everyone else gets a not-found, so private names do
// not leak.
func (s *PlaylistService) GetPlaylistByID(ctx context.Context, id, callerID string) (*models.Playlist, error) {
	var playlist models.Playlist
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, cover_image_url, visibility, author_id, created_at
		 FROM playlists WHERE id = ?`, id).
		Scan(&playlist.ID, &playlist.Name, &playlist.CoverImageURL,
			&playlist.Visibility, &playlist.AuthorID, &playlist.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if playlist.Visibility == models.VisibilityPrivate && playlist.AuthorID != callerID {
		return nil, ErrNotFound
	}

	trackIDs, err := s.playlistTrackIDs(ctx, playlist.ID)
	if err != nil {
		return nil, err
	}
	playlist.TrackIDs = trackIDs

	return &playlist, nil
}

// GetUserPlaylists lists a user's playlists, including private ones when
// the caller is the owner.
func (s *PlaylistService) GetUserPlaylists(ctx context.Context, userID, callerID string) ([]models.Playlist, error) {
	query := `SELECT id, name, cover_image_url, visibility, author_id, created_at
		 FROM playlists WHERE author_id = ?`
	args := []any{userID}
	if userID != callerID {
		query += " AND visibility = ?"
		args = append(args, models.VisibilityPublic)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		var playlist models.Playlist
		if err := rows.Scan(&playlist.ID, &playlist.Name, &playlist.CoverImageURL,
			&playlist.Visibility, &playlist.AuthorID, &playlist.CreatedAt); err != nil {
			return nil, err
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range playlists {
		trackIDs, err := s.playlistTrackIDs(ctx, playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].TrackIDs = trackIDs
	}

	return playlists, nil
}

func (s *PlaylistService) playlistTrackIDs(ctx context.Context, playlistID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT track_id FROM playlist_tracks WHERE playlist_id = ? ORDER BY position", playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
