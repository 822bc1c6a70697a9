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

// CreateTrackPayload defines the structure for track creation requests.
type CreateTrackPayload struct {
	Title         string  `json:"title"`
	AudioFileURL  string  `json:"audioFileUrl"`
	CoverImageURL *string `json:"coverImageUrl"`
	Artist        *string `json:"artist"`
	Duration      string  `json:"duration"`
}

// TrackServiceProvider defines the interface for track services.
type TrackServiceProvider interface {
	CreateTrack(ctx context.Context, authorID string, payload CreateTrackPayload) (*models.Track, error)
	GetTrackByID(ctx context.Context, id, callerID string) (*models.Track, error)
	GetFeedTracks(ctx context.Context, callerID string) ([]models.Track, error)
	DeleteTrack(ctx context.Context, id, callerID string) error
	ToggleLike(ctx context.Context, userID, trackID string) (bool, error)
}

// TrackService provides business logic for track management.
type TrackService struct {
	db    *sql.DB
	media storage.MediaStore
}

// NewTrackService creates a new TrackService.
func NewTrackService(db *sql.DB, media storage.MediaStore) *TrackService {
	return &TrackService{db: db, media: media}
}

// CreateTrack re-hosts the submitted audio (and cover, if any) on the media
// store and persists the track under the authenticated author.
func (s *TrackService) CreateTrack(ctx context.Context, authorID string, payload CreateTrackPayload) (*models.Track, error) {
	audioURL, err := s.media.Upload(ctx, payload.AudioFileURL)
	if err != nil {
		return nil, fmt.Errorf("uploading audio: %w", err)
	}

	var coverURL *string
	if payload.CoverImageURL != nil && *payload.CoverImageURL != "" {
		hosted, err := s.media.Upload(ctx, *payload.CoverImageURL)
		if err != nil {
			return nil, fmt.Errorf("uploading cover image: %w", err)
		}
		coverURL = &hosted
	}

	track := &models.Track{
		ID:            uuid.New().String(),
		Title:         payload.Title,
		Artist:        payload.Artist,
		Duration:      payload.Duration,
		AudioFileURL:  audioURL,
		CoverImageURL: coverURL,
		AuthorID:      authorID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tracks (id, title, artist, duration, audio_file_url, cover_image_url,
			author_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		track.ID, track.Title, track.Artist, track.Duration, track.AudioFileURL,
		track.CoverImageURL, track.AuthorID, track.CreatedAt, track.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("creating track: %w", err)
	}

	return track, nil
}

const trackColumns = `t.id, t.title, t.artist, t.duration, t.audio_file_url,
	t.cover_image_url, t.author_id, t.created_at, t.updated_at`

// GetTrackByID retrieves a single track, resolving hasLiked for the caller.
// callerID may be empty for anonymous requests.
func (s *TrackService) GetTrackByID(ctx context.Context, id, callerID string) (*models.Track, error) {
	var track models.Track
	err := s.db.QueryRowContext(ctx,
		`SELECT `+trackColumns+`,
			EXISTS(SELECT 1 FROM likes l WHERE l.track_id = t.id AND l.user_id = ?)
		 FROM tracks t WHERE t.id = ?`, callerID, id).
		Scan(&track.ID, &track.Title, &track.Artist, &track.Duration,
			&track.AudioFileURL, &track.CoverImageURL, &track.AuthorID,
			&track.CreatedAt, &track.UpdatedAt, &track.HasLiked)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &track, nil
}

// GetFeedTracks returns recent tracks, newest first.
func (s *TrackService) GetFeedTracks(ctx context.Context, callerID string) ([]models.Track, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+trackColumns+`,
			EXISTS(SELECT 1 FROM likes l WHERE l.track_id = t.id AND l.user_id = ?)
		 FROM tracks t ORDER BY t.created_at DESC LIMIT 50`, callerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []models.Track
	for rows.Next() {
		var track models.Track
		if err := rows.Scan(&track.ID, &track.Title, &track.Artist, &track.Duration,
			&track.AudioFileURL, &track.CoverImageURL, &track.AuthorID,
			&track.CreatedAt, &track.UpdatedAt, &track.HasLiked); err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, rows.Err()
}

// DeleteTrack removes a track and its likes. Only the author may delete.
func (s *TrackService) DeleteTrack(ctx context.Context, id, callerID string) error {
	var authorID string
	err := s.db.QueryRowContext(ctx, "SELECT author_id FROM tracks WHERE id = ?", id).Scan(&authorID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	if authorID != callerID {
		return ErrForbidden
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM likes WHERE track_id = ?", id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM playlist_tracks WHERE track_id = ?", id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM tracks WHERE id = ?", id)
		return err
	})
}

// ToggleLike flips the like relation for (userID, trackID) and returns the
// new state. Delete and insert run in one transaction so two concurrent
// toggles cannot both observe "absent" and double-insert.
func (s *TrackService) ToggleLike(ctx context.Context, userID, trackID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM tracks WHERE id = ?", trackID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, ErrNotFound
		}
		return false, err
	}

	var liked bool
	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			"DELETE FROM likes WHERE user_id = ? AND track_id = ?", userID, trackID)
		if err != nil {
			return err
		}
		deleted, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if deleted > 0 {
			liked = false
			return nil
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO likes (user_id, track_id) VALUES (?, ?)", userID, trackID)
		if err != nil {
			return err
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return liked, nil
}
