package services

import (
	"context"
	"database/sql"

	"github.com/shubhswain45/connectify-server-app/internal/dbx"
	"github.com/shubhswain45/connectify-server-app/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error)
	GetUserProfile(ctx context.Context, username, callerID string) (*models.UserProfile, error)
}

// UserService provides business logic for the social side of user accounts.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// ToggleFollow flips the follow relation for (followerID, followingID) and
// returns the new state. Delete and insert run in one transaction so two
// concurrent toggles cannot both observe "absent" and double-insert.
func (s *UserService) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id = ?", followingID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, ErrNotFound
		}
		return false, err
	}

	var following bool
	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx,
			"DELETE FROM follows WHERE follower_id = ? AND following_id = ?",
			followerID, followingID)
		if err != nil {
			return err
		}
		deleted, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if deleted > 0 {
			following = false
			return nil
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO follows (follower_id, following_id) VALUES (?, ?)",
			followerID, followingID)
		if err != nil {
			return err
		}
		following = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return following, nil
}

// GetUserProfile returns the public profile for a username, with aggregate
// counters and followedByMe resolved for the caller. callerID may be empty.
func (s *UserService) GetUserProfile(ctx context.Context, username, callerID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.QueryRowContext(ctx,
		`SELECT u.id, u.username, u.full_name, u.profile_image_url, u.bio,
			(SELECT COUNT(*) FROM tracks t WHERE t.author_id = u.id),
			(SELECT COUNT(*) FROM follows f WHERE f.following_id = u.id),
			(SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id),
			EXISTS(SELECT 1 FROM follows f WHERE f.follower_id = ? AND f.following_id = u.id)
		 FROM users u WHERE u.username = ?`, callerID, username).
		Scan(&profile.ID, &profile.Username, &profile.FullName,
			&profile.ProfileImageURL, &profile.Bio,
			&profile.TotalTracks, &profile.TotalFollowers, &profile.TotalFollowings,
			&profile.FollowedByMe)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}
