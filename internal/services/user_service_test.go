package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserFixture(t *testing.T) (*UserService, string, string) {
	t.Helper()
	db := newTestDB(t)
	authSvc := NewAuthService(db, &fakeMailer{}, frontendURL)
	aliceID := signupUser(t, authSvc, "alice", "a@x.com")
	bobID := signupUser(t, authSvc, "bob", "b@x.com")
	return NewUserService(db), aliceID, bobID
}

func TestToggleFollow(t *testing.T) {
	svc, aliceID, bobID := newUserFixture(t)
	ctx := context.Background()

	following, err := svc.ToggleFollow(ctx, aliceID, bobID)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = svc.ToggleFollow(ctx, aliceID, bobID)
	require.NoError(t, err)
	assert.False(t, following)

	following, err = svc.ToggleFollow(ctx, aliceID, bobID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestToggleFollow_MissingTarget(t *testing.T) {
	svc, aliceID, _ := newUserFixture(t)

	_, err := svc.ToggleFollow(context.Background(), aliceID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserProfile(t *testing.T) {
	svc, aliceID, bobID := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.ToggleFollow(ctx, aliceID, bobID)
	require.NoError(t, err)

	// bob, as seen by alice (she follows him)
	profile, err := svc.GetUserProfile(ctx, "bob", aliceID)
	require.NoError(t, err)
	assert.Equal(t, bobID, profile.ID)
	assert.Equal(t, 1, profile.TotalFollowers)
	assert.Equal(t, 0, profile.TotalFollowings)
	assert.True(t, profile.FollowedByMe)

	// alice, as seen anonymously
	profile, err = svc.GetUserProfile(ctx, "alice", "")
	require.NoError(t, err)
	assert.Equal(t, 0, profile.TotalFollowers)
	assert.Equal(t, 1, profile.TotalFollowings)
	assert.False(t, profile.FollowedByMe)
}

func TestGetUserProfile_CountsTracks(t *testing.T) {
	db := newTestDB(t)
	authSvc := NewAuthService(db, &fakeMailer{}, frontendURL)
	aliceID := signupUser(t, authSvc, "alice", "a@x.com")

	trackSvc := NewTrackService(db, &fakeMediaStore{})
	createTrack(t, trackSvc, aliceID, "one")
	createTrack(t, trackSvc, aliceID, "two")

	profile, err := NewUserService(db).GetUserProfile(context.Background(), "alice", "")
	require.NoError(t, err)
	assert.Equal(t, 2, profile.TotalTracks)
}

func TestGetUserProfile_Unknown(t *testing.T) {
	svc, _, _ := newUserFixture(t)

	_, err := svc.GetUserProfile(context.Background(), "nobody", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
