package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shubhswain45/connectify-server-app/internal/database"
)

// newTestDB opens a fresh in-memory database with the full schema applied.
// Connections are capped at one so every query sees the same memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { db.Close() })
	return db
}

// sentMail records one delivered message.
type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer records sends and optionally fails them.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *fakeMailer) lastSent(t *testing.T) sentMail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

// fakeMediaStore pretends to re-host media and records what it was given.
type fakeMediaStore struct {
	uploads []string
	err     error
}

func (f *fakeMediaStore) Upload(_ context.Context, sourceURL string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploads = append(f.uploads, sourceURL)
	return "https://media.test/" + sourceURL, nil
}

// signupUser creates a user through the real signup flow and returns its ID.
func signupUser(t *testing.T, svc *AuthService, username, email string) string {
	t.Helper()
	user, err := svc.Signup(context.Background(), SignupPayload{
		Username: username,
		FullName: "Test User",
		Email:    email,
		Password: "pw123456",
	})
	require.NoError(t, err)
	return user.ID
}
