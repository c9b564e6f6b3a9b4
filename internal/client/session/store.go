// Package session owns the locally persisted authentication state: the
// access token plus cached identity fields. Store is the only writer;
// everything else reads a Snapshot or asks the Resolver.
package session

import (
	"context"
	"strings"

	sessionrepo "github.com/dmitrijs2005/gophgive/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

// Persisted keys.
const (
	KeyAccessToken = "access_token"
	KeyUserID      = "user_id"
	KeyUsername    = "username"
	KeyEmail       = "email"
)

// Keys lists every key owned by the session.
var Keys = []string{KeyAccessToken, KeyUserID, KeyUsername, KeyEmail}

// Session is a point-in-time copy of the stored fields. An empty string
// means the field is absent.
type Session struct {
	AccessToken string
	UserID      string
	Username    string
	Email       string
}

// Authenticated reports whether an access token is present.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.AccessToken) != ""
}

func (s Session) values() map[string]string {
	m := make(map[string]string, len(Keys))
	for k, v := range map[string]string{
		KeyAccessToken: s.AccessToken,
		KeyUserID:      s.UserID,
		KeyUsername:    s.Username,
		KeyEmail:       s.Email,
	} {
		if v != "" {
			m[k] = v
		}
	}
	return m
}

// Store is the session persistence boundary. It is safe for concurrent use
// to the extent the underlying repository is; writes are last-writer-wins.
type Store struct {
	repo   sessionrepo.Repository
	logger logging.Logger
}

func NewStore(repo sessionrepo.Repository, logger logging.Logger) *Store {
	return &Store{repo: repo, logger: logger.With("module", "session_store")}
}

// Get returns the value stored under key. ok is false when the key is
// absent or empty.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	return v, ok && v != "", nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.repo.Set(ctx, key, value)
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}

// Clear removes everything stored in the session scope. Clearing an empty
// session succeeds.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// Lookup is Get for readers that treat storage failures as "absent".
func (s *Store) Lookup(ctx context.Context, key string) string {
	v, _, err := s.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "session read failed", "key", key, "error", err)
		return ""
	}
	return v
}

// Snapshot reads all fields in one round-trip. On a storage failure it
// logs and returns an empty Session.
func (s *Store) Snapshot(ctx context.Context) Session {
	m, err := s.repo.GetMany(ctx, Keys...)
	if err != nil {
		s.logger.Warn(ctx, "session snapshot failed", "error", err)
		return Session{}
	}
	return Session{
		AccessToken: m[KeyAccessToken],
		UserID:      m[KeyUserID],
		Username:    m[KeyUsername],
		Email:       m[KeyEmail],
	}
}

// AccessToken returns the stored token, or "" when absent.
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	v, _, err := s.Get(ctx, KeyAccessToken)
	return v, err
}

// Replace atomically swaps the whole session for sess. Fields left empty
// in sess are removed so nothing from a previous user survives a login.
func (s *Store) Replace(ctx context.Context, sess Session) error {
	return s.repo.SetMany(ctx, sess.values(), Keys...)
}

// CacheIdentity writes non-empty identity fields fetched from the server.
// It never touches the access token.
func (s *Store) CacheIdentity(ctx context.Context, userID, username, email string) error {
	vals := Session{UserID: userID, Username: username, Email: email}.values()
	if len(vals) == 0 {
		return nil
	}
	return s.repo.SetMany(ctx, vals)
}
