package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophgive/internal/logging"
)

func TestResolve_TokenAndUserID(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyAccessToken, "abc"))
	require.NoError(t, s.Set(ctx, KeyUserID, "42"))

	got := NewResolver(s).Resolve(ctx)

	assert.Equal(t, State{Authenticated: true, UserID: "42"}, got)
}

func TestResolve_EmptyStore(t *testing.T) {
	s, _ := newTestStore(t)

	got := NewResolver(s).Resolve(context.Background())

	assert.Equal(t, State{}, got)
	assert.False(t, got.Authenticated)
	assert.Empty(t, got.UserID)
}

func TestResolve_UserIDWithoutTokenIsHidden(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyUserID, "42"))

	assert.Equal(t, State{}, NewResolver(s).Resolve(ctx))
}

func TestResolve_WhitespaceTokenIsNotAuthenticated(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyAccessToken, "   "))

	assert.False(t, NewResolver(s).Resolve(ctx).Authenticated)
}

func TestResolve_FollowsReplaceAndClear(t *testing.T) {
	s, _ := newTestStore(t)
	r := NewResolver(s)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Replace(ctx, Session{AccessToken: "tok", UserID: "7"}))
		assert.True(t, r.Resolve(ctx).Authenticated)

		require.NoError(t, s.Clear(ctx))
		assert.False(t, r.Resolve(ctx).Authenticated)
	}
}

func TestResolve_StorageFailureMeansLoggedOut(t *testing.T) {
	r := NewResolver(NewStore(brokenRepo{}, logging.Discard()))
	assert.Equal(t, State{}, r.Resolve(context.Background()))
}
