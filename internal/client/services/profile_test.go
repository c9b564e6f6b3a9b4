package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophgive/internal/client/client"
	"github.com/dmitrijs2005/gophgive/internal/client/models"
	"github.com/dmitrijs2005/gophgive/internal/client/session"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

func TestProfileLoad_Remote(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	loggedIn(t, store)

	log := make([]models.PointLog, 7)
	for i := range log {
		log[i] = models.PointLog{Reason: "donation", Points: 50}
	}
	fc := &fakeClient{ProfileRes: &models.User{
		ID:             "42",
		Username:       "budi_new",
		Email:          "new@example.com",
		Role:           "admin",
		Point:          120,
		TotalDonations: 2,
		ActivityLog:    log,
	}}

	v := NewProfileService(fc, store, logging.Discard()).Load(ctx)

	assert.Equal(t, SourceRemote, v.Source)
	assert.Equal(t, "budi_new", v.Name)
	assert.Equal(t, "new@example.com", v.Email)
	assert.True(t, v.IsAdmin())
	assert.Equal(t, 120, v.Points)
	assert.Len(t, v.RecentActivity, 5)

	assert.Equal(t, "budi_new", store.Lookup(ctx, session.KeyUsername))
	assert.Equal(t, "new@example.com", store.Lookup(ctx, session.KeyEmail))
	assert.Equal(t, "abc", store.Lookup(ctx, session.KeyAccessToken))
}

func TestProfileLoad_RemoteEmptyFieldsUseCache(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	loggedIn(t, store)
	fc := &fakeClient{ProfileRes: &models.User{}}

	v := NewProfileService(fc, store, logging.Discard()).Load(ctx)

	assert.Equal(t, "Budi", v.Name)
	assert.Equal(t, "budi@example.com", v.Email)
	assert.Equal(t, "user", v.Role)
}

func TestProfileLoad_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		sess      session.Session
		wantName  string
		wantEmail string
		wantCalls int
	}{
		{
			name:      "remote failure uses cache",
			sess:      session.Session{AccessToken: "abc", Username: "Siti", Email: "siti@x.id"},
			wantName:  "Siti",
			wantEmail: "siti@x.id",
			wantCalls: 1,
		},
		{
			name:      "remote failure with empty cache uses defaults",
			sess:      session.Session{AccessToken: "abc"},
			wantName:  DefaultName,
			wantEmail: DefaultEmail,
			wantCalls: 1,
		},
		{
			name:      "no token uses cache without calling",
			sess:      session.Session{Username: "Siti"},
			wantName:  "Siti",
			wantEmail: DefaultEmail,
		},
		{
			name:      "nothing at all",
			wantName:  DefaultName,
			wantEmail: DefaultEmail,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			require.NoError(t, store.Replace(ctx, tt.sess))
			fc := &fakeClient{ProfileErr: client.ErrUnauthorized}

			v := NewProfileService(fc, store, logging.Discard()).Load(ctx)

			assert.Equal(t, tt.wantName, v.Name)
			assert.Equal(t, tt.wantEmail, v.Email)
			assert.Equal(t, SourceCache, v.Source)
			assert.Len(t, fc.Calls(), tt.wantCalls)
		})
	}
}

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("remote", func(t *testing.T) {
		store := newStore(t)
		loggedIn(t, store)
		fc := &fakeClient{}

		res, err := NewProfileService(fc, store, logging.Discard()).Update(ctx, "  Budi S ")
		require.NoError(t, err)
		assert.True(t, res.Remote)
		assert.Equal(t, "Budi S", fc.LastName)
		assert.Equal(t, "Budi S", store.Lookup(ctx, session.KeyUsername))
	})

	t.Run("remote failure saves locally", func(t *testing.T) {
		store := newStore(t)
		loggedIn(t, store)
		fc := &fakeClient{UpdateErr: client.ErrUnavailable}

		res, err := NewProfileService(fc, store, logging.Discard()).Update(ctx, "Local Name")
		require.NoError(t, err)
		assert.False(t, res.Remote)
		assert.ErrorIs(t, res.RemoteErr, client.ErrUnavailable)
		assert.Equal(t, "Local Name", store.Lookup(ctx, session.KeyUsername))
	})

	t.Run("no session saves locally", func(t *testing.T) {
		store := newStore(t)
		fc := &fakeClient{}

		res, err := NewProfileService(fc, store, logging.Discard()).Update(ctx, "Offline")
		require.NoError(t, err)
		assert.False(t, res.Remote)
		assert.NoError(t, res.RemoteErr)
		assert.Empty(t, fc.Calls())
	})

	t.Run("name required", func(t *testing.T) {
		_, err := NewProfileService(&fakeClient{}, newStore(t), logging.Discard()).Update(ctx, " ")
		assert.ErrorIs(t, err, ErrNameRequired)
	})
}
