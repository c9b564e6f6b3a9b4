package navigation

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophgive/internal/client/session"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

type fakeResolver struct {
	authed atomic.Bool
	calls  atomic.Int32
}

func (f *fakeResolver) Resolve(context.Context) session.State {
	f.calls.Add(1)
	if f.authed.Load() {
		return session.State{Authenticated: true, UserID: "42"}
	}
	return session.State{}
}

func newGate(authed bool) (*Gate, *fakeResolver) {
	res := &fakeResolver{}
	res.authed.Store(authed)
	return NewGate(res, logging.Discard()), res
}

func TestGate_IdentityTab(t *testing.T) {
	ctx := context.Background()
	g, res := newGate(false)

	g.Refresh(ctx)
	assert.Equal(t, LoggedOut, g.Phase())
	assert.Equal(t, Tab{Label: "Login", Icon: "login", Route: Login}, g.IdentityTab())

	res.authed.Store(true)
	g.Refresh(ctx)
	assert.Equal(t, LoggedIn, g.Phase())
	assert.Equal(t, Tab{Label: "Profile", Icon: "person", Route: Profile}, g.IdentityTab())
	assert.Equal(t, "42", g.State().UserID)

	tabs := g.Tabs()
	require.Len(t, tabs, 5)
	assert.Equal(t, "Poin", tabs[2].Label)
	assert.Equal(t, Profile, tabs[4].Route)
}

func TestGate_InitialPhaseFromStore(t *testing.T) {
	ctx := context.Background()
	g, _ := newGate(true)
	r := NewRouter(ctx)

	detach := g.Attach(ctx, r)
	defer detach()

	assert.Equal(t, LoggedIn, g.Phase())
}

func TestGate_ProtectedRoutesRedirectToLogin(t *testing.T) {
	ctx := context.Background()
	g, _ := newGate(false)
	r := NewRouter(ctx)
	defer g.Attach(ctx, r)()

	_, _ = r.Navigate(ctx, Home, nil)

	for _, route := range []Route{Profile, EditProfile, AddPaymentMethod} {
		e, err := r.Navigate(ctx, route, nil)
		require.NoError(t, err)
		assert.Equal(t, Login, e.Route, route)
	}

	e, err := r.Navigate(ctx, PostDetail, Params{"id": "x"})
	require.NoError(t, err)
	assert.Equal(t, PostDetail, e.Route)
}

func TestGate_ProtectedRouteReResolves(t *testing.T) {
	ctx := context.Background()
	g, res := newGate(true)
	r := NewRouter(ctx)
	defer g.Attach(ctx, r)()

	e, err := r.Navigate(ctx, Profile, nil)
	require.NoError(t, err)
	assert.Equal(t, Profile, e.Route)

	// logout happened elsewhere; the gate must not trust its last phase
	res.authed.Store(false)
	e, err = r.Navigate(ctx, EditProfile, nil)
	require.NoError(t, err)
	assert.Equal(t, Login, e.Route)
	assert.Equal(t, LoggedOut, g.Phase())
}

func TestGate_PressIdentityTab(t *testing.T) {
	ctx := context.Background()
	g, res := newGate(false)
	r := NewRouter(ctx)
	defer g.Attach(ctx, r)()

	e, err := g.PressIdentityTab(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, Login, e.Route)

	res.authed.Store(true)
	e, err = g.PressIdentityTab(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, Profile, e.Route)
	assert.Equal(t, 1, r.Depth())
}

func TestGate_FocusReResolvesUntilDetached(t *testing.T) {
	ctx := context.Background()
	g, res := newGate(false)
	r := NewRouter(ctx)
	detach := g.Attach(ctx, r)

	_, _ = r.Navigate(ctx, Home, nil)
	res.authed.Store(true)
	_, _ = r.Navigate(ctx, PostDetail, nil)
	r.Back()
	assert.Equal(t, LoggedIn, g.Phase())

	detach()
	detach()
	before := res.calls.Load()
	res.authed.Store(false)
	_, _ = r.Reset(ctx, Home)
	_, _ = r.Navigate(ctx, Profile, nil)

	assert.Equal(t, before, res.calls.Load())
	assert.Equal(t, LoggedIn, g.Phase())
}
