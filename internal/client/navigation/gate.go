package navigation

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophgive/internal/client/session"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

type Phase int

const (
	LoggedOut Phase = iota
	LoggedIn
)

func (p Phase) String() string {
	if p == LoggedIn {
		return "LoggedIn"
	}
	return "LoggedOut"
}

// Tab is one slot of the tab bar.
type Tab struct {
	Label string
	Icon  string
	Route Route
}

// StateResolver is satisfied by *session.Resolver.
type StateResolver interface {
	Resolve(ctx context.Context) session.State
}

var protected = map[Route]struct{}{
	Profile:          {},
	EditProfile:      {},
	AddPaymentMethod: {},
}

// IsProtected reports whether route needs an authenticated session.
func IsProtected(route Route) bool {
	_, ok := protected[route]
	return ok
}

// Gate tracks the LoggedOut/LoggedIn phase and guards protected routes.
// The phase only changes through Refresh, which always asks the resolver.
type Gate struct {
	resolver StateResolver
	logger   logging.Logger

	mu    sync.RWMutex
	state session.State
}

func NewGate(resolver StateResolver, logger logging.Logger) *Gate {
	return &Gate{resolver: resolver, logger: logger.With("module", "navigation_gate")}
}

// Refresh re-resolves the session and updates the phase.
func (g *Gate) Refresh(ctx context.Context) session.State {
	st := g.resolver.Resolve(ctx)

	g.mu.Lock()
	prev := phaseOf(g.state)
	g.state = st
	g.mu.Unlock()

	if next := phaseOf(st); next != prev {
		g.logger.Debug(ctx, "gate phase changed", "from", prev.String(), "to", next.String())
	}
	return st
}

func (g *Gate) Phase() Phase {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return phaseOf(g.state)
}

func (g *Gate) State() session.State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// IdentityTab returns the last tab slot for the current phase.
func (g *Gate) IdentityTab() Tab {
	if g.Phase() == LoggedIn {
		return Tab{Label: "Profile", Icon: "person", Route: Profile}
	}
	return Tab{Label: "Login", Icon: "login", Route: Login}
}

// Tabs returns the whole tab bar.
func (g *Gate) Tabs() []Tab {
	return []Tab{
		{Label: "Home", Icon: "home", Route: Home},
		{Label: "Donation", Icon: "favorite", Route: Donation},
		{Label: "Poin", Icon: "star", Route: Point},
		{Label: "Subscription", Icon: "card-membership", Route: Subscription},
		g.IdentityTab(),
	}
}

// Check is the pre-navigation hook. Protected routes are re-resolved
// before they render and redirected to Login without a session.
func (g *Gate) Check(ctx context.Context, to Route, _ Params) Decision {
	if !IsProtected(to) {
		return Allow()
	}
	if !g.Refresh(ctx).Authenticated {
		return RedirectTo(Login, nil)
	}
	return Allow()
}

// PressIdentityTab resets the router to the identity tab's destination.
func (g *Gate) PressIdentityTab(ctx context.Context, r *Router) (*Entry, error) {
	g.Refresh(ctx)
	return r.Reset(ctx, g.IdentityTab().Route)
}

// Attach resolves the initial phase, installs Check as a hook and subscribes
// to focus events of the tab routes. The returned function detaches all of
// it.
func (g *Gate) Attach(ctx context.Context, r *Router) func() {
	g.Refresh(ctx)

	detach := []func(){r.AddHook(g.Check)}
	for _, route := range []Route{Home, Donation, Point, Subscription, Login, Profile} {
		detach = append(detach, r.OnFocus(route, func(e *Entry) {
			g.Refresh(e.Context())
		}))
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for _, fn := range detach {
				fn()
			}
		})
	}
}

func phaseOf(st session.State) Phase {
	if st.Authenticated {
		return LoggedIn
	}
	return LoggedOut
}
