// Package navigation keeps the screen stack of the client and the gate that
// decides which identity-dependent destinations are reachable.
package navigation

import (
	"context"
	"errors"
	"sync"
)

type Route string

const (
	Login            Route = "Login"
	Register         Route = "Register"
	Profile          Route = "Profile"
	EditProfile      Route = "EditProfile"
	Home             Route = "Home"
	Donation         Route = "Donation"
	Point            Route = "Point"
	Subscription     Route = "Subscription"
	AddPaymentMethod Route = "AddPaymentMethod"
	PostDetail       Route = "PostDetail"
)

// Params carries route arguments such as an activity id.
type Params map[string]string

var (
	ErrVetoed       = errors.New("navigation vetoed")
	ErrRedirectLoop = errors.New("too many navigation redirects")
)

const maxRedirects = 8

// Entry is one screen instance on the stack. Its context is cancelled as
// soon as the entry leaves the stack, so loaders bound to it can drop late
// results.
type Entry struct {
	Route  Route
	Params Params

	ctx    context.Context
	cancel context.CancelFunc
}

func (e *Entry) Context() context.Context { return e.ctx }

// Param returns a route argument or "".
func (e *Entry) Param(name string) string { return e.Params[name] }

// Active reports whether the entry is still on the stack.
func (e *Entry) Active() bool { return e.ctx.Err() == nil }

type decisionKind int

const (
	allow decisionKind = iota
	veto
	redirect
)

// Decision is the outcome of a pre-navigation hook.
type Decision struct {
	kind   decisionKind
	Route  Route
	Params Params
}

func Allow() Decision { return Decision{kind: allow} }

func Veto() Decision { return Decision{kind: veto} }

func RedirectTo(route Route, params Params) Decision {
	return Decision{kind: redirect, Route: route, Params: params}
}

func (d Decision) Allowed() bool    { return d.kind == allow }
func (d Decision) Vetoed() bool     { return d.kind == veto }
func (d Decision) Redirected() bool { return d.kind == redirect }

// Hook runs before every transition and may veto or redirect it.
type Hook func(ctx context.Context, to Route, params Params) Decision

// FocusFunc is called when an entry of the subscribed route becomes the top
// of the stack.
type FocusFunc func(e *Entry)

type focusSub struct {
	id uint64
	fn FocusFunc
}

type hookSub struct {
	id uint64
	fn Hook
}

// Router is a stack of route entries with pre-navigation hooks and focus
// subscriptions. It is safe for concurrent use; hooks and focus callbacks
// run outside the lock.
type Router struct {
	mu     sync.Mutex
	base   context.Context
	stack  []*Entry
	hooks  []hookSub
	focus  map[Route][]focusSub
	nextID uint64
}

// NewRouter creates an empty router. Entry contexts derive from base.
func NewRouter(base context.Context) *Router {
	return &Router{base: base, focus: make(map[Route][]focusSub)}
}

// AddHook installs a pre-navigation hook and returns its remover.
func (r *Router) AddHook(h Hook) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.hooks = append(r.hooks, hookSub{id: id, fn: h})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, s := range r.hooks {
			if s.id == id {
				r.hooks = append(r.hooks[:i], r.hooks[i+1:]...)
				return
			}
		}
	}
}

// OnFocus subscribes fn to focus events of route. The returned function
// unsubscribes; calling it more than once is harmless.
func (r *Router) OnFocus(route Route, fn FocusFunc) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.focus[route] = append(r.focus[route], focusSub{id: id, fn: fn})

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		subs := r.focus[route]
		for i, s := range subs {
			if s.id == id {
				r.focus[route] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Navigate pushes route after running the hooks. The entry actually pushed
// is returned; it differs from route when a hook redirected.
func (r *Router) Navigate(ctx context.Context, route Route, params Params) (*Entry, error) {
	return r.transition(ctx, route, params, false)
}

// Replace swaps the top entry for route.
func (r *Router) Replace(ctx context.Context, route Route, params Params) (*Entry, error) {
	return r.transition(ctx, route, params, true)
}

// Reset drops the whole stack and makes route its only entry. Tab presses
// use it.
func (r *Router) Reset(ctx context.Context, route Route) (*Entry, error) {
	to, params, err := r.resolve(ctx, route, nil)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	for _, e := range r.stack {
		e.cancel()
	}
	r.stack = r.stack[:0]
	e := r.pushLocked(to, params)
	r.mu.Unlock()

	r.notify(e)
	return e, nil
}

// Back pops the top entry. The new top is returned and receives a focus
// event; ok is false when there was nothing to go back to.
func (r *Router) Back() (*Entry, bool) {
	r.mu.Lock()
	if len(r.stack) < 2 {
		var cur *Entry
		if len(r.stack) == 1 {
			cur = r.stack[0]
		}
		r.mu.Unlock()
		return cur, false
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	top.cancel()
	e := r.stack[len(r.stack)-1]
	r.mu.Unlock()

	r.notify(e)
	return e, true
}

// Current returns the top entry, or nil when the stack is empty.
func (r *Router) Current() *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stack)
}

// Close cancels every entry. The router must not be used afterwards.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.stack {
		e.cancel()
	}
	r.stack = nil
}

func (r *Router) transition(ctx context.Context, route Route, params Params, replace bool) (*Entry, error) {
	to, p, err := r.resolve(ctx, route, params)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if replace && len(r.stack) > 0 {
		top := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		top.cancel()
	}
	e := r.pushLocked(to, p)
	r.mu.Unlock()

	r.notify(e)
	return e, nil
}

// resolve runs the hooks, following redirects until every hook allows.
func (r *Router) resolve(ctx context.Context, route Route, params Params) (Route, Params, error) {
	for i := 0; i <= maxRedirects; i++ {
		redirected := false
		for _, h := range r.snapshotHooks() {
			d := h(ctx, route, params)
			if d.Vetoed() {
				return "", nil, ErrVetoed
			}
			if d.Redirected() {
				if d.Route == route {
					continue
				}
				route, params = d.Route, d.Params
				redirected = true
				break
			}
		}
		if !redirected {
			return route, params, nil
		}
	}
	return "", nil, ErrRedirectLoop
}

func (r *Router) snapshotHooks() []Hook {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Hook, len(r.hooks))
	for i, s := range r.hooks {
		out[i] = s.fn
	}
	return out
}

func (r *Router) pushLocked(route Route, params Params) *Entry {
	ctx, cancel := context.WithCancel(r.base)
	e := &Entry{Route: route, Params: params, ctx: ctx, cancel: cancel}
	r.stack = append(r.stack, e)
	return e
}

func (r *Router) notify(e *Entry) {
	r.mu.Lock()
	subs := make([]FocusFunc, 0, len(r.focus[e.Route]))
	for _, s := range r.focus[e.Route] {
		subs = append(subs, s.fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}
