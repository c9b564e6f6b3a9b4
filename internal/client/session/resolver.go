package session

import "context"

// State is the derived authentication state. UserID is empty when the
// user is not authenticated or the id is not known yet.
type State struct {
	Authenticated bool
	UserID        string
}

// Resolver derives State from the Store. It keeps no cache: every call
// reads the store again.
type Resolver struct {
	store *Store
}

func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

func (r *Resolver) Resolve(ctx context.Context) State {
	snap := r.store.Snapshot(ctx)
	if !snap.Authenticated() {
		return State{}
	}
	return State{Authenticated: true, UserID: snap.UserID}
}
