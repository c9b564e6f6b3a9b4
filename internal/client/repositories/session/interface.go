// Package session implements the persistence backends of the client
// session: a scoped string key/value store.
package session

import "context"

// Repository is a scoped key/value store for session fields.
//
// Get reports ok=false for a missing key. GetMany returns only the keys that
// exist and reads them in a single round-trip. SetMany writes all pairs
// atomically, after deleting the keys listed in drop.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	SetMany(ctx context.Context, values map[string]string, drop ...string) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
