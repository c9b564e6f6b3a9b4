// Package client contains the REST client for the donation platform
// backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): auth,
//     profile, activities, donations, volunteering, gamification and
//     subscriptions.
//  2. A concrete HTTP implementation (see HTTPClient) that encodes JSON
//     bodies, unwraps the backend's {"data": ...} envelopes and maps
//     status codes to sentinel errors.
//  3. An http.RoundTripper (see NewAuthTransport) that injects the bearer
//     token from a TokenSource and a request id into every call.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound. Every non-2xx
// response is also an *APIError carrying the server's message; use Message
// to pick it or a fallback text for the user.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts. No call is retried.
package client
