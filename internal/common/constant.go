// Package common holds constants and small helpers shared by the client and
// the development backend.
package common

// HTTP headers exchanged with the platform API.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	BearerPrefix        = "Bearer "
)
