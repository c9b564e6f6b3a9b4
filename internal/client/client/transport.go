package client

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophgive/internal/common"
)

// TokenSource yields the current access token, "" when logged out.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

// NewAuthTransport wraps base so that every request carries a request id
// and, when tokens has one, the bearer token. The token is read on every
// request, so login and logout take effect immediately.
func NewAuthTransport(base http.RoundTripper, tokens TokenSource) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, tokens: tokens}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if r.Header.Get(common.RequestIDHeader) == "" {
		r.Header.Set(common.RequestIDHeader, uuid.NewString())
	}

	if t.tokens != nil && r.Header.Get(common.AuthorizationHeader) == "" {
		// an unreadable session is treated as logged out
		if token, err := t.tokens.AccessToken(r.Context()); err == nil && token != "" {
			r.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
		}
	}

	return t.base.RoundTrip(r)
}
