// Package services contains application services for the gophgive client.
// This file defines the authentication service: login, registration and
// logout against the platform API and the local session.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/gophgive/internal/client/client"
	"github.com/dmitrijs2005/gophgive/internal/client/session"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate and replace the stored session atomically.
//   - Register: create an account; it does not log in.
//   - Logout: clear every session key. Calling it twice is fine.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (session.Session, error)
	Register(ctx context.Context, name, email string, password []byte) error
	Logout(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  *session.Store
	logger logging.Logger
}

func NewAuthService(client client.Client, store *session.Store, logger logging.Logger) AuthService {
	return &authService{client: client, store: store, logger: logger.With("module", "auth_service")}
}

// Login stores the returned token verbatim together with the user id, name
// and email. The id comes from the response user or, failing that, from
// the token claims.
func (a *authService) Login(ctx context.Context, email string, password []byte) (session.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return session.Session{}, ErrCredentialsRequired
	}

	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return session.Session{}, fmt.Errorf("login error: %w", err)
	}
	if strings.TrimSpace(res.Token) == "" {
		return session.Session{}, ErrNoToken
	}

	sess := session.Session{AccessToken: res.Token, Email: email}
	if u := res.User; u != nil {
		sess.UserID = u.Identifier()
		sess.Username = u.DisplayName()
		if u.Email != "" {
			sess.Email = u.Email
		}
	}
	if sess.UserID == "" {
		sess.UserID = userIDFromToken(res.Token)
	}

	if err := a.store.Replace(ctx, sess); err != nil {
		return session.Session{}, fmt.Errorf("session saving error: %w", err)
	}

	a.logger.Info(ctx, "logged in", "user_id", sess.UserID)
	return sess, nil
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) error {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || len(password) == 0 {
		return ErrRegistrationFieldsRequired
	}

	if err := a.client.Register(ctx, name, email, string(password)); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("session clearing error: %w", err)
	}
	a.logger.Info(ctx, "logged out")
	return nil
}

// userIDFromToken reads the user id claim without verifying the signature;
// the client has no key and only needs the id for display and routing.
func userIDFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	for _, k := range []string{"id", "userId", "sub"} {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
