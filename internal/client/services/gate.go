package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gophgive/internal/logging"
)

// Protected actions.
const (
	ActionDonate             = "donate"
	ActionVolunteer          = "become a volunteer"
	ActionSubscribe          = "subscribe"
	ActionCancelSubscription = "cancel the subscription"
	ActionAddPaymentMethod   = "add a payment method"
	ActionViewPoints         = "view points"
)

// Refresh reloads state affected by a completed action.
type Refresh func(ctx context.Context) error

// TokenReader is satisfied by *session.Store.
type TokenReader interface {
	AccessToken(ctx context.Context) (string, error)
}

// ActionGate runs mutating operations only when a session token exists.
type ActionGate struct {
	tokens TokenReader
	logger logging.Logger
}

func NewActionGate(tokens TokenReader, logger logging.Logger) *ActionGate {
	return &ActionGate{tokens: tokens, logger: logger.With("module", "action_gate")}
}

// Run executes op when a token is present and then every refresh callback.
// Without a token it returns *AuthRequiredError and op is not called. A
// token that cannot be read counts as absent. Refresh errors are logged
// only.
func (g *ActionGate) Run(ctx context.Context, action string, op func(ctx context.Context) error, refresh ...Refresh) error {
	token, err := g.tokens.AccessToken(ctx)
	if err != nil {
		g.logger.Warn(ctx, "session unreadable, treating as logged out", "action", action, "error", err)
	}
	if err != nil || strings.TrimSpace(token) == "" {
		return &AuthRequiredError{Action: action}
	}

	if err := op(ctx); err != nil {
		return err
	}

	for _, r := range refresh {
		if r == nil {
			continue
		}
		if err := r(ctx); err != nil {
			g.logger.Warn(ctx, "refresh after action failed", "action", action, "error", err)
		}
	}
	return nil
}
