package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophgive/internal/client/navigation"
	"github.com/dmitrijs2005/gophgive/internal/client/services"
)

// Subscriptions opens the Subscription tab.
func (a *App) Subscriptions(ctx context.Context) error {
	e, err := a.open(ctx, navigation.Subscription)
	if err != nil {
		return err
	}
	a.renderSubscriptions(e)
	return nil
}

func (a *App) renderSubscriptions(e *navigation.Entry) {
	ov := a.subscriptionService.Overview(e.Context())
	if !e.Active() {
		return
	}

	if len(ov.Plans) == 0 {
		a.println("No plans available")
	}
	for _, p := range ov.Plans {
		current := ""
		if ov.Subscription.IsPlan(p.ID) {
			current = " (current)"
		}
		a.printf("%s  %s%s: %s / month (%s)\n", p.ID, p.Name, current, rupiah(p.Amount), p.Icon())
		if p.Description != "" {
			a.printf("    %s\n", p.Description)
		}
		for _, b := range p.Benefits {
			a.printf("    - %s\n", b)
		}
	}

	if !ov.LoggedIn {
		a.println("Login to subscribe")
		return
	}

	if s := ov.Subscription; s != nil {
		a.printf("Status: %s since %s\n", s.Status, formatDate(s.StartDate))
		if s.NextBillingDate != nil {
			a.printf("Next billing: %s\n", formatDate(*s.NextBillingDate))
		}
	} else {
		a.println("No active subscription")
	}

	if ov.HasPaymentMethod {
		a.println("Payment method: on file")
	} else {
		a.println("Payment method: none (run 'addcard <tokenId>')")
	}
}

func (a *App) refreshSubscriptions(ctx context.Context) error {
	if e := a.router.Current(); e != nil && e.Route == navigation.Subscription {
		a.renderSubscriptions(e)
	}
	return nil
}

// Subscribe subscribes to planID. Without a payment method the user is
// offered to add one.
func (a *App) Subscribe(ctx context.Context, planID string) error {
	plan, err := a.subscriptionService.Subscribe(ctx, planID, a.refreshGate, a.refreshSubscriptions)
	switch {
	case err == nil:
		a.notify(noticeSuccess, "Success", "Subscribed to "+plan.Name+"!")
		return nil

	case errors.Is(err, services.ErrPaymentMethodRequired):
		a.notify(noticeError, "Payment Method Required", "Please add a payment method first")
		if confirm(a.reader, "Add a payment method now?", a.out) {
			return a.AddCard(ctx, "")
		}
		return err

	case errors.Is(err, services.ErrPlanNotFound):
		a.notify(noticeError, "Error", "Plan not found")
		return err

	default:
		a.report(ctx, err, "Failed to subscribe")
		return err
	}
}

// Cancel cancels the active subscription after confirmation.
func (a *App) Cancel(ctx context.Context) error {
	if a.gate.Refresh(ctx).Authenticated && !confirm(a.reader, "Cancel your subscription?", a.out) {
		return nil
	}

	if err := a.subscriptionService.Cancel(ctx, a.refreshGate, a.refreshSubscriptions); err != nil {
		a.report(ctx, err, "Failed to cancel subscription")
		return err
	}
	a.notify(noticeSuccess, "Success", "Subscription cancelled")
	return nil
}

// AddCard opens the AddPaymentMethod screen and stores a tokenized card.
func (a *App) AddCard(ctx context.Context, tokenID string) error {
	e, ok, err := a.push(ctx, navigation.AddPaymentMethod, nil)
	if err != nil || !ok {
		return err
	}

	if tokenID == "" {
		if tokenID, err = getSimpleText(a.reader, "Enter card token id", a.out); err != nil {
			a.router.Back()
			return err
		}
	}

	if err := a.subscriptionService.AddPaymentMethod(e.Context(), tokenID, a.refreshGate); err != nil {
		a.router.Back()
		if errors.Is(err, services.ErrCardTokenRequired) {
			a.notify(noticeError, "Error", "Card token is required")
		} else {
			a.report(ctx, err, "Failed to add payment method")
		}
		return err
	}

	a.notify(noticeSuccess, "Success", "Payment method added successfully!")
	a.router.Back()
	return a.refreshSubscriptions(ctx)
}
