package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophgive/internal/client/navigation"
	"github.com/dmitrijs2005/gophgive/internal/client/services"
)

// timeNow is a test seam for deadline countdowns.
var timeNow = time.Now

// Home opens the Home tab and lists the activities.
func (a *App) Home(ctx context.Context) error {
	e, err := a.open(ctx, navigation.Home)
	if err != nil {
		return err
	}
	return a.renderHome(e)
}

func (a *App) renderHome(e *navigation.Entry) error {
	list, err := a.activityService.List(e.Context())
	if !e.Active() {
		return nil
	}
	if err != nil {
		a.report(e.Context(), err, "Failed to load activities")
		return err
	}

	if len(list) == 0 {
		a.println("No activities yet")
		return nil
	}
	for _, act := range list {
		a.printf("%s  %s [%s]\n", act.ID, act.Title, act.CategoryOrDefault())
		a.printf("    %s %s of %s\n", progressBar(act.Progress(), 20), rupiah(act.CollectedMoney), rupiah(act.TargetMoney))
	}
	return nil
}

// Show pushes the activity detail screen.
func (a *App) Show(ctx context.Context, id string) error {
	e, ok, err := a.push(ctx, navigation.PostDetail, navigation.Params{"id": id})
	if err != nil || !ok {
		return err
	}
	return a.renderDetail(e)
}

func (a *App) renderDetail(e *navigation.Entry) error {
	ctx := e.Context()
	d, err := a.activityService.Detail(ctx, e.Param("id"))
	if !e.Active() {
		return nil
	}
	if err != nil {
		a.report(ctx, err, "Failed to load activity")
		a.router.Back()
		return err
	}

	act := d.Activity
	a.printf("%s [%s]\n", act.Title, act.CategoryOrDefault())
	if act.Description != "" {
		a.println(act.Description)
	}
	a.printf("Collected: %s of %s (%d%%)\n", rupiah(act.CollectedMoney), rupiah(act.TargetMoney), int(act.Progress()*100))
	a.printf("Volunteers: %d\n", act.CollectedVolunteer)
	if days, ok := act.DaysLeft(timeNow()); ok {
		a.printf("Days left: %d\n", days)
	}
	if act.Location != nil && act.Location.Name != "" {
		a.printf("Location: %s\n", act.Location.Name)
	}

	if len(d.News) > 0 {
		a.println("News:")
		for _, n := range d.News {
			a.printf("  %s  %s\n", formatDate(n.CreatedAt), n.Title)
		}
	}
	if len(d.Expenses) > 0 {
		a.println("Expenses:")
		for _, x := range d.Expenses {
			a.printf("  %s  %s\n", rupiah(x.Amount), x.Title)
		}
		a.printf("  Total: %s\n", rupiah(d.TotalExpenses()))
	}
	if len(d.Donations) > 0 {
		a.println("Your donations:")
		for _, dn := range d.Donations {
			a.printf("  %s  %s  %s\n", formatDate(dn.CreatedAt), rupiah(dn.Amount), dn.Status)
		}
	}

	if d.IsVolunteer {
		a.println("You are a volunteer for this activity (run 'volunteer " + act.ID + "' to leave)")
	}
	return nil
}

// refreshDetail re-renders the detail screen if it shows activity id.
func (a *App) refreshDetail(id string) services.Refresh {
	return func(ctx context.Context) error {
		e := a.router.Current()
		if e == nil || e.Route != navigation.PostDetail || e.Param("id") != id {
			return nil
		}
		return a.renderDetail(e)
	}
}

// Donations opens the Donation tab with the user's donations.
func (a *App) Donations(ctx context.Context) error {
	e, err := a.open(ctx, navigation.Donation)
	if err != nil {
		return err
	}

	list, err := a.activityService.MyDonations(e.Context())
	if !e.Active() {
		return nil
	}
	if err != nil {
		if errors.Is(err, services.ErrAuthRequired) {
			a.println("Login to see your donations")
			return nil
		}
		a.report(ctx, err, "Failed to load donations")
		return err
	}

	if len(list) == 0 {
		a.println("You have not donated yet")
		return nil
	}
	for _, dn := range list {
		a.printf("%s  %s  %s  activity %s\n", formatDate(dn.CreatedAt), rupiah(dn.Amount), dn.Status, dn.ActivityID)
	}
	return nil
}

// Donate creates an invoice for activity id. The amount is asked for when
// it was not given and the user is logged in.
func (a *App) Donate(ctx context.Context, id, amount string) error {
	loggedIn := a.gate.Refresh(ctx).Authenticated

	if amount == "" && loggedIn {
		var err error
		if amount, err = getSimpleText(a.reader, "Enter donation amount (Rp)", a.out); err != nil {
			return err
		}
	}

	var value int64
	if amount != "" {
		v, err := parseAmount(amount)
		if (err != nil || v <= 0) && loggedIn {
			a.notify(noticeError, "Error", "Please enter a valid amount")
			return services.ErrInvalidAmount
		}
		value = v
	}

	inv, err := a.activityService.Donate(ctx, id, value, a.refreshGate)
	if err != nil {
		if errors.Is(err, services.ErrEmailMissing) {
			a.notify(noticeError, "Error", "User email not found. Please login again.")
			return err
		}
		a.report(ctx, err, "Failed to create donation")
		return err
	}

	a.notify(noticeInfo, "Payment", "Complete your donation of "+rupiah(value)+" at:")
	a.println(inv.InvoiceURL)
	a.println("When the checkout finishes, run 'payment <redirect url>'")
	return nil
}

// Payment reports the result of a checkout redirect.
func (a *App) Payment(ctx context.Context, url string) error {
	switch a.activityService.PaymentOutcome(url) {
	case services.PaymentPaid:
		a.notify(noticeSuccess, "Success", "Payment successful! Thank you for your donation.")
		if e := a.router.Current(); e != nil && e.Route == navigation.PostDetail {
			return a.renderDetail(e)
		}
	case services.PaymentFailed:
		a.notify(noticeError, "Payment Failed", "Your payment was cancelled or failed.")
	default:
		a.notify(noticeInfo, "Payment Pending", "Waiting for the payment to complete.")
	}
	return nil
}

// Volunteer registers for activity id or leaves it when already registered.
func (a *App) Volunteer(ctx context.Context, id, phone, note string) error {
	registered, err := a.activityService.ToggleVolunteer(ctx, id, phone, note, a.refreshGate, a.refreshDetail(id))
	if err != nil {
		if errors.Is(err, services.ErrVolunteerNotFound) {
			a.notify(noticeError, "Error", "Volunteer not found")
			return err
		}
		a.report(ctx, err, "Failed to update volunteer status")
		return err
	}

	if registered {
		a.notify(noticeSuccess, "Success", "You are now registered as a volunteer!")
	} else {
		a.notify(noticeSuccess, "Success", "You have left this activity")
	}
	return nil
}
