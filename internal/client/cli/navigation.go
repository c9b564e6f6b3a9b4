package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophgive/internal/client/client"
	"github.com/dmitrijs2005/gophgive/internal/client/navigation"
	"github.com/dmitrijs2005/gophgive/internal/client/services"
)

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) notify(kind noticeKind, title, text string) {
	a.println(notice(kind, title, text))
}

// Tabs prints the bottom tab bar for the current phase.
func (a *App) Tabs(ctx context.Context) error {
	a.gate.Refresh(ctx)
	a.printTabs()
	return nil
}

func (a *App) printTabs() {
	cur := a.router.Current()
	for _, t := range a.gate.Tabs() {
		marker := " "
		if cur != nil && cur.Route == t.Route {
			marker = "*"
		}
		a.printf("%s %-12s (%s)\n", marker, t.Label, t.Icon)
	}
}

// Back pops the current route.
func (a *App) Back(ctx context.Context) error {
	e, ok := a.router.Back()
	if !ok {
		a.println("Nothing to go back to")
		return nil
	}
	a.printf("Back to %s\n", e.Route)
	return nil
}

// open resets the stack to a tab root.
func (a *App) open(ctx context.Context, route navigation.Route) (*navigation.Entry, error) {
	e, err := a.router.Reset(ctx, route)
	if err != nil {
		a.notify(noticeError, "Error", fmt.Sprintf("Cannot open %s", route))
		return nil, err
	}
	return e, nil
}

// push opens route on top of the stack. ok is false when the navigation
// gate sent the user to Login instead.
func (a *App) push(ctx context.Context, route navigation.Route, params navigation.Params) (*navigation.Entry, bool, error) {
	e, err := a.router.Navigate(ctx, route, params)
	if err != nil {
		a.notify(noticeError, "Error", fmt.Sprintf("Cannot open %s", route))
		return nil, false, err
	}
	if e.Route != route {
		a.notify(noticeError, "Login Required", "Please login to continue")
		return e, false, nil
	}
	return e, true, nil
}

// toLogin shows the Login screen unless it is already on top.
func (a *App) toLogin(ctx context.Context) {
	if cur := a.router.Current(); cur != nil && cur.Route == navigation.Login {
		return
	}
	if _, err := a.router.Navigate(ctx, navigation.Login, nil); err != nil {
		a.logger.Warn(ctx, "cannot open login", "error", err)
	}
}

// report prints err as an error notice. A missing session sends the user
// to the Login screen.
func (a *App) report(ctx context.Context, err error, fallback string) {
	var authErr *services.AuthRequiredError
	if errors.As(err, &authErr) {
		a.notify(noticeError, "Login Required", "Please login to "+authErr.Action)
		a.toLogin(ctx)
		return
	}

	a.logger.Debug(ctx, "command failed", "error", err)

	switch {
	case errors.Is(err, client.ErrUnavailable):
		a.notify(noticeError, "Error", "Server is unavailable, please try again later")
	case errors.Is(err, client.ErrUnauthorized):
		a.notify(noticeError, "Error", client.Message(err, "Your session is no longer valid, please login again"))
	default:
		a.notify(noticeError, "Error", client.Message(err, fallback))
	}
}
