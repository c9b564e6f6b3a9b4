package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophgive/internal/client/navigation"
	"github.com/dmitrijs2005/gophgive/internal/client/services"
)

// Me presses the identity tab: Profile when logged in, Login otherwise.
func (a *App) Me(ctx context.Context) error {
	e, err := a.gate.PressIdentityTab(ctx, a.router)
	if err != nil {
		a.notify(noticeError, "Error", "Cannot open profile")
		return err
	}

	if e.Route == navigation.Login {
		a.println("You are not logged in. Run 'login' to sign in or 'register' to create an account.")
		return nil
	}
	a.renderProfile(e)
	return nil
}

func (a *App) renderProfile(e *navigation.Entry) {
	v := a.profileService.Load(e.Context())
	if !e.Active() {
		return
	}

	badge := ""
	if v.IsAdmin() {
		badge = " [Admin]"
	}
	a.printf("%s%s\n", v.Name, badge)
	a.printf("%s\n", v.Email)
	if v.Source == services.SourceCache {
		a.println("(offline, showing saved profile)")
		return
	}

	a.printf("Points: %d  Donations: %d  Volunteer activities: %d\n", v.Points, v.TotalDonations, v.TotalVolunteerActivities)
	if len(v.Achievements) > 0 {
		a.println("Achievements:")
		for _, ach := range v.Achievements {
			a.printf("  %s\n", ach.Name)
		}
	}
	if len(v.RecentActivity) > 0 {
		a.println("Recent activity:")
		for _, l := range v.RecentActivity {
			a.printf("  %s  %s  +%d\n", formatDate(l.Timestamp), l.Label(), l.Points)
		}
	}
}

// Edit opens the EditProfile screen and saves a new display name.
func (a *App) Edit(ctx context.Context) error {
	e, ok, err := a.push(ctx, navigation.EditProfile, nil)
	if err != nil || !ok {
		return err
	}
	defer a.router.Back()

	current := a.profileService.Load(e.Context())
	name, err := getSimpleText(a.reader, "Enter name (current: "+current.Name+")", a.out)
	if err != nil {
		return err
	}

	res, err := a.profileService.Update(e.Context(), name)
	if err != nil {
		if errors.Is(err, services.ErrNameRequired) {
			a.notify(noticeError, "Error", "Name is required")
		} else {
			a.notify(noticeError, "Error", "Failed to update profile")
		}
		return err
	}

	if res.Remote {
		a.notify(noticeSuccess, "Success", "Profile updated")
	} else {
		a.notify(noticeSuccess, "Saved Locally", "Profile updated on device (backend sync pending)")
	}
	return nil
}
