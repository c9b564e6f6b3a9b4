package cli

import (
	"context"

	"github.com/dmitrijs2005/gophgive/internal/client/navigation"
)

// Points opens the Poin tab: level, statistics and achievements.
func (a *App) Points(ctx context.Context) error {
	e, err := a.open(ctx, navigation.Point)
	if err != nil {
		return err
	}

	sum, err := a.pointsService.Summary(e.Context())
	if !e.Active() {
		return nil
	}
	if err != nil {
		a.report(ctx, err, "Failed to load points")
		return err
	}

	a.printf("Level: %s\n", sum.LevelOrDefault())
	a.printf("Points: %d\n", sum.TotalPoints)
	if sum.NextLevel != nil {
		a.printf("Next level: %s (%d points to go)\n", sum.NextLevel.Name, sum.PointsToNext())
	}
	a.printf("Donations: %d (%s)\n", sum.Statistics.TotalDonations, rupiah(sum.Statistics.TotalDonationAmount))
	a.printf("Volunteer activities: %d\n", sum.Statistics.TotalVolunteers)

	a.printf("Achievements (%d/%d):\n", sum.Unlocked(), len(sum.Achievements))
	for _, ach := range sum.Achievements {
		mark := " "
		if ach.Unlocked {
			mark = "x"
		}
		a.printf("  [%s] %s - %s (+%d)\n", mark, ach.Name, ach.Description, ach.Points)
	}
	return nil
}
