package store

const (
	pointsVolunteer = 10
	pointsDonation  = 50

	reasonVolunteer = "volunteer_register"
	reasonDonation  = "donation"

	historyLimit = 50
)

// Levels in ascending order of required points.
var Levels = []Level{
	{Name: "Bronze", RequiredPoints: 0},
	{Name: "Silver", RequiredPoints: 100},
	{Name: "Gold", RequiredPoints: 250},
	{Name: "Platinum", RequiredPoints: 500},
	{Name: "Diamond", RequiredPoints: 1000},
}

type achievementRule struct {
	Achievement
	met func(u *User) bool
}

var achievementRules = []achievementRule{
	{
		Achievement: Achievement{ID: "first-donation", Name: "First Donation", Description: "Make your first donation", Badge: "heart", Points: 10},
		met:         func(u *User) bool { return u.TotalDonations >= 1 },
	},
	{
		Achievement: Achievement{ID: "generous-donor", Name: "Generous Donor", Description: "Donate Rp 1.000.000 in total", Badge: "gift", Points: 50},
		met:         func(u *User) bool { return u.donatedAmount >= 1_000_000 },
	},
	{
		Achievement: Achievement{ID: "active-volunteer", Name: "Active Volunteer", Description: "Volunteer for 3 activities", Badge: "hand", Points: 30},
		met:         func(u *User) bool { return u.TotalVolunteerActivities >= 3 },
	},
	{
		Achievement: Achievement{ID: "loyal-supporter", Name: "Loyal Supporter", Description: "Make 5 donations", Badge: "crown", Points: 50},
		met:         func(u *User) bool { return u.TotalDonations >= 5 },
	},
}

// LevelFor returns the level reached with points and the next one, nil at
// the top.
func LevelFor(points int) (Level, *Level) {
	current := Levels[0]
	for i, l := range Levels {
		if points < l.RequiredPoints {
			next := Levels[i]
			return current, &next
		}
		current = l
	}
	return current, nil
}

// award must be called with s.mu held.
func (s *Store) award(u *User, points int, reason string) {
	u.Point += points
	u.ActivityLog = append([]PointLog{{Reason: reason, Points: points, Timestamp: s.now()}}, u.ActivityLog...)
	if len(u.ActivityLog) > historyLimit {
		u.ActivityLog = u.ActivityLog[:historyLimit]
	}

	for _, r := range achievementRules {
		if _, ok := u.achievementIDs[r.ID]; ok || !r.met(u) {
			continue
		}
		a := r.Achievement
		a.Unlocked = true
		u.Achievements = append(u.Achievements, a)
		u.achievementIDs[r.ID] = struct{}{}
	}
}

// Summary lists every achievement with its unlocked flag.
func (s *Store) Summary(userID string) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}

	level, next := LevelFor(u.Point)
	sum := &Summary{
		TotalPoints: u.Point,
		Level:       level.Name,
		NextLevel:   next,
		Statistics: Statistics{
			TotalDonations:      u.TotalDonations,
			TotalDonationAmount: u.donatedAmount,
			TotalVolunteers:     u.TotalVolunteerActivities,
		},
	}
	for _, r := range achievementRules {
		a := r.Achievement
		_, a.Unlocked = u.achievementIDs[r.ID]
		sum.Achievements = append(sum.Achievements, a)
	}
	return sum, nil
}
