package models

import "time"

// User is the profile object returned by the users API.
type User struct {
	ID                       string        `json:"_id,omitempty"`
	AltID                    string        `json:"id,omitempty"`
	Name                     string        `json:"name,omitempty"`
	Username                 string        `json:"username,omitempty"`
	Email                    string        `json:"email,omitempty"`
	Role                     string        `json:"role,omitempty"`
	Point                    int           `json:"point"`
	TotalDonations           int           `json:"totalDonations"`
	TotalVolunteerActivities int           `json:"totalVolunteerActivities"`
	Achievements             []Achievement `json:"achievements,omitempty"`
	ActivityLog              []PointLog    `json:"activityLog,omitempty"`
}

// Identifier returns whichever id field the server filled in.
func (u User) Identifier() string {
	if u.ID != "" {
		return u.ID
	}
	return u.AltID
}

// DisplayName prefers name over username.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Achievement is a badge a user has unlocked or can unlock.
type Achievement struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Badge       string `json:"badge,omitempty"`
	Points      int    `json:"points"`
	Unlocked    bool   `json:"unlocked"`
}

// PointLog is one entry of the points history.
type PointLog struct {
	Reason    string    `json:"reason"`
	Points    int       `json:"points"`
	Timestamp time.Time `json:"timestamp"`
}

// Label renders the reason for display.
func (l PointLog) Label() string {
	switch l.Reason {
	case "volunteer_register":
		return "Volunteer Registered"
	case "donation":
		return "Donation"
	default:
		return l.Reason
	}
}

// Level is a gamification tier.
type Level struct {
	Name           string `json:"name"`
	RequiredPoints int    `json:"requiredPoints"`
}

// Statistics aggregates a user's contributions.
type Statistics struct {
	TotalDonations      int   `json:"totalDonations"`
	TotalDonationAmount int64 `json:"totalDonationAmount"`
	TotalVolunteers     int   `json:"totalVolunteers"`
}

// AchievementSummary is the gamification view of one user.
type AchievementSummary struct {
	TotalPoints  int           `json:"totalPoints"`
	Level        string        `json:"level"`
	NextLevel    *Level        `json:"nextLevel,omitempty"`
	Statistics   Statistics    `json:"statistics"`
	Achievements []Achievement `json:"achievements"`
}

// LevelOrDefault returns the level, "Bronze" when unset.
func (s AchievementSummary) LevelOrDefault() string {
	if s.Level == "" {
		return "Bronze"
	}
	return s.Level
}

// PointsToNext is how many points are missing for the next level, 0 when
// there is none.
func (s AchievementSummary) PointsToNext() int {
	if s.NextLevel == nil || s.NextLevel.RequiredPoints <= s.TotalPoints {
		return 0
	}
	return s.NextLevel.RequiredPoints - s.TotalPoints
}

// Unlocked counts unlocked achievements.
func (s AchievementSummary) Unlocked() int {
	n := 0
	for _, a := range s.Achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}
