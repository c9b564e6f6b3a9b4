package store

import "time"

type User struct {
	ID                       string        `json:"_id"`
	Name                     string        `json:"name"`
	Email                    string        `json:"email"`
	Role                     string        `json:"role"`
	Point                    int           `json:"point"`
	TotalDonations           int           `json:"totalDonations"`
	TotalVolunteerActivities int           `json:"totalVolunteerActivities"`
	Achievements             []Achievement `json:"achievements"`
	ActivityLog              []PointLog    `json:"activityLog"`

	passwordHash   []byte
	donatedAmount  int64
	achievementIDs map[string]struct{}
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Badge       string `json:"badge"`
	Points      int    `json:"points"`
	Unlocked    bool   `json:"unlocked"`
}

type PointLog struct {
	Reason    string    `json:"reason"`
	Points    int       `json:"points"`
	Timestamp time.Time `json:"timestamp"`
}

type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type Volunteer struct {
	ID     string `json:"_id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Note   string `json:"note"`
}

type Activity struct {
	ID                 string      `json:"_id"`
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	Category           string      `json:"category"`
	Images             []string    `json:"images"`
	TargetMoney        int64       `json:"targetMoney"`
	CollectedMoney     int64       `json:"collectedMoney"`
	CollectedVolunteer int         `json:"collectedVolunteer"`
	Deadline           *time.Time  `json:"deadline,omitempty"`
	Location           *Location   `json:"location,omitempty"`
	Volunteers         []Volunteer `json:"listVolunteer"`
}

type News struct {
	ID         string    `json:"_id"`
	ActivityID string    `json:"activityId"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Expense struct {
	ID          string `json:"_id"`
	ActivityID  string `json:"activityId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

const (
	DonationPending = "PENDING"
	DonationPaid    = "PAID"
	DonationFailed  = "FAILED"
)

type Donation struct {
	ID         string    `json:"_id"`
	ActivityID string    `json:"activityId"`
	UserID     string    `json:"userId"`
	PayerEmail string    `json:"payerEmail"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Plan struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Amount      int64    `json:"amount"`
	Benefits    []string `json:"benefits"`
}

const (
	SubscriptionActive    = "ACTIVE"
	SubscriptionCancelled = "CANCELLED"
)

type Subscription struct {
	ID              string     `json:"_id"`
	UserID          string     `json:"userId"`
	Plan            *Plan      `json:"plan"`
	Amount          int64      `json:"amount"`
	Status          string     `json:"status"`
	StartDate       time.Time  `json:"startDate"`
	NextBillingDate *time.Time `json:"nextBillingDate,omitempty"`
}

type PaymentMethod struct {
	ID      string `json:"_id"`
	UserID  string `json:"userId"`
	Type    string `json:"type"`
	TokenID string `json:"tokenId"`
}

type Level struct {
	Name           string `json:"name"`
	RequiredPoints int    `json:"requiredPoints"`
}

type Statistics struct {
	TotalDonations      int   `json:"totalDonations"`
	TotalDonationAmount int64 `json:"totalDonationAmount"`
	TotalVolunteers     int   `json:"totalVolunteers"`
}

// Summary is the gamification view of one user.
type Summary struct {
	TotalPoints  int           `json:"totalPoints"`
	Level        string        `json:"level"`
	NextLevel    *Level        `json:"nextLevel,omitempty"`
	Statistics   Statistics    `json:"statistics"`
	Achievements []Achievement `json:"achievements"`
}
