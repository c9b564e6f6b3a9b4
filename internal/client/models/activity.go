// Package models defines the domain objects exchanged with the donation
// platform API.
package models

import (
	"math"
	"time"
)

// Location is where an activity takes place.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Volunteer is an entry of an activity's volunteer list. ID is the entry id;
// UserID is the account that registered.
type Volunteer struct {
	ID       string `json:"_id"`
	UserID   string `json:"userId,omitempty"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Note     string `json:"note,omitempty"`
}

// DisplayName falls back to the username and then to "Anonymous".
func (v Volunteer) DisplayName() string {
	switch {
	case v.Name != "":
		return v.Name
	case v.Username != "":
		return v.Username
	default:
		return "Anonymous"
	}
}

// Activity is a fundraising or volunteering campaign.
type Activity struct {
	ID                 string      `json:"_id"`
	Title              string      `json:"title"`
	Description        string      `json:"description,omitempty"`
	Category           string      `json:"category,omitempty"`
	Images             []string    `json:"images,omitempty"`
	TargetMoney        int64       `json:"targetMoney"`
	CollectedMoney     int64       `json:"collectedMoney"`
	CollectedVolunteer int         `json:"collectedVolunteer"`
	Deadline           *time.Time  `json:"deadline,omitempty"`
	Location           *Location   `json:"location,omitempty"`
	Volunteers         []Volunteer `json:"listVolunteer,omitempty"`
}

// CategoryOrDefault returns the category, "Acara" when unset.
func (a Activity) CategoryOrDefault() string {
	if a.Category == "" {
		return "Acara"
	}
	return a.Category
}

// Progress is the collected share of the target in [0, 1].
func (a Activity) Progress() float64 {
	if a.TargetMoney <= 0 {
		return 0
	}
	return math.Min(float64(a.CollectedMoney)/float64(a.TargetMoney), 1)
}

// DaysLeft counts whole days until the deadline, never below zero. ok is
// false when the activity has no deadline.
func (a Activity) DaysLeft(now time.Time) (days int, ok bool) {
	if a.Deadline == nil {
		return 0, false
	}
	d := int(math.Ceil(a.Deadline.Sub(now).Hours() / 24))
	if d < 0 {
		d = 0
	}
	return d, true
}

// FindVolunteer looks the user up by entry id or by user id.
func (a Activity) FindVolunteer(userID string) (Volunteer, bool) {
	if userID == "" {
		return Volunteer{}, false
	}
	for _, v := range a.Volunteers {
		if v.ID == userID || v.UserID == userID {
			return v, true
		}
	}
	return Volunteer{}, false
}

// HasVolunteer reports whether userID is on the volunteer list.
func (a Activity) HasVolunteer(userID string) bool {
	_, ok := a.FindVolunteer(userID)
	return ok
}

// News is an update posted on an activity.
type News struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expense is money spent by an activity.
type Expense struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Amount      int64  `json:"amount"`
}

type DonationStatus string

const (
	DonationPending DonationStatus = "PENDING"
	DonationPaid    DonationStatus = "PAID"
	DonationFailed  DonationStatus = "FAILED"
)

// Donation is a single payment towards an activity.
type Donation struct {
	ID         string         `json:"_id"`
	ActivityID string         `json:"activityId"`
	UserID     string         `json:"userId,omitempty"`
	PayerEmail string         `json:"payerEmail,omitempty"`
	Amount     int64          `json:"amount"`
	Status     DonationStatus `json:"status,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// Invoice is returned when a donation is created; the user completes the
// payment at InvoiceURL.
type Invoice struct {
	DonationID string `json:"donationId,omitempty"`
	InvoiceURL string `json:"invoiceUrl"`
}
