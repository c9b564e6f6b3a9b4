package models

import (
	"strings"
	"time"
)

// Plan is a recurring donation tier.
type Plan struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Amount      int64    `json:"amount"`
	Benefits    []string `json:"benefits,omitempty"`
}

// Icon maps well-known plan names to an icon name.
func (p Plan) Icon() string {
	switch strings.ToLower(p.Name) {
	case "basic":
		return "star-outline"
	case "premium":
		return "star-half"
	case "gold":
		return "star"
	default:
		return "card-membership"
	}
}

// Subscription is the user's active plan.
type Subscription struct {
	ID              string     `json:"_id,omitempty"`
	Plan            *Plan      `json:"plan,omitempty"`
	Amount          int64      `json:"amount"`
	Status          string     `json:"status"`
	StartDate       time.Time  `json:"startDate"`
	NextBillingDate *time.Time `json:"nextBillingDate,omitempty"`
}

// IsPlan reports whether the subscription is for planID.
func (s *Subscription) IsPlan(planID string) bool {
	return s != nil && s.Plan != nil && s.Plan.ID == planID
}

// PaymentMethod is a tokenized card stored by the backend.
type PaymentMethod struct {
	ID      string `json:"_id"`
	Type    string `json:"type"`
	TokenID string `json:"tokenId,omitempty"`
}
