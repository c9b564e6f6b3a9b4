package client

import (
	"context"

	"github.com/dmitrijs2005/gophgive/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, name, email, password string) error
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, name string) error

	Activities(ctx context.Context) ([]models.Activity, error)
	Activity(ctx context.Context, id string) (*models.Activity, error)
	ActivityNews(ctx context.Context, activityID string) ([]models.News, error)
	ActivityExpenses(ctx context.Context, activityID string) ([]models.Expense, error)

	Donations(ctx context.Context) ([]models.Donation, error)
	CreateDonation(ctx context.Context, req DonationRequest) (*models.Invoice, error)
	RegisterVolunteer(ctx context.Context, activityID string, req VolunteerRequest) error
	UnregisterVolunteer(ctx context.Context, activityID, volunteerID string) error

	Achievements(ctx context.Context, userID string) (*models.AchievementSummary, error)

	Plans(ctx context.Context) ([]models.Plan, error)
	MySubscription(ctx context.Context) (*models.Subscription, error)
	PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
	AddPaymentMethod(ctx context.Context, tokenID string) error
	Subscribe(ctx context.Context, planID string, amount int64) error
	CancelSubscription(ctx context.Context) error
}

// LoginResult is the login response. User is set only when the backend
// returns it along with the token.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

type DonationRequest struct {
	ActivityID string `json:"activityId"`
	PayerEmail string `json:"payerEmail"`
	UserID     string `json:"userId"`
	Amount     int64  `json:"amount"`
}

type VolunteerRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Note   string `json:"note"`
}
