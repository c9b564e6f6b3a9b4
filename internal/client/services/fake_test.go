package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophgive/internal/client/client"
	"github.com/dmitrijs2005/gophgive/internal/client/localdb"
	"github.com/dmitrijs2005/gophgive/internal/client/models"
	sessionrepo "github.com/dmitrijs2005/gophgive/internal/client/repositories/session"
	"github.com/dmitrijs2005/gophgive/internal/client/session"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

// fakeClient implements client.Client and records every call by name.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	LoginRes *client.LoginResult
	LoginErr error

	RegisterErr error

	ProfileRes *models.User
	ProfileErr error
	UpdateErr  error
	LastName   string

	ActivitiesRes []models.Activity
	ActivityRes   *models.Activity
	ActivityErr   error
	NewsRes       []models.News
	NewsErr       error
	ExpensesRes   []models.Expense
	ExpensesErr   error
	DonationsRes  []models.Donation
	DonationsErr  error

	InvoiceRes    *models.Invoice
	DonationErr   error
	LastDonation  client.DonationRequest
	VolunteerErr  error
	LastVolunteer client.VolunteerRequest
	LastUnregID   string

	SummaryRes *models.AchievementSummary
	SummaryErr error

	PlansRes      []models.Plan
	PlansErr      error
	SubRes        *models.Subscription
	SubErr        error
	MethodsRes    []models.PaymentMethod
	MethodsErr    error
	AddMethodErr  error
	SubscribeErr  error
	CancelErr     error
	LastPlanID    string
	LastPlanPrice int64
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) Login(_ context.Context, _, _ string) (*client.LoginResult, error) {
	f.record("Login")
	return f.LoginRes, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, _, _, _ string) error {
	f.record("Register")
	return f.RegisterErr
}

func (f *fakeClient) Profile(context.Context) (*models.User, error) {
	f.record("Profile")
	return f.ProfileRes, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, name string) error {
	f.record("UpdateProfile")
	f.LastName = name
	return f.UpdateErr
}

func (f *fakeClient) Activities(context.Context) ([]models.Activity, error) {
	f.record("Activities")
	return f.ActivitiesRes, nil
}

func (f *fakeClient) Activity(context.Context, string) (*models.Activity, error) {
	f.record("Activity")
	return f.ActivityRes, f.ActivityErr
}

func (f *fakeClient) ActivityNews(context.Context, string) ([]models.News, error) {
	f.record("ActivityNews")
	return f.NewsRes, f.NewsErr
}

func (f *fakeClient) ActivityExpenses(context.Context, string) ([]models.Expense, error) {
	f.record("ActivityExpenses")
	return f.ExpensesRes, f.ExpensesErr
}

func (f *fakeClient) Donations(context.Context) ([]models.Donation, error) {
	f.record("Donations")
	return f.DonationsRes, f.DonationsErr
}

func (f *fakeClient) CreateDonation(_ context.Context, req client.DonationRequest) (*models.Invoice, error) {
	f.record("CreateDonation")
	f.LastDonation = req
	return f.InvoiceRes, f.DonationErr
}

func (f *fakeClient) RegisterVolunteer(_ context.Context, _ string, req client.VolunteerRequest) error {
	f.record("RegisterVolunteer")
	f.LastVolunteer = req
	return f.VolunteerErr
}

func (f *fakeClient) UnregisterVolunteer(_ context.Context, _, volunteerID string) error {
	f.record("UnregisterVolunteer")
	f.LastUnregID = volunteerID
	return f.VolunteerErr
}

func (f *fakeClient) Achievements(context.Context, string) (*models.AchievementSummary, error) {
	f.record("Achievements")
	return f.SummaryRes, f.SummaryErr
}

func (f *fakeClient) Plans(context.Context) ([]models.Plan, error) {
	f.record("Plans")
	return f.PlansRes, f.PlansErr
}

func (f *fakeClient) MySubscription(context.Context) (*models.Subscription, error) {
	f.record("MySubscription")
	return f.SubRes, f.SubErr
}

func (f *fakeClient) PaymentMethods(context.Context) ([]models.PaymentMethod, error) {
	f.record("PaymentMethods")
	return f.MethodsRes, f.MethodsErr
}

func (f *fakeClient) AddPaymentMethod(context.Context, string) error {
	f.record("AddPaymentMethod")
	return f.AddMethodErr
}

func (f *fakeClient) Subscribe(_ context.Context, planID string, amount int64) error {
	f.record("Subscribe")
	f.LastPlanID, f.LastPlanPrice = planID, amount
	return f.SubscribeErr
}

func (f *fakeClient) CancelSubscription(context.Context) error {
	f.record("CancelSubscription")
	return f.CancelErr
}

func newStore(t *testing.T) *session.Store {
	t.Helper()
	db, err := localdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewStore(sessionrepo.NewSQLiteRepository(db), logging.Discard())
}

func loggedIn(t *testing.T, s *session.Store) {
	t.Helper()
	require.NoError(t, s.Replace(context.Background(), session.Session{
		AccessToken: "abc",
		UserID:      "42",
		Username:    "Budi",
		Email:       "budi@example.com",
	}))
}
