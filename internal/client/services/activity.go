package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/gophgive/internal/client/client"
	"github.com/dmitrijs2005/gophgive/internal/client/models"
	"github.com/dmitrijs2005/gophgive/internal/client/session"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

const (
	DefaultVolunteerPhone = "08123456789"
	DefaultVolunteerNote  = "Saya ingin membantu sebagai volunteer"
)

// ActivityDetail bundles everything the detail screen shows. News,
// Expenses and Donations are empty when they could not be loaded.
type ActivityDetail struct {
	Activity    models.Activity
	News        []models.News
	Expenses    []models.Expense
	Donations   []models.Donation
	IsVolunteer bool
}

// TotalExpenses sums the activity's expenses.
func (d *ActivityDetail) TotalExpenses() int64 {
	var total int64
	for _, e := range d.Expenses {
		total += e.Amount
	}
	return total
}

type PaymentOutcome int

const (
	PaymentPending PaymentOutcome = iota
	PaymentPaid
	PaymentFailed
)

func (o PaymentOutcome) String() string {
	switch o {
	case PaymentPaid:
		return "paid"
	case PaymentFailed:
		return "failed"
	default:
		return "pending"
	}
}

type ActivityService interface {
	List(ctx context.Context) ([]models.Activity, error)
	Detail(ctx context.Context, id string) (*ActivityDetail, error)
	// MyDonations lists the donations made by the stored user.
	MyDonations(ctx context.Context) ([]models.Donation, error)
	// ToggleVolunteer registers the user for the activity or, when already
	// registered, unregisters. It returns the new registration state.
	ToggleVolunteer(ctx context.Context, id, phone, note string, refresh ...Refresh) (bool, error)
	Donate(ctx context.Context, id string, amount int64, refresh ...Refresh) (*models.Invoice, error)
	PaymentOutcome(checkoutURL string) PaymentOutcome
}

type activityService struct {
	client client.Client
	store  *session.Store
	gate   *ActionGate
	logger logging.Logger
}

func NewActivityService(client client.Client, store *session.Store, gate *ActionGate, logger logging.Logger) ActivityService {
	return &activityService{client: client, store: store, gate: gate, logger: logger.With("module", "activity_service")}
}

func (s *activityService) List(ctx context.Context) ([]models.Activity, error) {
	list, err := s.client.Activities(ctx)
	if err != nil {
		return nil, fmt.Errorf("activities error: %w", err)
	}
	return list, nil
}

// Detail fails only when the activity itself cannot be loaded.
func (s *activityService) Detail(ctx context.Context, id string) (*ActivityDetail, error) {
	userID := s.store.Lookup(ctx, session.KeyUserID)

	a, err := s.client.Activity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("activity error: %w", err)
	}

	d := &ActivityDetail{Activity: *a, IsVolunteer: a.HasVolunteer(userID)}

	if d.News, err = s.client.ActivityNews(ctx, id); err != nil {
		s.logger.Debug(ctx, "no news", "activity_id", id, "error", err)
		d.News = nil
	}
	if d.Expenses, err = s.client.ActivityExpenses(ctx, id); err != nil {
		s.logger.Debug(ctx, "no expenses", "activity_id", id, "error", err)
		d.Expenses = nil
	}

	if userID != "" {
		all, err := s.client.Donations(ctx)
		if err != nil {
			s.logger.Debug(ctx, "no donations", "activity_id", id, "error", err)
		}
		for _, dn := range all {
			if dn.ActivityID == id {
				d.Donations = append(d.Donations, dn)
			}
		}
	}
	return d, nil
}

func (s *activityService) MyDonations(ctx context.Context) ([]models.Donation, error) {
	snap := s.store.Snapshot(ctx)
	if !snap.Authenticated() || snap.UserID == "" {
		return nil, &AuthRequiredError{Action: "see your donations"}
	}

	all, err := s.client.Donations(ctx)
	if err != nil {
		return nil, fmt.Errorf("donations error: %w", err)
	}

	var mine []models.Donation
	for _, d := range all {
		if d.UserID == snap.UserID {
			mine = append(mine, d)
		}
	}
	return mine, nil
}

func (s *activityService) ToggleVolunteer(ctx context.Context, id, phone, note string, refresh ...Refresh) (bool, error) {
	var registered bool

	err := s.gate.Run(ctx, ActionVolunteer, func(ctx context.Context) error {
		snap := s.store.Snapshot(ctx)
		if snap.UserID == "" {
			return &AuthRequiredError{Action: ActionVolunteer}
		}

		a, err := s.client.Activity(ctx, id)
		if err != nil {
			return fmt.Errorf("activity error: %w", err)
		}

		if v, ok := a.FindVolunteer(snap.UserID); ok {
			if v.ID == "" {
				return ErrVolunteerNotFound
			}
			if err := s.client.UnregisterVolunteer(ctx, id, v.ID); err != nil {
				return fmt.Errorf("unregister volunteer error: %w", err)
			}
			registered = false
			return nil
		}

		req := client.VolunteerRequest{
			UserID: snap.UserID,
			Name:   snap.Username,
			Phone:  firstNonEmpty(phone, DefaultVolunteerPhone),
			Note:   firstNonEmpty(note, DefaultVolunteerNote),
		}
		if err := s.client.RegisterVolunteer(ctx, id, req); err != nil {
			return fmt.Errorf("register volunteer error: %w", err)
		}
		registered = true
		return nil
	}, refresh...)

	return registered, err
}

// Donate creates an invoice; the user pays at the returned URL.
func (s *activityService) Donate(ctx context.Context, id string, amount int64, refresh ...Refresh) (*models.Invoice, error) {
	var inv *models.Invoice

	err := s.gate.Run(ctx, ActionDonate, func(ctx context.Context) error {
		snap := s.store.Snapshot(ctx)
		if snap.Email == "" {
			return ErrEmailMissing
		}
		if amount <= 0 {
			return ErrInvalidAmount
		}

		res, err := s.client.CreateDonation(ctx, client.DonationRequest{
			ActivityID: id,
			PayerEmail: snap.Email,
			UserID:     snap.UserID,
			Amount:     amount,
		})
		if err != nil {
			return fmt.Errorf("donation error: %w", err)
		}
		if res.InvoiceURL == "" {
			return ErrInvoiceMissing
		}
		inv = res
		return nil
	}, refresh...)

	return inv, err
}

// PaymentOutcome classifies a checkout redirect by its path.
func (s *activityService) PaymentOutcome(checkoutURL string) PaymentOutcome {
	p := checkoutURL
	if u, err := url.Parse(checkoutURL); err == nil && u.Path != "" {
		p = u.Path
	}
	switch {
	case strings.Contains(p, "/payment/success"):
		return PaymentPaid
	case strings.Contains(p, "/payment/failed"), strings.Contains(p, "/payment/cancel"):
		return PaymentFailed
	default:
		return PaymentPending
	}
}
