// Package store keeps the development backend's data in memory.
//
// Every method is safe for concurrent use. Returned values are copies;
// changing them does not affect the store.
package store

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	mu    sync.RWMutex
	now   func() time.Time
	newID func() string

	users          map[string]*User
	emails         map[string]string
	activities     []*Activity
	news           []News
	expenses       []Expense
	donations      []*Donation
	plans          []Plan
	subscriptions  map[string]*Subscription
	paymentMethods map[string][]PaymentMethod
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:            time.Now,
		newID:          uuid.NewString,
		users:          make(map[string]*User),
		emails:         make(map[string]string),
		subscriptions:  make(map[string]*Subscription),
		paymentMethods: make(map[string][]PaymentMethod),
	}
}

// NewSeeded returns a store with demo activities and plans.
func NewSeeded() *Store {
	s := New()
	s.seed()
	return s
}

func (s *Store) CreateUser(name, email string, passwordHash []byte) (*User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || len(passwordHash) == 0 {
		return nil, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := s.emails[key]; ok {
		return nil, ErrAlreadyExists
	}

	u := &User{
		ID:             s.newID(),
		Name:           name,
		Email:          email,
		Role:           "user",
		passwordHash:   passwordHash,
		achievementIDs: make(map[string]struct{}),
	}
	s.users[u.ID] = u
	s.emails[key] = u.ID
	return cloneUser(u), nil
}

// Credentials returns the user registered with email and its password hash.
func (s *Store) Credentials(email string) (*User, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil, ErrNotFound
	}
	u := s.users[id]
	return cloneUser(u), slices.Clone(u.passwordHash), nil
}

func (s *Store) User(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) UpdateUserName(id, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Name = name
	return cloneUser(u), nil
}

func (s *Store) Activities() []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Activity, 0, len(s.activities))
	for _, a := range s.activities {
		out = append(out, cloneActivity(a))
	}
	return out
}

func (s *Store) Activity(id string) (*Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.findActivity(id)
	if a == nil {
		return nil, ErrNotFound
	}
	c := cloneActivity(a)
	return &c, nil
}

func (s *Store) News(activityID string) []News {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []News{}
	for _, n := range s.news {
		if n.ActivityID == activityID {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) Expenses(activityID string) []Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Expense{}
	for _, e := range s.expenses {
		if e.ActivityID == activityID {
			out = append(out, e)
		}
	}
	return out
}

// AddVolunteer registers userID for the activity and awards volunteer
// points.
func (s *Store) AddVolunteer(activityID, userID string, v Volunteer) (*Volunteer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findActivity(activityID)
	if a == nil {
		return nil, ErrNotFound
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	for _, existing := range a.Volunteers {
		if existing.UserID == userID {
			return nil, ErrAlreadyExists
		}
	}

	v.ID = s.newID()
	v.UserID = userID
	if strings.TrimSpace(v.Name) == "" {
		v.Name = u.Name
	}
	a.Volunteers = append(a.Volunteers, v)
	a.CollectedVolunteer++

	u.TotalVolunteerActivities++
	s.award(u, pointsVolunteer, reasonVolunteer)
	return &v, nil
}

// RemoveVolunteer deletes a volunteer entry. Only its owner may remove it.
func (s *Store) RemoveVolunteer(activityID, volunteerID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findActivity(activityID)
	if a == nil {
		return ErrNotFound
	}
	i := slices.IndexFunc(a.Volunteers, func(v Volunteer) bool { return v.ID == volunteerID })
	if i < 0 {
		return ErrNotFound
	}
	if a.Volunteers[i].UserID != userID {
		return ErrForbidden
	}

	a.Volunteers = slices.Delete(a.Volunteers, i, i+1)
	if a.CollectedVolunteer > 0 {
		a.CollectedVolunteer--
	}
	return nil
}

func (s *Store) Donations() []Donation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Donation, 0, len(s.donations))
	for _, d := range s.donations {
		out = append(out, *d)
	}
	return out
}

// CreateDonation records a pending donation; it is paid through
// CompleteDonation.
func (s *Store) CreateDonation(activityID, userID, payerEmail string, amount int64) (*Donation, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findActivity(activityID) == nil {
		return nil, ErrNotFound
	}

	d := &Donation{
		ID:         s.newID(),
		ActivityID: activityID,
		UserID:     userID,
		PayerEmail: payerEmail,
		Amount:     amount,
		Status:     DonationPending,
		CreatedAt:  s.now(),
	}
	s.donations = append(s.donations, d)
	c := *d
	return &c, nil
}

// CompleteDonation marks a pending donation paid, adds it to the activity
// and awards donation points. Completing a paid donation changes nothing.
func (s *Store) CompleteDonation(id string) (*Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.donations, func(d *Donation) bool { return d.ID == id })
	if i < 0 {
		return nil, ErrNotFound
	}
	d := s.donations[i]

	if d.Status == DonationPending {
		d.Status = DonationPaid
		if a := s.findActivity(d.ActivityID); a != nil {
			a.CollectedMoney += d.Amount
		}
		if u, ok := s.users[d.UserID]; ok {
			u.TotalDonations++
			u.donatedAmount += d.Amount
			s.award(u, pointsDonation, reasonDonation)
		}
	}

	c := *d
	return &c, nil
}

func (s *Store) Plans() []Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Plan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, clonePlan(p))
	}
	return out
}

// Subscription returns the user's active subscription or nil.
func (s *Store) Subscription(userID string) *Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subscriptions[userID]
	if !ok || sub.Status != SubscriptionActive {
		return nil
	}
	return cloneSubscription(sub)
}

// Subscribe starts or replaces the user's subscription. A payment method
// must be on file and amount must match the plan.
func (s *Store) Subscribe(userID, planID string, amount int64) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.plans, func(p Plan) bool { return p.ID == planID })
	if i < 0 {
		return nil, ErrNotFound
	}
	plan := clonePlan(s.plans[i])
	if amount != plan.Amount {
		return nil, fmt.Errorf("%w: amount does not match the plan", ErrValidation)
	}
	if len(s.paymentMethods[userID]) == 0 {
		return nil, ErrPaymentMethodRequired
	}

	now := s.now()
	next := now.AddDate(0, 1, 0)
	sub := &Subscription{
		ID:              s.newID(),
		UserID:          userID,
		Plan:            &plan,
		Amount:          amount,
		Status:          SubscriptionActive,
		StartDate:       now,
		NextBillingDate: &next,
	}
	s.subscriptions[userID] = sub
	return cloneSubscription(sub), nil
}

func (s *Store) CancelSubscription(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subscriptions[userID]
	if !ok || sub.Status != SubscriptionActive {
		return ErrNotFound
	}
	sub.Status = SubscriptionCancelled
	sub.NextBillingDate = nil
	return nil
}

func (s *Store) PaymentMethods(userID string) []PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]PaymentMethod{}, s.paymentMethods[userID]...)
}

func (s *Store) AddPaymentMethod(userID, kind, tokenID string) (*PaymentMethod, error) {
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return nil, fmt.Errorf("%w: tokenId is required", ErrValidation)
	}
	if kind == "" {
		kind = "CARD"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pm := PaymentMethod{ID: s.newID(), UserID: userID, Type: kind, TokenID: tokenID}
	s.paymentMethods[userID] = append(s.paymentMethods[userID], pm)
	return &pm, nil
}

func (s *Store) findActivity(id string) *Activity {
	for _, a := range s.activities {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func cloneUser(u *User) *User {
	c := *u
	c.Achievements = slices.Clone(u.Achievements)
	c.ActivityLog = slices.Clone(u.ActivityLog)
	c.passwordHash = nil
	c.achievementIDs = nil
	return &c
}

func cloneActivity(a *Activity) Activity {
	c := *a
	c.Images = slices.Clone(a.Images)
	c.Volunteers = slices.Clone(a.Volunteers)
	if c.Volunteers == nil {
		c.Volunteers = []Volunteer{}
	}
	return c
}

func clonePlan(p Plan) Plan {
	p.Benefits = slices.Clone(p.Benefits)
	return p
}

func cloneSubscription(sub *Subscription) *Subscription {
	c := *sub
	if sub.Plan != nil {
		p := clonePlan(*sub.Plan)
		c.Plan = &p
	}
	return &c
}
