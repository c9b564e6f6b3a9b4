package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophgive/internal/client/models"
	"github.com/dmitrijs2005/gophgive/internal/common"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

const maxErrorBody = 1 << 20

type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient builds a client for baseURL. Requests carry the token from
// tokens when there is one.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: NewAuthTransport(http.DefaultTransport, tokens),
		},
		logger: logger.With("module", "api_client"),
	}, nil
}

type envelope[T any] struct {
	Data T `json:"data"`
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var res LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/users/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.do(ctx, http.MethodPost, "/api/users/register", body, nil)
}

// Profile accepts the user object under "user", under "data" or as the
// body itself.
func (c *HTTPClient) Profile(ctx context.Context) (*models.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/users/profile", nil, &raw); err != nil {
		return nil, err
	}

	var wrapped struct {
		User *models.User `json:"user"`
		Data *models.User `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	switch {
	case wrapped.User != nil:
		return wrapped.User, nil
	case wrapped.Data != nil:
		return wrapped.Data, nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &u, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPut, "/api/users/profile", map[string]string{"name": name}, nil)
}

func (c *HTTPClient) Activities(ctx context.Context) ([]models.Activity, error) {
	var res envelope[[]models.Activity]
	if err := c.do(ctx, http.MethodGet, "/api/activities", nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *HTTPClient) Activity(ctx context.Context, id string) (*models.Activity, error) {
	var res envelope[*models.Activity]
	if err := c.do(ctx, http.MethodGet, "/api/activities/"+url.PathEscape(id), nil, &res); err != nil {
		return nil, err
	}
	if res.Data == nil {
		return nil, ErrNotFound
	}
	return res.Data, nil
}

func (c *HTTPClient) ActivityNews(ctx context.Context, activityID string) ([]models.News, error) {
	var res envelope[[]models.News]
	if err := c.do(ctx, http.MethodGet, "/api/news/activity/"+url.PathEscape(activityID), nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *HTTPClient) ActivityExpenses(ctx context.Context, activityID string) ([]models.Expense, error) {
	var res envelope[[]models.Expense]
	if err := c.do(ctx, http.MethodGet, "/api/expenses/activity/"+url.PathEscape(activityID), nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *HTTPClient) Donations(ctx context.Context) ([]models.Donation, error) {
	var res envelope[[]models.Donation]
	if err := c.do(ctx, http.MethodGet, "/api/donations", nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *HTTPClient) CreateDonation(ctx context.Context, req DonationRequest) (*models.Invoice, error) {
	var inv models.Invoice
	if err := c.do(ctx, http.MethodPost, "/api/donations", req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (c *HTTPClient) RegisterVolunteer(ctx context.Context, activityID string, req VolunteerRequest) error {
	return c.do(ctx, http.MethodPost, "/api/activities/"+url.PathEscape(activityID)+"/volunteer", req, nil)
}

func (c *HTTPClient) UnregisterVolunteer(ctx context.Context, activityID, volunteerID string) error {
	p := "/api/activities/" + url.PathEscape(activityID) + "/volunteer/" + url.PathEscape(volunteerID)
	return c.do(ctx, http.MethodDelete, p, nil, nil)
}

func (c *HTTPClient) Achievements(ctx context.Context, userID string) (*models.AchievementSummary, error) {
	var res models.AchievementSummary
	if err := c.do(ctx, http.MethodGet, "/api/gamification/achievements/"+url.PathEscape(userID), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Plans(ctx context.Context) ([]models.Plan, error) {
	var res envelope[[]models.Plan]
	if err := c.do(ctx, http.MethodGet, "/api/subscriptions/plans", nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

// MySubscription returns nil without error when there is no active
// subscription.
func (c *HTTPClient) MySubscription(ctx context.Context) (*models.Subscription, error) {
	var res envelope[*models.Subscription]
	if err := c.do(ctx, http.MethodGet, "/api/subscriptions/my-subscription", nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *HTTPClient) PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	var res envelope[[]models.PaymentMethod]
	if err := c.do(ctx, http.MethodGet, "/api/subscriptions/payment-methods", nil, &res); err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (c *HTTPClient) AddPaymentMethod(ctx context.Context, tokenID string) error {
	body := map[string]string{"type": "CARD", "tokenId": tokenID}
	return c.do(ctx, http.MethodPost, "/api/subscriptions/payment-method", body, nil)
}

func (c *HTTPClient) Subscribe(ctx context.Context, planID string, amount int64) error {
	body := struct {
		PlanID string `json:"planId"`
		Amount int64  `json:"amount"`
	}{planID, amount}
	return c.do(ctx, http.MethodPost, "/api/subscriptions", body, nil)
}

func (c *HTTPClient) CancelSubscription(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/subscriptions", nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", resp.Header.Get(common.RequestIDHeader), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(b, &eb)
		return newAPIError(resp.StatusCode, eb.Message)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
