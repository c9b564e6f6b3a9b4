package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophgive/internal/client/client"
	"github.com/dmitrijs2005/gophgive/internal/client/models"
	"github.com/dmitrijs2005/gophgive/internal/client/session"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

// Overview is the subscription screen. Subscription and payment method
// data are only loaded for a logged-in user; each part degrades on its
// own.
type Overview struct {
	LoggedIn         bool
	Plans            []models.Plan
	Subscription     *models.Subscription
	HasPaymentMethod bool
}

type SubscriptionService interface {
	Overview(ctx context.Context) Overview
	Subscribe(ctx context.Context, planID string, refresh ...Refresh) (*models.Plan, error)
	Cancel(ctx context.Context, refresh ...Refresh) error
	AddPaymentMethod(ctx context.Context, tokenID string, refresh ...Refresh) error
}

type subscriptionService struct {
	client client.Client
	store  *session.Store
	gate   *ActionGate
	logger logging.Logger
}

func NewSubscriptionService(client client.Client, store *session.Store, gate *ActionGate, logger logging.Logger) SubscriptionService {
	return &subscriptionService{client: client, store: store, gate: gate, logger: logger.With("module", "subscription_service")}
}

func (s *subscriptionService) Overview(ctx context.Context) Overview {
	var ov Overview

	plans, err := s.client.Plans(ctx)
	if err != nil {
		s.logger.Warn(ctx, "plans unavailable", "error", err)
	}
	ov.Plans = plans

	token, err := s.store.AccessToken(ctx)
	if err != nil || strings.TrimSpace(token) == "" {
		return ov
	}
	ov.LoggedIn = true

	if ov.Subscription, err = s.client.MySubscription(ctx); err != nil {
		s.logger.Debug(ctx, "no active subscription", "error", err)
		ov.Subscription = nil
	}

	pms, err := s.client.PaymentMethods(ctx)
	if err != nil {
		s.logger.Debug(ctx, "no payment method", "error", err)
	}
	ov.HasPaymentMethod = len(pms) > 0

	return ov
}

// Subscribe returns the plan subscribed to. The plan must exist and a
// payment method must be on file.
func (s *subscriptionService) Subscribe(ctx context.Context, planID string, refresh ...Refresh) (*models.Plan, error) {
	var plan *models.Plan

	err := s.gate.Run(ctx, ActionSubscribe, func(ctx context.Context) error {
		plans, err := s.client.Plans(ctx)
		if err != nil {
			return fmt.Errorf("plans error: %w", err)
		}
		for i := range plans {
			if plans[i].ID == planID {
				plan = &plans[i]
				break
			}
		}
		if plan == nil {
			return ErrPlanNotFound
		}

		pms, err := s.client.PaymentMethods(ctx)
		if err != nil || len(pms) == 0 {
			return ErrPaymentMethodRequired
		}

		if err := s.client.Subscribe(ctx, plan.ID, plan.Amount); err != nil {
			return fmt.Errorf("subscribe error: %w", err)
		}
		return nil
	}, refresh...)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, refresh ...Refresh) error {
	return s.gate.Run(ctx, ActionCancelSubscription, func(ctx context.Context) error {
		if err := s.client.CancelSubscription(ctx); err != nil {
			return fmt.Errorf("cancel subscription error: %w", err)
		}
		return nil
	}, refresh...)
}

// AddPaymentMethod stores a card tokenized elsewhere.
func (s *subscriptionService) AddPaymentMethod(ctx context.Context, tokenID string, refresh ...Refresh) error {
	return s.gate.Run(ctx, ActionAddPaymentMethod, func(ctx context.Context) error {
		tokenID = strings.TrimSpace(tokenID)
		if tokenID == "" {
			return ErrCardTokenRequired
		}
		if err := s.client.AddPaymentMethod(ctx, tokenID); err != nil {
			return fmt.Errorf("add payment method error: %w", err)
		}
		return nil
	}, refresh...)
}
