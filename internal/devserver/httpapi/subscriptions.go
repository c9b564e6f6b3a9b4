package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophgive/internal/devserver/store"
)

func (s *Server) plans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dataBody{Data: s.store.Plans()})
}

// mySubscription answers {"data": null} when there is no active
// subscription.
func (s *Server) mySubscription(w http.ResponseWriter, r *http.Request) {
	sub := s.store.Subscription(userIDFrom(r.Context()))
	if sub == nil {
		writeJSON(w, http.StatusOK, dataBody{Data: nil})
		return
	}
	writeJSON(w, http.StatusOK, dataBody{Data: sub})
}

func (s *Server) paymentMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dataBody{Data: s.store.PaymentMethods(userIDFrom(r.Context()))})
}

func (s *Server) addPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    string `json:"type"`
		TokenID string `json:"tokenId"`
	}
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err, "Invalid request body")
		return
	}

	pm, err := s.store.AddPaymentMethod(userIDFrom(r.Context()), req.Type, req.TokenID)
	if err != nil {
		s.fail(w, r, err, "Card token is required")
		return
	}
	writeJSON(w, http.StatusCreated, dataBody{Data: pm})
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlanID string `json:"planId"`
		Amount int64  `json:"amount"`
	}
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err, "Invalid request body")
		return
	}

	sub, err := s.store.Subscribe(userIDFrom(r.Context()), req.PlanID, req.Amount)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, store.ErrNotFound):
			msg = "Plan not found"
		case errors.Is(err, store.ErrPaymentMethodRequired):
			msg = "Payment method required"
		default:
			msg = "Amount does not match the plan"
		}
		s.fail(w, r, err, msg)
		return
	}
	writeJSON(w, http.StatusCreated, dataBody{Data: sub})
}

func (s *Server) cancelSubscription(w http.ResponseWriter, r *http.Request) {
	if err := s.store.CancelSubscription(userIDFrom(r.Context())); err != nil {
		s.fail(w, r, err, "No active subscription")
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Subscription cancelled"})
}
