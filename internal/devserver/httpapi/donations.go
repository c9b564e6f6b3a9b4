package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
)

type donationRequest struct {
	ActivityID string `json:"activityId"`
	PayerEmail string `json:"payerEmail"`
	UserID     string `json:"userId"`
	Amount     int64  `json:"amount"`
}

type invoiceResponse struct {
	DonationID string `json:"donationId"`
	InvoiceURL string `json:"invoiceUrl"`
}

func (s *Server) donations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dataBody{Data: s.store.Donations()})
}

// createDonation records a pending donation and returns the checkout link.
// The payer is the token's user.
func (s *Server) createDonation(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err, "Invalid request body")
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "Amount must be greater than 0")
		return
	}

	userID := userIDFrom(r.Context())
	email := req.PayerEmail
	if email == "" {
		if u, err := s.store.User(userID); err == nil {
			email = u.Email
		}
	}

	d, err := s.store.CreateDonation(req.ActivityID, userID, email, req.Amount)
	if err != nil {
		s.fail(w, r, err, "Activity not found")
		return
	}

	writeJSON(w, http.StatusCreated, invoiceResponse{
		DonationID: d.ID,
		InvoiceURL: fmt.Sprintf("%s/payment/checkout/%s", s.baseURL(r), url.PathEscape(d.ID)),
	})
}

// checkout stands in for a payment gateway: it pays the donation and
// redirects to the success page.
func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	id := muxVar(r, "donationId")

	d, err := s.store.CompleteDonation(id)
	if err != nil {
		s.logger.Warn(r.Context(), "checkout failed", "donation_id", id, "error", err)
		http.Redirect(w, r, s.baseURL(r)+"/payment/failed?donationId="+url.QueryEscape(id), http.StatusSeeOther)
		return
	}

	s.logger.Info(r.Context(), "donation paid", "donation_id", d.ID, "amount", d.Amount)
	http.Redirect(w, r, s.baseURL(r)+"/payment/success?donationId="+url.QueryEscape(d.ID), http.StatusSeeOther)
}

func (s *Server) paymentPage(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, text)
	}
}
