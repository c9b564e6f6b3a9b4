// Package httpapi serves the donation platform REST API from an in-memory
// store.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/gophgive/internal/common"
	"github.com/dmitrijs2005/gophgive/internal/devserver/auth"
	"github.com/dmitrijs2005/gophgive/internal/devserver/store"
	"github.com/dmitrijs2005/gophgive/internal/logging"
)

type ctxKey string

const userIDKey ctxKey = "userID"

type Server struct {
	store     *store.Store
	logger    logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	publicURL string
}

// NewServer builds the API. An empty publicURL makes invoice links point
// at the host the request came in on.
func NewServer(st *store.Store, logger logging.Logger, secretKey string, tokenTTL time.Duration, publicURL string) *Server {
	return &Server{
		store:     st,
		logger:    logger.With("module", "http_server"),
		jwtSecret: []byte(secretKey),
		tokenTTL:  tokenTTL,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/users/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", s.login).Methods(http.MethodPost)
	api.HandleFunc("/activities", s.activities).Methods(http.MethodGet)
	api.HandleFunc("/activities/{id}", s.activity).Methods(http.MethodGet)
	api.HandleFunc("/news/activity/{id}", s.news).Methods(http.MethodGet)
	api.HandleFunc("/expenses/activity/{id}", s.expenses).Methods(http.MethodGet)
	api.HandleFunc("/donations", s.donations).Methods(http.MethodGet)
	api.HandleFunc("/subscriptions/plans", s.plans).Methods(http.MethodGet)

	private := api.NewRoute().Subrouter()
	private.Use(s.authenticate)

	private.HandleFunc("/users/profile", s.profile).Methods(http.MethodGet)
	private.HandleFunc("/users/profile", s.updateProfile).Methods(http.MethodPut)
	private.HandleFunc("/donations", s.createDonation).Methods(http.MethodPost)
	private.HandleFunc("/activities/{id}/volunteer", s.addVolunteer).Methods(http.MethodPost)
	private.HandleFunc("/activities/{id}/volunteer/{volunteerId}", s.removeVolunteer).Methods(http.MethodDelete)
	private.HandleFunc("/gamification/achievements/{userId}", s.achievements).Methods(http.MethodGet)
	private.HandleFunc("/subscriptions/my-subscription", s.mySubscription).Methods(http.MethodGet)
	private.HandleFunc("/subscriptions/payment-methods", s.paymentMethods).Methods(http.MethodGet)
	private.HandleFunc("/subscriptions/payment-method", s.addPaymentMethod).Methods(http.MethodPost)
	private.HandleFunc("/subscriptions", s.subscribe).Methods(http.MethodPost)
	private.HandleFunc("/subscriptions", s.cancelSubscription).Methods(http.MethodDelete)

	r.HandleFunc("/payment/checkout/{donationId}", s.checkout).Methods(http.MethodGet)
	r.HandleFunc("/payment/success", s.paymentPage("Payment successful")).Methods(http.MethodGet)
	r.HandleFunc("/payment/failed", s.paymentPage("Payment failed")).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(common.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method, "path", r.URL.Path, "status", rec.status,
			"request_id", requestID, "elapsed", time.Since(start))
	})
}

// authenticate requires a valid bearer token and puts its user id into the
// request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthorizationHeader)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimSpace(token), s.jwtSecret)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "Token expired"
			}
			writeError(w, http.StatusUnauthorized, msg)
			return
		}
		if _, err := s.store.User(userID); err != nil {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

type messageBody struct {
	Message string `json:"message"`
}

type dataBody struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageBody{Message: msg})
}

// fail maps store errors to a status; msg is sent to the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyExists):
		status = http.StatusConflict
	case errors.Is(err, store.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrInvalidLoginPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, store.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, store.ErrPaymentMethodRequired):
		status = http.StatusPaymentRequired
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		msg = "Internal server error"
	}
	writeError(w, status, msg)
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(store.ErrValidation, err)
	}
	return nil
}

func (s *Server) baseURL(r *http.Request) string {
	if s.publicURL != "" {
		return s.publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
