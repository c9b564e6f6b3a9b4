package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophgive/internal/logging"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) AccessToken(context.Context) (string, error) { return s.token, s.err }

func newTestClient(t *testing.T, token string, h http.Handler) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL+"/", staticTokens{token: token}, 5*time.Second, logging.Discard())
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewHTTPClient_InvalidURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com", nil, time.Second, logging.Discard())
	assert.Error(t, err)

	_, err = NewHTTPClient("://bad", nil, time.Second, logging.Discard())
	assert.Error(t, err)
}

func TestRequestID_SetByTransportOnly(t *testing.T) {
	var got [][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Values("X-Request-ID"))
		writeJSON(w, http.StatusOK, map[string]any{"data": []any{}})
	}))
	t.Cleanup(srv.Close)
	ctx := context.Background()

	bare := &HTTPClient{baseURL: srv.URL, http: srv.Client(), logger: logging.Discard()}
	_, err := bare.Activities(ctx)
	require.NoError(t, err)

	c, err := NewHTTPClient(srv.URL, nil, 5*time.Second, logging.Discard())
	require.NoError(t, err)
	_, err = c.Activities(ctx)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Empty(t, got[0])
	require.Len(t, got[1], 1)
	_, err = uuid.Parse(got[1][0])
	assert.NoError(t, err)
}

func TestLogin_SendsCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.c", body["email"])
		assert.Equal(t, "secret", body["password"])
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok", "user": map[string]any{"_id": "42", "name": "Ana"}})
	})
	c := newTestClient(t, "", mux)

	res, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	require.NotNil(t, res.User)
	assert.Equal(t, "42", res.User.Identifier())
}

func TestProfile_Shapes(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"user key", `{"user":{"name":"Ana","email":"ana@x.id"}}`},
		{"data key", `{"data":{"name":"Ana","email":"ana@x.id"}}`},
		{"bare", `{"name":"Ana","email":"ana@x.id"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				_, _ = io.WriteString(w, tt.body)
			}))

			u, err := c.Profile(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "Ana", u.Name)
			assert.Equal(t, "ana@x.id", u.Email)
		})
	}
}

func TestErrors_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusServiceUnavailable, ErrUnavailable},
		{http.StatusBadGateway, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]string{"message": "nope"})
			}))

			err := c.CancelSubscription(context.Background())
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "nope", Message(err, "fallback"))
		})
	}
}

func TestErrors_BadRequestCarriesMessageOnly(t *testing.T) {
	c := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Amount must be positive"})
	}))

	_, err := c.CreateDonation(context.Background(), DonationRequest{ActivityID: "a1", Amount: -1})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, errors.Is(err, ErrUnavailable))
	assert.Equal(t, "Amount must be positive", Message(err, "Failed to create invoice"))
}

func TestMessage_Fallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", Message(newAPIError(500, ""), "fallback"))
	assert.Equal(t, "fallback", Message(nil, "fallback"))
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, nil, time.Second, logging.Discard())
	require.NoError(t, err)

	_, err = c.Activities(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMySubscription_Null(t *testing.T) {
	c := newTestClient(t, "tok", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":null}`)
	}))

	sub, err := c.MySubscription(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestActivityEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/activities", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"_id": "a1", "title": "One"}}})
	})
	mux.HandleFunc("GET /api/activities/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"_id": r.PathValue("id"), "title": "One"}})
	})
	mux.HandleFunc("GET /api/news/activity/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{{"_id": "n1", "title": "Update"}}})
	})
	mux.HandleFunc("POST /api/activities/{id}/volunteer", func(w http.ResponseWriter, r *http.Request) {
		var req VolunteerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "42", req.UserID)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("DELETE /api/activities/{id}/volunteer/{vid}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v 1", r.PathValue("vid"))
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, "tok", mux)
	ctx := context.Background()

	list, err := c.Activities(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	a, err := c.Activity(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", a.ID)

	news, err := c.ActivityNews(ctx, "a1")
	require.NoError(t, err)
	assert.Len(t, news, 1)

	require.NoError(t, c.RegisterVolunteer(ctx, "a1", VolunteerRequest{UserID: "42"}))
	require.NoError(t, c.UnregisterVolunteer(ctx, "a1", "v 1"))
}
