package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophgive/internal/devserver/auth"
	"github.com/dmitrijs2005/gophgive/internal/devserver/store"
)

const minPasswordLength = 6

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *store.User `json:"user"`
}

type userBody struct {
	User *store.User `json:"user"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || !strings.Contains(req.Email, "@") || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Name, valid email and password are required")
		return
	}
	if len(req.Password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}

	u, err := s.store.CreateUser(req.Name, req.Email, hash)
	if err != nil {
		s.fail(w, r, err, "Email already registered")
		return
	}

	s.logger.Info(r.Context(), "user registered", "user_id", u.ID)
	writeJSON(w, http.StatusCreated, messageBody{Message: "User registered successfully"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	u, hash, err := s.store.Credentials(req.Email)
	if err != nil || !auth.CheckPassword(hash, req.Password) {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			s.fail(w, r, err, "")
			return
		}
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(u.ID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		s.fail(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.User(userIDFrom(r.Context()))
	if err != nil {
		s.fail(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, userBody{User: u})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err, "Invalid request body")
		return
	}

	u, err := s.store.UpdateUserName(userIDFrom(r.Context()), req.Name)
	if err != nil {
		s.fail(w, r, err, "Name is required")
		return
	}
	writeJSON(w, http.StatusOK, userBody{User: u})
}

func (s *Server) achievements(w http.ResponseWriter, r *http.Request) {
	id := muxVar(r, "userId")
	if id != userIDFrom(r.Context()) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	sum, err := s.store.Summary(id)
	if err != nil {
		s.fail(w, r, err, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
