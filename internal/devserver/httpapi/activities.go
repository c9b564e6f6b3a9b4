package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/gophgive/internal/devserver/store"
)

func muxVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func (s *Server) activities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dataBody{Data: s.store.Activities()})
}

func (s *Server) activity(w http.ResponseWriter, r *http.Request) {
	a, err := s.store.Activity(muxVar(r, "id"))
	if err != nil {
		s.fail(w, r, err, "Activity not found")
		return
	}
	writeJSON(w, http.StatusOK, dataBody{Data: a})
}

func (s *Server) news(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dataBody{Data: s.store.News(muxVar(r, "id"))})
}

func (s *Server) expenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dataBody{Data: s.store.Expenses(muxVar(r, "id"))})
}

type volunteerRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Note   string `json:"note"`
}

// addVolunteer registers the token's user; the userId in the body is
// ignored.
func (s *Server) addVolunteer(w http.ResponseWriter, r *http.Request) {
	var req volunteerRequest
	if err := decode(r, &req); err != nil {
		s.fail(w, r, err, "Invalid request body")
		return
	}

	v, err := s.store.AddVolunteer(muxVar(r, "id"), userIDFrom(r.Context()), store.Volunteer{
		Name:  req.Name,
		Phone: req.Phone,
		Note:  req.Note,
	})
	if err != nil {
		msg := "Activity not found"
		if errors.Is(err, store.ErrAlreadyExists) {
			msg = "Already registered as volunteer"
		}
		s.fail(w, r, err, msg)
		return
	}
	writeJSON(w, http.StatusCreated, dataBody{Data: v})
}

func (s *Server) removeVolunteer(w http.ResponseWriter, r *http.Request) {
	err := s.store.RemoveVolunteer(muxVar(r, "id"), muxVar(r, "volunteerId"), userIDFrom(r.Context()))
	if err != nil {
		msg := "Volunteer not found"
		if errors.Is(err, store.ErrForbidden) {
			msg = "Forbidden"
		}
		s.fail(w, r, err, msg)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Volunteer removed"})
}
