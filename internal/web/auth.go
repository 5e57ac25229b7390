package web

import (
	"net/http"

	"github.com/otgil/otgil/internal/session"
)

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	err := s.App.Actions.Login(r.Context(), email, password)
	s.done(w, r, err, "")
}

// LogoutSubmit handles POST /logout.
func (s *Server) LogoutSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.Logout(r.Context())
	s.done(w, r, err, "Logged out.")
}

// SignUpSubmit handles POST /signup.
func (s *Server) SignUpSubmit(w http.ResponseWriter, r *http.Request) {
	_, err := s.App.Actions.SignUp(r.Context(), session.Registration{
		Nickname:    r.FormValue("nickname"),
		Email:       r.FormValue("email"),
		PhoneNumber: r.FormValue("phone_number"),
		Password:    r.FormValue("password"),
	})
	s.done(w, r, err, "Account created. You can log in now.")
}

// NeighborToggleSubmit handles POST /neighbors/{id}/toggle.
func (s *Server) NeighborToggleSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.ToggleNeighbor(r.Context(), r.PathValue("id"))
	s.done(w, r, err, "")
}
