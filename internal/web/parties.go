package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/otgil/otgil/internal/actions"
	"github.com/otgil/otgil/internal/model"
)

// PartyHostSubmit handles POST /parties.
func (s *Server) PartyHostSubmit(w http.ResponseWriter, r *http.Request) {
	draft := actions.PartyDraft{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Location:    r.FormValue("location"),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		Details:     lines(r.FormValue("details")),
	}
	if raw := strings.TrimSpace(r.FormValue("date")); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			s.done(w, r, &actions.ValidationError{Field: "date", Message: "Use the YYYY-MM-DD date format."}, "")
			return
		}
		draft.Date = date
	}

	err := s.App.Actions.HostParty(r.Context(), draft)
	s.done(w, r, err, "Your party is waiting for approval.")
}

// lines splits a textarea into its non-blank lines.
func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// PartyJoinSubmit handles POST /parties/{id}/join.
func (s *Server) PartyJoinSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.ApplyToParty(r.Context(), r.PathValue("id"), r.FormValue("invitation_code"))
	s.done(w, r, err, "Application sent.")
}

// CheckInSubmit handles POST /parties/{id}/participants/{uid}/check-in.
func (s *Server) CheckInSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.UpdateParticipantStatus(r.Context(), r.PathValue("id"), r.PathValue("uid"), model.ParticipantAttended)
	s.done(w, r, err, "Checked in.")
}

// ParticipantDecisionSubmit handles POST /admin/parties/{id}/participants/{uid}.
func (s *Server) ParticipantDecisionSubmit(w http.ResponseWriter, r *http.Request) {
	status := model.ParticipantStatus(r.FormValue("status"))
	err := s.App.Actions.DecideParticipant(r.Context(), r.PathValue("id"), r.PathValue("uid"), status)
	s.done(w, r, err, "Participant updated.")
}

// PartyApprovalSubmit handles POST /admin/parties/{id}/status.
func (s *Server) PartyApprovalSubmit(w http.ResponseWriter, r *http.Request) {
	status := model.PartyStatus(r.FormValue("status"))
	err := s.App.Actions.DecidePartyApproval(r.Context(), r.PathValue("id"), status)
	s.done(w, r, err, "Party updated.")
}

// PartyDeleteSubmit handles POST /admin/parties/{id}/delete.
func (s *Server) PartyDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.DeleteParty(r.Context(), r.PathValue("id"))
	s.done(w, r, err, "Party deleted.")
}
