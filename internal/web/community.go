package web

import (
	"net/http"
	"strings"

	"github.com/otgil/otgil/internal/actions"
)

// StorySubmit handles POST /community/stories. A non-empty id field edits
// that story instead of creating one.
func (s *Server) StorySubmit(w http.ResponseWriter, r *http.Request) {
	draft := actions.StoryDraft{
		ID:       r.FormValue("id"),
		PartyID:  r.FormValue("party_id"),
		Title:    r.FormValue("title"),
		Excerpt:  r.FormValue("excerpt"),
		Content:  r.FormValue("content"),
		ImageURL: strings.TrimSpace(r.FormValue("image_url")),
		Tags:     strings.Fields(strings.ReplaceAll(r.FormValue("tags"), ",", " ")),
	}
	err := s.App.Actions.SubmitStory(r.Context(), draft)
	s.done(w, r, err, "Story saved.")
}

// StoryDeleteSubmit handles POST /community/stories/{id}/delete.
func (s *Server) StoryDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.DeleteStory(r.Context(), r.PathValue("id"))
	s.done(w, r, err, "Story deleted.")
}

// StoryLikeSubmit handles POST /community/stories/{id}/like.
func (s *Server) StoryLikeSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.ToggleLikeStory(r.Context(), r.PathValue("id"))
	s.done(w, r, err, "")
}

// CommentSubmit handles POST /community/stories/{id}/comments.
func (s *Server) CommentSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.AddComment(r.Context(), r.PathValue("id"), r.FormValue("text"))
	s.done(w, r, err, "")
}

// ReportSubmit handles POST /community/reports.
func (s *Server) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.AddReport(r.Context(), actions.ReportDraft{
		Title:   r.FormValue("title"),
		Date:    r.FormValue("date"),
		Excerpt: r.FormValue("excerpt"),
	})
	s.done(w, r, err, "Report published.")
}
