package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/otgil/otgil/internal/actions"
	"github.com/otgil/otgil/internal/imaging"
	"github.com/otgil/otgil/internal/model"
)

// ItemCreateSubmit handles POST /items (multipart, photo optional).
func (s *Server) ItemCreateSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxInputBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxInputBytes + 1<<20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.done(w, r, &actions.ValidationError{Field: "photo", Message: "The photo is too large."}, "")
		return
	}

	draft := actions.ItemDraft{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    model.Category(r.FormValue("category")),
		Size:        r.FormValue("size"),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		GoodbyeTag:  goodbyeTagFromForm(r),
		HelloTag:    helloTagFromForm(r),
	}

	file, _, err := r.FormFile("photo")
	switch {
	case err == nil:
		defer file.Close()
		draft.Photo = file
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		slog.Warn("reading uploaded photo", "error", err)
	}

	item, err := s.App.Actions.AddItem(r.Context(), draft)
	if err == nil {
		slog.Info("item created", "item", item.ID, "name", item.Name)
	}
	s.done(w, r, err, "Item added.")
}

// goodbyeTagFromForm returns nil when every goodbye field is blank.
func goodbyeTagFromForm(r *http.Request) *model.GoodbyeTag {
	tag := model.GoodbyeTag{
		MetWhen:      strings.TrimSpace(r.FormValue("met_when")),
		MetWhere:     strings.TrimSpace(r.FormValue("met_where")),
		WhyGot:       strings.TrimSpace(r.FormValue("why_got")),
		WhyLetGo:     strings.TrimSpace(r.FormValue("why_let_go")),
		FinalMessage: strings.TrimSpace(r.FormValue("final_message")),
	}
	tag.WornCount, _ = strconv.Atoi(r.FormValue("worn_count"))
	if tag == (model.GoodbyeTag{}) {
		return nil
	}
	return &tag
}

// helloTagFromForm returns nil when every hello field is blank.
func helloTagFromForm(r *http.Request) *model.HelloTag {
	tag := model.HelloTag{
		ReceivedFrom:    strings.TrimSpace(r.FormValue("received_from")),
		ReceivedAt:      strings.TrimSpace(r.FormValue("received_at")),
		FirstImpression: strings.TrimSpace(r.FormValue("first_impression")),
		HelloMessage:    strings.TrimSpace(r.FormValue("hello_message")),
	}
	if tag == (model.HelloTag{}) {
		return nil
	}
	return &tag
}

// ItemListingSubmit handles POST /items/{id}/listing.
func (s *Server) ItemListingSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.ToggleListing(r.Context(), r.PathValue("id"))
	s.done(w, r, err, "")
}

// ItemSubmissionSubmit handles POST /items/{id}/submission.
func (s *Server) ItemSubmissionSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.SubmitToParty(r.Context(), r.PathValue("id"), r.FormValue("party_id"))
	s.done(w, r, err, "Item submitted for approval.")
}

// ItemSubmissionCancel handles POST /items/{id}/submission/cancel.
func (s *Server) ItemSubmissionCancel(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.CancelPartySubmission(r.Context(), r.PathValue("id"))
	s.done(w, r, err, "Submission cancelled.")
}

// ItemDecisionSubmit handles POST /admin/items/{id}/decision.
func (s *Server) ItemDecisionSubmit(w http.ResponseWriter, r *http.Request) {
	status := model.SubmissionStatus(r.FormValue("status"))
	err := s.App.Actions.DecidePartyItem(r.Context(), r.PathValue("id"), status)
	s.done(w, r, err, "Decision saved.")
}
