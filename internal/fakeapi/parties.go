package fakeapi

import (
	"net/http"
	"slices"

	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/model"
)

// PartiesHandler handles party endpoints.
type PartiesHandler struct {
	Data *Data
}

// List handles GET /parties/?status_filter=. Results are ordered by date
// ascending, as the backend does.
func (h *PartiesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status_filter")

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	out := []mapper.PartyRecord{}
	for _, p := range h.Data.parties {
		if filter == "" || p.Status == filter {
			out = append(out, cloneParty(p))
		}
	}
	slices.SortStableFunc(out, func(a, b mapper.PartyRecord) int {
		return mapper.ParseDate(a.Date).Compare(mapper.ParseDate(b.Date))
	})
	jsonResponse(w, http.StatusOK, out)
}

// Create handles POST /parties/. New parties await admin approval.
func (h *PartiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req mapper.PartyCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if req.Title == "" || mapper.ParseDate(req.Date).IsZero() {
		jsonError(w, http.StatusUnprocessableEntity, "title and a valid date are required")
		return
	}

	p := &mapper.PartyRecord{
		ID:             newID(),
		HostID:         claims.UserID,
		Title:          req.Title,
		Description:    req.Description,
		Date:           req.Date,
		Location:       req.Location,
		ImageURL:       req.ImageURL,
		Details:        req.Details,
		Status:         string(model.PartyPendingApproval),
		InvitationCode: invitationCode(),
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()
	h.Data.parties = append(h.Data.parties, p)
	jsonResponse(w, http.StatusCreated, cloneParty(p))
}

// Join handles POST /parties/{id}/join?invitation_code=.
func (h *PartiesHandler) Join(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	code := r.URL.Query().Get("invitation_code")

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	p := h.Data.party(r.PathValue("id"))
	if p == nil {
		jsonError(w, http.StatusNotFound, "Party not found")
		return
	}
	if p.Status != string(model.PartyUpcoming) {
		jsonError(w, http.StatusBadRequest, "This party is not accepting participants")
		return
	}
	if code != p.InvitationCode {
		jsonError(w, http.StatusBadRequest, "Invalid invitation code")
		return
	}

	for _, pp := range p.Participants {
		if pp.UserID == claims.UserID {
			jsonResponse(w, http.StatusOK, pp)
			return
		}
	}

	me := h.Data.accountByID(claims.UserID)
	pp := mapper.ParticipantRecord{
		UserID:   me.ID,
		Nickname: me.Nickname,
		Status:   string(model.ParticipantPending),
	}
	p.Participants = append(p.Participants, pp)
	jsonResponse(w, http.StatusOK, pp)
}

// CheckIn handles POST /parties/{id}/check-in?user_id=. Only the host or an
// admin may check participants in.
func (h *PartiesHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	userID := r.URL.Query().Get("user_id")

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	p := h.Data.party(r.PathValue("id"))
	if p == nil {
		jsonError(w, http.StatusNotFound, "Party not found")
		return
	}
	if p.HostID != claims.UserID && !claims.IsAdmin {
		jsonError(w, http.StatusForbidden, "Only the host can check participants in")
		return
	}

	for i := range p.Participants {
		if p.Participants[i].UserID == userID {
			p.Participants[i].Status = string(model.ParticipantAttended)
			jsonResponse(w, http.StatusOK, p.Participants[i])
			return
		}
	}
	jsonError(w, http.StatusNotFound, "Participant not found")
}
