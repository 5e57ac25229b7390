package fakeapi

import (
	"net/http"
	"slices"

	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/model"
)

// AdminHandler handles moderation endpoints.
type AdminHandler struct {
	Data *Data
}

// SetPartyStatus handles POST /admin/parties/{id}/status.
func (h *AdminHandler) SetPartyStatus(w http.ResponseWriter, r *http.Request) {
	var req mapper.StatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	switch model.PartyStatus(req.Status) {
	case model.PartyPendingApproval, model.PartyUpcoming, model.PartyCompleted, model.PartyRejected:
	default:
		jsonError(w, http.StatusUnprocessableEntity, "invalid party status")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	p := h.Data.party(r.PathValue("id"))
	if p == nil {
		jsonError(w, http.StatusNotFound, "Party not found")
		return
	}
	p.Status = req.Status
	jsonResponse(w, http.StatusOK, cloneParty(p))
}

// SetParticipantStatus handles
// PATCH /admin/parties/{id}/participants/{uid}/status.
func (h *AdminHandler) SetParticipantStatus(w http.ResponseWriter, r *http.Request) {
	var req mapper.StatusRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	switch model.ParticipantStatus(req.Status) {
	case model.ParticipantPending, model.ParticipantAccepted, model.ParticipantRejected, model.ParticipantAttended:
	default:
		jsonError(w, http.StatusUnprocessableEntity, "invalid participant status")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	p := h.Data.party(r.PathValue("id"))
	if p == nil {
		jsonError(w, http.StatusNotFound, "Party not found")
		return
	}
	uid := r.PathValue("uid")
	for i := range p.Participants {
		if p.Participants[i].UserID == uid {
			p.Participants[i].Status = req.Status
			jsonResponse(w, http.StatusOK, p.Participants[i])
			return
		}
	}
	jsonError(w, http.StatusNotFound, "Participant not found")
}

// DeleteParty handles DELETE /admin/parties/{id}.
func (h *AdminHandler) DeleteParty(w http.ResponseWriter, r *http.Request) {
	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	id := r.PathValue("id")
	if h.Data.party(id) == nil {
		jsonError(w, http.StatusNotFound, "Party not found")
		return
	}
	h.Data.parties = slices.DeleteFunc(h.Data.parties, func(p *mapper.PartyRecord) bool { return p.ID == id })
	w.WriteHeader(http.StatusNoContent)
}

// PendingItems handles GET /admin/items/pending.
func (h *AdminHandler) PendingItems(w http.ResponseWriter, r *http.Request) {
	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	out := []mapper.ItemRecord{}
	for _, it := range h.Data.items {
		if it.PartySubmissionStatus != nil && *it.PartySubmissionStatus == string(model.SubmissionPending) {
			out = append(out, *it)
		}
	}
	jsonResponse(w, http.StatusOK, out)
}
