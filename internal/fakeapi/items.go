package fakeapi

import (
	"encoding/json"
	"net/http"

	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/model"
)

// ItemsHandler handles clothing item endpoints.
type ItemsHandler struct {
	Data *Data
}

// List handles GET /items/: every item listed for exchange.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	out := []mapper.ItemRecord{}
	for _, it := range h.Data.items {
		if it.IsListedForExchange {
			out = append(out, *it)
		}
	}
	jsonResponse(w, http.StatusOK, out)
}

// Mine handles GET /items/my-items, including unlisted items.
func (h *ItemsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	out := []mapper.ItemRecord{}
	for _, it := range h.Data.items {
		if it.UserID == claims.UserID {
			out = append(out, *it)
		}
	}
	jsonResponse(w, http.StatusOK, out)
}

// Create handles POST /items/.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req mapper.ItemCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusUnprocessableEntity, "name required")
		return
	}
	if !model.Category(req.Category).Valid() {
		jsonError(w, http.StatusUnprocessableEntity, "invalid category")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	owner := h.Data.accountByID(claims.UserID)
	it := &mapper.ItemRecord{
		ID:                  newID(),
		Name:                req.Name,
		Description:         req.Description,
		Category:            req.Category,
		Size:                req.Size,
		ImageURL:            req.ImageURL,
		UserID:              owner.ID,
		UserNickname:        owner.Nickname,
		IsListedForExchange: true,
	}
	h.Data.items = append(h.Data.items, it)
	jsonResponse(w, http.StatusCreated, it)
}

// Update handles PATCH /items/{id}. Only keys present in the body change;
// an explicit null clears the submission fields.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var patch map[string]json.RawMessage
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	it := h.Data.item(r.PathValue("id"))
	if it == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	if it.UserID != claims.UserID {
		jsonError(w, http.StatusForbidden, "Not enough permissions")
		return
	}

	updated := *it
	for key, raw := range patch {
		var err error
		switch key {
		case "name":
			err = json.Unmarshal(raw, &updated.Name)
		case "description":
			err = json.Unmarshal(raw, &updated.Description)
		case "size":
			err = json.Unmarshal(raw, &updated.Size)
		case "image_url":
			err = json.Unmarshal(raw, &updated.ImageURL)
		case "is_listed_for_exchange":
			err = json.Unmarshal(raw, &updated.IsListedForExchange)
		case "submitted_party_id":
			updated.SubmittedPartyID = nil
			err = json.Unmarshal(raw, &updated.SubmittedPartyID)
		case "party_submission_status":
			updated.PartySubmissionStatus = nil
			err = json.Unmarshal(raw, &updated.PartySubmissionStatus)
		}
		if err != nil {
			jsonError(w, http.StatusUnprocessableEntity, "invalid value for "+key)
			return
		}
	}

	if pid := updated.SubmittedPartyID; pid != nil && h.Data.party(*pid) == nil {
		jsonError(w, http.StatusNotFound, "Party not found")
		return
	}

	*it = updated
	jsonResponse(w, http.StatusOK, it)
}

// Goodbye handles POST /items/{id}/goodbye.
func (h *ItemsHandler) Goodbye(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var tag mapper.GoodbyeTagRecord
	if err := decodeJSON(r, &tag); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	it := h.Data.item(r.PathValue("id"))
	if it == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	if it.UserID != claims.UserID {
		jsonError(w, http.StatusForbidden, "Only the owner can write a goodbye tag")
		return
	}
	it.GoodbyeTag = &tag
	jsonResponse(w, http.StatusCreated, it)
}

// Hello handles POST /items/{id}/hello.
func (h *ItemsHandler) Hello(w http.ResponseWriter, r *http.Request) {
	var tag mapper.HelloTagRecord
	if err := decodeJSON(r, &tag); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	it := h.Data.item(r.PathValue("id"))
	if it == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	it.HelloTag = &tag
	jsonResponse(w, http.StatusCreated, it)
}

// SetSubmissionStatus handles PUT /items/{id}/submission_status?status_in=.
func (h *ItemsHandler) SetSubmissionStatus(w http.ResponseWriter, r *http.Request) {
	status := model.SubmissionStatus(r.URL.Query().Get("status_in"))
	if status != model.SubmissionApproved && status != model.SubmissionRejected && status != model.SubmissionPending {
		jsonError(w, http.StatusUnprocessableEntity, "invalid status_in")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	it := h.Data.item(r.PathValue("id"))
	if it == nil {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	s := string(status)
	it.PartySubmissionStatus = &s
	jsonResponse(w, http.StatusOK, it)
}
