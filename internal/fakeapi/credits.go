package fakeapi

import (
	"net/http"
	"time"

	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/model"
)

// CreditsHandler handles the OL credit ledger.
type CreditsHandler struct {
	Data *Data
}

// History handles GET /credits/my-history.
func (h *CreditsHandler) History(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	out := []mapper.CreditRecord{}
	for _, c := range h.Data.credits {
		if c.UserID == claims.UserID {
			out = append(out, *c)
		}
	}
	jsonResponse(w, http.StatusOK, out)
}

// Balance handles GET /credits/my-balance.
func (h *CreditsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	jsonResponse(w, http.StatusOK, map[string]any{
		"user_id": claims.UserID,
		"balance": h.Data.balance(claims.UserID),
	})
}

// Earn handles POST /credits/earn. The amount is stored as sent; the type
// decides whether it counts for or against the balance.
func (h *CreditsHandler) Earn(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req mapper.EarnRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	typ := model.CreditType(req.Type)
	if typ == "" {
		typ = model.CreditEarnedEvent
	}
	if !typ.Earned() && !typ.Spent() {
		jsonError(w, http.StatusUnprocessableEntity, "invalid credit type")
		return
	}
	if req.ActivityName == "" {
		req.ActivityName = "Earned credit"
	}
	if req.UserID == "" {
		req.UserID = claims.UserID
	}
	if req.UserID != claims.UserID && !claims.IsAdmin {
		jsonError(w, http.StatusForbidden, "Not enough permissions")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	if h.Data.accountByID(req.UserID) == nil {
		jsonError(w, http.StatusNotFound, "User not found")
		return
	}
	if typ.Spent() && h.Data.balance(req.UserID) < mapper.Abs(req.Amount) {
		jsonError(w, http.StatusBadRequest, "Insufficient credits")
		return
	}

	c := &mapper.CreditRecord{
		ID:           newID(),
		UserID:       req.UserID,
		Date:         h.Data.now().UTC().Format(time.RFC3339),
		ActivityName: req.ActivityName,
		Type:         string(typ),
		Amount:       req.Amount,
	}
	h.Data.credits = append(h.Data.credits, c)
	jsonResponse(w, http.StatusOK, c)
}
