package fakeapi

import (
	"net/http"
	"slices"

	"github.com/otgil/otgil/internal/mapper"
)

// CatalogHandler serves the reward and maker catalogs.
type CatalogHandler struct {
	Data *Data
}

// Rewards handles GET /rewards/.
func (h *CatalogHandler) Rewards(w http.ResponseWriter, r *http.Request) {
	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	out := slices.Clone(h.Data.rewards)
	if out == nil {
		out = []mapper.RewardRecord{}
	}
	jsonResponse(w, http.StatusOK, out)
}

// Makers handles GET /makers/ with nested products.
func (h *CatalogHandler) Makers(w http.ResponseWriter, r *http.Request) {
	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	out := slices.Clone(h.Data.makers)
	if out == nil {
		out = []mapper.MakerRecord{}
	}
	jsonResponse(w, http.StatusOK, out)
}
