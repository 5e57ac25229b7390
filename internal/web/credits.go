package web

import (
	"net/http"
	"strconv"

	"github.com/otgil/otgil/internal/actions"
)

// RewardRedeemSubmit handles POST /rewards/{id}/redeem.
func (s *Server) RewardRedeemSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.RedeemReward(r.Context(), r.PathValue("id"))
	s.done(w, r, err, "Reward redeemed.")
}

// ProductPurchaseSubmit handles POST /makers/products/{id}/purchase.
func (s *Server) ProductPurchaseSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Actions.PurchaseMakerProduct(r.Context(), r.PathValue("id"))
	s.done(w, r, err, "Purchase complete.")
}

// OffsetSubmit handles POST /credits/offset.
func (s *Server) OffsetSubmit(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.Atoi(r.FormValue("amount"))
	if err != nil {
		s.done(w, r, &actions.ValidationError{Field: "amount", Message: "Enter a whole number of credits."}, "")
		return
	}
	err = s.App.Actions.OffsetCredit(r.Context(), amount)
	s.done(w, r, err, "Thank you for your donation.")
}
