package actions

import (
	"context"
	"fmt"
	"net/http"

	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/model"
)

// ChangeCredit records a credit change for the current user. The amount is
// sent as an absolute value; typ carries the direction.
func (h *Handlers) ChangeCredit(ctx context.Context, amount int, activity string, typ model.CreditType) error {
	token, user, err := h.require()
	if err != nil {
		return err
	}
	if amount == 0 {
		return invalid("amount", "Amount must not be zero.")
	}
	if !typ.Earned() && !typ.Spent() {
		return invalid("type", "Unknown credit type %q.", typ)
	}

	req := mapper.EarnRequest{
		UserID:       user.ID,
		Amount:       mapper.Abs(amount),
		ActivityName: activity,
		Type:         string(typ),
	}
	if err := h.send(ctx, http.MethodPost, "/credits/earn", token, req, nil); err != nil {
		return fmt.Errorf("recording credit: %w", err)
	}

	refresh(ctx, "credits", h.store.RefreshCredits)
	return nil
}

// spend checks the local balance and then records a SPENT entry.
func (h *Handlers) spend(ctx context.Context, cost int, activity string, typ model.CreditType) error {
	_, user, err := h.require()
	if err != nil {
		return err
	}
	if h.store.CreditBalance(user.ID) < cost {
		return ErrInsufficientBalance
	}
	return h.ChangeCredit(ctx, cost, activity, typ)
}

// RedeemReward spends the reward's cost.
func (h *Handlers) RedeemReward(ctx context.Context, rewardID string) error {
	if _, _, err := h.require(); err != nil {
		return err
	}
	reward, ok := h.store.Reward(rewardID)
	if !ok {
		return invalid("reward", "That reward is no longer available.")
	}
	return h.spend(ctx, reward.Cost, reward.Name+" redeemed", model.CreditSpentReward)
}

// PurchaseMakerProduct spends the product's price.
func (h *Handlers) PurchaseMakerProduct(ctx context.Context, productID string) error {
	if _, _, err := h.require(); err != nil {
		return err
	}
	product, ok := h.store.MakerProduct(productID)
	if !ok {
		return invalid("product", "That product is no longer available.")
	}
	return h.spend(ctx, product.Price, product.Name+" purchased", model.CreditSpentMakerPurchase)
}

// OffsetCredit donates amount credits.
func (h *Handlers) OffsetCredit(ctx context.Context, amount int) error {
	if _, _, err := h.require(); err != nil {
		return err
	}
	if amount <= 0 {
		return invalid("amount", "Enter a positive amount to donate.")
	}
	return h.spend(ctx, amount, "Credit offset (donation)", model.CreditSpentOffset)
}
