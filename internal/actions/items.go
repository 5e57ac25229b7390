package actions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/otgil/otgil/internal/apiclient"
	"github.com/otgil/otgil/internal/imaging"
	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/model"
	"github.com/otgil/otgil/internal/page"
)

// ItemDraft is the upload form.
type ItemDraft struct {
	Name        string
	Description string
	Category    model.Category
	Size        string
	ImageURL    string
	// Photo, when set, replaces ImageURL with a compressed data URL.
	Photo      io.Reader
	GoodbyeTag *model.GoodbyeTag
	HelloTag   *model.HelloTag
}

// AddItem registers a garment, attaches its tags and opens My Page.
func (h *Handlers) AddItem(ctx context.Context, d ItemDraft) (model.ClothingItem, error) {
	token, _, err := h.require()
	if err != nil {
		return model.ClothingItem{}, err
	}

	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return model.ClothingItem{}, invalid("name", "Give the item a name.")
	}
	if !d.Category.Valid() {
		return model.ClothingItem{}, invalid("category", "Choose a category.")
	}
	if d.Photo != nil {
		photo, err := imaging.Process(d.Photo)
		if err != nil {
			return model.ClothingItem{}, invalid("photo", "The photo could not be used: %v.", err)
		}
		d.ImageURL = photo.DataURL()
	}

	req := mapper.ItemCreateRequest{
		Name:        d.Name,
		Description: strings.TrimSpace(d.Description),
		Category:    string(d.Category),
		Size:        strings.TrimSpace(d.Size),
		ImageURL:    d.ImageURL,
	}
	var rec mapper.ItemRecord
	if err := h.send(ctx, http.MethodPost, "/items/", token, req, &rec); err != nil {
		return model.ClothingItem{}, fmt.Errorf("creating item: %w", err)
	}

	// The item exists from here on, so the list is refreshed even when a tag
	// cannot be attached.
	base := "/items/" + escape(rec.ID)
	if d.GoodbyeTag != nil {
		if err := h.send(ctx, http.MethodPost, base+"/goodbye", token, mapper.GoodbyeTagRequest(*d.GoodbyeTag), &rec); err != nil {
			refresh(ctx, "items", h.store.RefreshItems)
			return model.ClothingItem{}, fmt.Errorf("adding goodbye tag: %w", err)
		}
	}
	if d.HelloTag != nil {
		if err := h.send(ctx, http.MethodPost, base+"/hello", token, mapper.HelloTagRequest(*d.HelloTag), &rec); err != nil {
			refresh(ctx, "items", h.store.RefreshItems)
			return model.ClothingItem{}, fmt.Errorf("adding hello tag: %w", err)
		}
	}

	refresh(ctx, "items", h.store.RefreshItems)
	h.nav.Go(page.MyPage)
	return mapper.Item(rec), nil
}

// ToggleListing flips whether the item is offered for exchange.
func (h *Handlers) ToggleListing(ctx context.Context, itemID string) error {
	token, _, err := h.require()
	if err != nil {
		return err
	}
	item, ok := h.store.Item(itemID)
	if !ok {
		return invalid("item", "Item not found.")
	}

	patch := mapper.ListingPatch{IsListedForExchange: !item.IsListedForExchange}
	if err := h.send(ctx, http.MethodPatch, "/items/"+escape(itemID), token, patch, nil); err != nil {
		return fmt.Errorf("updating listing: %w", err)
	}

	refresh(ctx, "items", h.store.RefreshItems)
	return nil
}

// SubmitToParty offers the item to a party's exchange, pending approval.
func (h *Handlers) SubmitToParty(ctx context.Context, itemID, partyID string) error {
	token, _, err := h.require()
	if err != nil {
		return err
	}
	if partyID == "" {
		return invalid("party", "Choose a party.")
	}

	status := string(model.SubmissionPending)
	patch := mapper.SubmissionPatch{SubmittedPartyID: &partyID, PartySubmissionStatus: &status}
	if err := h.send(ctx, http.MethodPatch, "/items/"+escape(itemID), token, patch, nil); err != nil {
		return fmt.Errorf("submitting item: %w", err)
	}

	refresh(ctx, "items", h.store.RefreshItems)
	return nil
}

// CancelPartySubmission withdraws a pending submission, clearing both
// submission fields.
func (h *Handlers) CancelPartySubmission(ctx context.Context, itemID string) error {
	token, _, err := h.require()
	if err != nil {
		return err
	}
	item, ok := h.store.Item(itemID)
	if !ok {
		return invalid("item", "Item not found.")
	}
	if item.PartySubmissionStatus != model.SubmissionPending {
		return invalid("item", "Only pending submissions can be cancelled.")
	}

	if err := h.send(ctx, http.MethodPatch, "/items/"+escape(itemID), token, mapper.SubmissionPatch{}, nil); err != nil {
		return fmt.Errorf("cancelling submission: %w", err)
	}

	refresh(ctx, "items", h.store.RefreshItems)
	return nil
}

// DecidePartyItem approves or rejects a submitted item.
func (h *Handlers) DecidePartyItem(ctx context.Context, itemID string, status model.SubmissionStatus) error {
	token, _, err := h.requireAdmin()
	if err != nil {
		return err
	}
	if status != model.SubmissionApproved && status != model.SubmissionRejected {
		return invalid("status", "Choose approve or reject.")
	}

	path := apiclient.WithQuery("/items/"+escape(itemID)+"/submission_status", url.Values{"status_in": {string(status)}})
	if err := h.send(ctx, http.MethodPut, path, token, nil, nil); err != nil {
		return fmt.Errorf("deciding submission: %w", err)
	}

	refresh(ctx, "items", h.store.RefreshItems)
	refresh(ctx, "pending", h.store.RefreshPending)
	return nil
}
