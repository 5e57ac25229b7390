package actions

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/otgil/otgil/internal/apiclient"
	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/model"
	"github.com/otgil/otgil/internal/page"
)

// PartyDraft is the hosting application form.
type PartyDraft struct {
	Title       string
	Description string
	Date        time.Time
	Location    string
	ImageURL    string
	Details     []string
}

// ApplyToParty asks to join a party with its invitation code.
func (h *Handlers) ApplyToParty(ctx context.Context, partyID, invitationCode string) error {
	token, _, err := h.require()
	if err != nil {
		return err
	}
	invitationCode = strings.TrimSpace(invitationCode)
	if invitationCode == "" {
		return invalid("invitation_code", "Enter the party's invitation code.")
	}

	path := apiclient.WithQuery("/parties/"+escape(partyID)+"/join", url.Values{"invitation_code": {invitationCode}})
	if err := h.send(ctx, http.MethodPost, path, token, nil, nil); err != nil {
		return fmt.Errorf("joining party: %w", err)
	}

	refresh(ctx, "parties", h.store.RefreshParties)
	return nil
}

// UpdateParticipantStatus checks a participant in. ATTENDED is the only
// transition the host drives; any other target does nothing.
func (h *Handlers) UpdateParticipantStatus(ctx context.Context, partyID, userID string, status model.ParticipantStatus) error {
	if status != model.ParticipantAttended {
		return nil
	}
	token, _, err := h.require()
	if err != nil {
		return err
	}

	path := apiclient.WithQuery("/parties/"+escape(partyID)+"/check-in", url.Values{"user_id": {userID}})
	if err := h.send(ctx, http.MethodPost, path, token, nil, nil); err != nil {
		return fmt.Errorf("checking in: %w", err)
	}

	refresh(ctx, "parties", h.store.RefreshParties)
	return nil
}

// DecideParticipant accepts or rejects a join request.
func (h *Handlers) DecideParticipant(ctx context.Context, partyID, userID string, status model.ParticipantStatus) error {
	token, _, err := h.requireAdmin()
	if err != nil {
		return err
	}
	if status != model.ParticipantAccepted && status != model.ParticipantRejected {
		return invalid("status", "Choose accept or reject.")
	}

	path := "/admin/parties/" + escape(partyID) + "/participants/" + escape(userID) + "/status"
	if err := h.send(ctx, http.MethodPatch, path, token, mapper.StatusRequest{Status: string(status)}, nil); err != nil {
		return fmt.Errorf("deciding participant: %w", err)
	}

	refresh(ctx, "parties", h.store.RefreshParties)
	return nil
}

// HostParty applies to host a party and opens My Page.
func (h *Handlers) HostParty(ctx context.Context, d PartyDraft) error {
	token, _, err := h.require()
	if err != nil {
		return err
	}
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return invalid("title", "Give the party a title.")
	}
	if d.Date.IsZero() {
		return invalid("date", "Choose a date.")
	}
	if strings.TrimSpace(d.Location) == "" {
		return invalid("location", "Enter a location.")
	}

	details := d.Details
	if details == nil {
		details = []string{}
	}
	req := mapper.PartyCreateRequest{
		Title:       d.Title,
		Description: strings.TrimSpace(d.Description),
		Date:        mapper.FormatDate(d.Date),
		Location:    strings.TrimSpace(d.Location),
		ImageURL:    d.ImageURL,
		Details:     details,
	}
	if err := h.send(ctx, http.MethodPost, "/parties/", token, req, nil); err != nil {
		return fmt.Errorf("hosting party: %w", err)
	}

	refresh(ctx, "parties", h.store.RefreshParties)
	h.nav.Go(page.MyPage)
	return nil
}

// DecidePartyApproval approves (UPCOMING) or rejects a hosting application.
func (h *Handlers) DecidePartyApproval(ctx context.Context, partyID string, status model.PartyStatus) error {
	token, _, err := h.requireAdmin()
	if err != nil {
		return err
	}
	if status != model.PartyUpcoming && status != model.PartyRejected {
		return invalid("status", "Choose approve or reject.")
	}

	path := "/admin/parties/" + escape(partyID) + "/status"
	if err := h.send(ctx, http.MethodPost, path, token, mapper.StatusRequest{Status: string(status)}, nil); err != nil {
		return fmt.Errorf("deciding party: %w", err)
	}

	refresh(ctx, "parties", h.store.RefreshParties)
	return nil
}

// DeleteParty removes a party.
func (h *Handlers) DeleteParty(ctx context.Context, partyID string) error {
	token, _, err := h.requireAdmin()
	if err != nil {
		return err
	}
	if err := h.send(ctx, http.MethodDelete, "/admin/parties/"+escape(partyID), token, nil, nil); err != nil {
		return fmt.Errorf("deleting party: %w", err)
	}

	refresh(ctx, "parties", h.store.RefreshParties)
	return nil
}
