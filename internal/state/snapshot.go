package state

import (
	"github.com/otgil/otgil/internal/model"
)

// Snapshot is a read-only view of every collection at one instant. The
// slices share storage with the store; do not modify them.
type Snapshot struct {
	Users    []model.User
	Items    []model.ClothingItem
	Parties  []model.Party
	Stories  []model.Story
	Comments []model.Comment
	Reports  []model.Report
	Credits  []model.Credit
	Rewards  []model.Reward
	Makers   []model.Maker
	Products []model.MakerProduct
	Pending  []model.ClothingItem
}

func find[T any](xs []T, match func(*T) bool) (T, bool) {
	for i := range xs {
		if match(&xs[i]) {
			return xs[i], true
		}
	}
	var zero T
	return zero, false
}

func filter[T any](xs []T, keep func(*T) bool) []T {
	var out []T
	for i := range xs {
		if keep(&xs[i]) {
			out = append(out, xs[i])
		}
	}
	return out
}

func (s Snapshot) User(id string) (model.User, bool) {
	return find(s.Users, func(u *model.User) bool { return u.ID == id })
}

func (s Snapshot) Item(id string) (model.ClothingItem, bool) {
	return find(s.Items, func(it *model.ClothingItem) bool { return it.ID == id })
}

func (s Snapshot) Party(id string) (model.Party, bool) {
	return find(s.Parties, func(p *model.Party) bool { return p.ID == id })
}

func (s Snapshot) Story(id string) (model.Story, bool) {
	return find(s.Stories, func(st *model.Story) bool { return st.ID == id })
}

func (s Snapshot) Reward(id string) (model.Reward, bool) {
	return find(s.Rewards, func(r *model.Reward) bool { return r.ID == id })
}

func (s Snapshot) MakerProduct(id string) (model.MakerProduct, bool) {
	return find(s.Products, func(p *model.MakerProduct) bool { return p.ID == id })
}

// CommentsOf returns the comments fetched for storyID.
func (s Snapshot) CommentsOf(storyID string) []model.Comment {
	return filter(s.Comments, func(c *model.Comment) bool { return c.StoryID == storyID })
}

// ItemsOf returns every known item owned by userID, listed or not.
func (s Snapshot) ItemsOf(userID string) []model.ClothingItem {
	return filter(s.Items, func(it *model.ClothingItem) bool { return it.UserID == userID })
}

// ListedItemsOf returns userID's items that are listed for exchange.
func (s Snapshot) ListedItemsOf(userID string) []model.ClothingItem {
	return filter(s.Items, func(it *model.ClothingItem) bool {
		return it.UserID == userID && it.IsListedForExchange
	})
}

// ListedItems returns every listed item not owned by exceptUserID.
func (s Snapshot) ListedItems(exceptUserID string) []model.ClothingItem {
	return filter(s.Items, func(it *model.ClothingItem) bool {
		return it.IsListedForExchange && it.UserID != exceptUserID
	})
}

// PartyItems returns the items submitted to partyID.
func (s Snapshot) PartyItems(partyID string) []model.ClothingItem {
	return filter(s.Items, func(it *model.ClothingItem) bool { return it.SubmittedPartyID == partyID })
}

func (s Snapshot) ImpactStats(userID string) model.ImpactStats {
	return ImpactOf(s.ItemsOf(userID))
}

func (s Snapshot) UserCredits(userID string) []model.Credit {
	return filter(s.Credits, func(c *model.Credit) bool { return c.UserID == userID })
}

func (s Snapshot) CreditBalance(userID string) int {
	return CreditBalance(s.UserCredits(userID))
}

// AcceptedUpcomingParties returns upcoming parties where userID has been
// accepted.
func (s Snapshot) AcceptedUpcomingParties(userID string) []model.Party {
	return filter(s.Parties, func(p *model.Party) bool {
		return p.Status == model.PartyUpcoming && p.HasParticipantWithStatus(userID, model.ParticipantAccepted)
	})
}

// HostedParties returns the parties userID hosts, in any status.
func (s Snapshot) HostedParties(userID string) []model.Party {
	return filter(s.Parties, func(p *model.Party) bool { return p.HostID == userID })
}

// PartiesWithStatus returns the parties in status.
func (s Snapshot) PartiesWithStatus(status model.PartyStatus) []model.Party {
	return filter(s.Parties, func(p *model.Party) bool { return p.Status == status })
}
