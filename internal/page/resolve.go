package page

import (
	"slices"

	"github.com/otgil/otgil/internal/model"
	"github.com/otgil/otgil/internal/state"
)

// Input is everything a page may read.
type Input struct {
	// User is nil when nobody is signed in.
	User *model.User
	Data state.Snapshot
}

// View is a resolved page. Only the fields of Page are filled in.
type View struct {
	Page      ID
	Requested ID
	Selection Selection
	User      *model.User

	Items           []model.ClothingItem
	Users           []model.User
	Parties         []model.Party
	AcceptedParties []model.Party
	HostedParties   []model.Party
	Stories         []model.Story
	Comments        []model.Comment
	Reports         []model.Report
	Credits         []model.Credit
	Rewards         []model.Reward
	Makers          []model.Maker
	Products        []model.MakerProduct
	Pending         []model.ClothingItem

	Neighbor   *model.User
	Story      *model.Story
	Party      *model.Party
	Impact     model.ImpactStats
	Balance    int
	Categories []model.Category
}

// loginRequired pages fall back to Login for anonymous callers.
var loginRequired = map[ID]bool{
	NeighborsCloset:    true,
	NeighborProfile:    true,
	MyPage:             true,
	Rewards:            true,
	MakersHub:          true,
	PartyHostDashboard: true,
}

// Resolve decides which page is shown for a request of id and gathers its
// data. Gating: anonymous callers asking for a members' page get Login,
// non-admins asking for Admin get Home, and a detail page whose selection is
// missing shows its list page.
func Resolve(id ID, sel Selection, in Input) View {
	v := View{Requested: id, Selection: sel, User: in.User}
	if _, ok := patterns[id]; !ok {
		id = Home
	}
	if loginRequired[id] && in.User == nil {
		id = Login
	}
	if id == Admin && (in.User == nil || !in.User.IsAdmin) {
		id = Home
	}

	d := in.Data
	switch id {
	case NeighborProfile:
		if u, ok := d.User(sel.NeighborID); ok && u.ID != in.User.ID {
			v.Neighbor = &u
			v.Items = d.ListedItemsOf(u.ID)
			break
		}
		id = NeighborsCloset
	case StoryDetail:
		if st, ok := d.Story(sel.StoryID); ok {
			v.Story = &st
			v.Comments = d.CommentsOf(st.ID)
			if p, ok := d.Party(st.PartyID); ok {
				v.Party = &p
			}
			break
		}
		id = Community
	case PartyHostDashboard:
		if p, ok := d.Party(sel.PartyID); ok {
			v.Party = &p
			v.Items = d.PartyItems(p.ID)
			v.Makers = d.Makers
			break
		}
		id = MyPage
	}

	v.Page = id
	switch id {
	case Browse:
		v.Items = d.ListedItems("")
		v.Parties = d.Parties
	case Dashboard:
		v.Parties = d.PartiesWithStatus(model.PartyCompleted)
		for _, p := range v.Parties {
			if p.Impact == nil {
				continue
			}
			v.Impact.ItemsExchanged += p.Impact.ItemsExchanged
			v.Impact.WaterSaved += p.Impact.WaterSaved
			v.Impact.CO2Reduced += p.Impact.CO2Reduced
		}
	case NeighborsCloset:
		v.Users = slices.DeleteFunc(slices.Clone(d.Users), func(u model.User) bool { return u.ID == in.User.ID })
	case Upload:
		v.Categories = model.Categories
		if in.User != nil {
			v.AcceptedParties = d.AcceptedUpcomingParties(in.User.ID)
		}
	case MyPage:
		uid := in.User.ID
		v.Users = d.Users
		v.Items = d.ItemsOf(uid)
		v.Impact = d.ImpactStats(uid)
		v.Credits = d.UserCredits(uid)
		v.Balance = d.CreditBalance(uid)
		v.Parties = d.Parties
		v.AcceptedParties = d.AcceptedUpcomingParties(uid)
		v.HostedParties = d.HostedParties(uid)
	case Community:
		v.Stories = d.Stories
		v.Reports = d.Reports
		v.Parties = d.Parties
	case Rewards:
		v.Rewards = d.Rewards
		v.Balance = d.CreditBalance(in.User.ID)
	case Party:
		v.Parties = d.Parties
		v.Items = d.Items
	case MakersHub:
		v.Makers = d.Makers
		v.Products = d.Products
		v.Balance = d.CreditBalance(in.User.ID)
	case Admin:
		v.Parties = d.Parties
		v.Items = d.Items
		v.Users = d.Users
		v.Pending = d.Pending
		v.Reports = d.Reports
	}
	return v
}
