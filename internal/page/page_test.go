package page

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otgil/otgil/internal/model"
	"github.com/otgil/otgil/internal/state"
)

func testData() state.Snapshot {
	return state.Snapshot{
		Users: []model.User{
			{ID: "u1", Nickname: "one", IsAdmin: true},
			{ID: "u2", Nickname: "two"},
		},
		Items: []model.ClothingItem{
			{ID: "i1", UserID: "u1", Category: model.CategoryJeans},
			{ID: "i2", UserID: "u2", Category: model.CategoryDress, IsListedForExchange: true, SubmittedPartyID: "p1", PartySubmissionStatus: model.SubmissionPending},
			{ID: "i3", UserID: "u2", Category: model.CategoryJacket},
		},
		Parties: []model.Party{
			{ID: "p1", HostID: "u1", Status: model.PartyUpcoming, Date: time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC),
				Participants: []model.PartyParticipant{{UserID: "u1", Status: model.ParticipantAccepted}}},
			{ID: "p2", Status: model.PartyCompleted, Impact: &model.ImpactStats{ItemsExchanged: 10, WaterSaved: 100, CO2Reduced: 1}},
			{ID: "p3", Status: model.PartyCompleted, Impact: &model.ImpactStats{ItemsExchanged: 5, WaterSaved: 50, CO2Reduced: 0.5}},
		},
		Stories:  []model.Story{{ID: "s1", PartyID: "p1"}},
		Comments: []model.Comment{{ID: "c1", StoryID: "s1"}, {ID: "c2", StoryID: "s9"}},
		Credits: []model.Credit{
			{UserID: "u1", Type: model.CreditEarnedEvent, Amount: 500},
			{UserID: "u1", Type: model.CreditSpentReward, Amount: -200},
			{UserID: "u2", Type: model.CreditEarnedEvent, Amount: 999},
		},
	}
}

func TestResolveGating(t *testing.T) {
	admin := &model.User{ID: "u1", IsAdmin: true}
	member := &model.User{ID: "u2"}

	tests := []struct {
		name string
		id   ID
		sel  Selection
		user *model.User
		want ID
	}{
		{"home", Home, Selection{}, nil, Home},
		{"browse is public", Browse, Selection{}, nil, Browse},
		{"community is public", Community, Selection{}, nil, Community},
		{"my page needs login", MyPage, Selection{}, nil, Login},
		{"rewards needs login", Rewards, Selection{}, nil, Login},
		{"makers needs login", MakersHub, Selection{}, nil, Login},
		{"neighbors needs login", NeighborsCloset, Selection{}, nil, Login},
		{"admin for anonymous", Admin, Selection{}, nil, Home},
		{"admin for member", Admin, Selection{}, member, Home},
		{"admin for admin", Admin, Selection{}, admin, Admin},
		{"unknown page", ID("NOPE"), Selection{}, admin, Home},
		{"story found", StoryDetail, Selection{StoryID: "s1"}, nil, StoryDetail},
		{"story missing", StoryDetail, Selection{StoryID: "s9"}, nil, Community},
		{"neighbor found", NeighborProfile, Selection{NeighborID: "u2"}, admin, NeighborProfile},
		{"neighbor is self", NeighborProfile, Selection{NeighborID: "u1"}, admin, NeighborsCloset},
		{"neighbor missing", NeighborProfile, Selection{}, admin, NeighborsCloset},
		{"host dashboard found", PartyHostDashboard, Selection{PartyID: "p1"}, admin, PartyHostDashboard},
		{"host dashboard missing", PartyHostDashboard, Selection{PartyID: "zz"}, admin, MyPage},
		{"host dashboard anonymous", PartyHostDashboard, Selection{PartyID: "p1"}, nil, Login},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Resolve(tt.id, tt.sel, Input{User: tt.user, Data: testData()})
			assert.Equal(t, tt.want, v.Page)
			assert.Equal(t, tt.id, v.Requested)
		})
	}
}

func TestResolveMyPage(t *testing.T) {
	user := &model.User{ID: "u1", IsAdmin: true}
	v := Resolve(MyPage, Selection{}, Input{User: user, Data: testData()})

	require.Equal(t, MyPage, v.Page)
	assert.Len(t, v.Items, 1)
	assert.Equal(t, 300, v.Balance)
	assert.Len(t, v.Credits, 2)
	assert.Equal(t, 1, v.Impact.ItemsExchanged)
	assert.InDelta(t, 7500, v.Impact.WaterSaved, 1e-9)
	require.Len(t, v.AcceptedParties, 1)
	assert.Equal(t, "p1", v.AcceptedParties[0].ID)
	require.Len(t, v.HostedParties, 1)
}

func TestResolveDetailPages(t *testing.T) {
	user := &model.User{ID: "u1"}

	v := Resolve(StoryDetail, Selection{StoryID: "s1"}, Input{User: user, Data: testData()})
	require.NotNil(t, v.Story)
	require.NotNil(t, v.Party)
	assert.Equal(t, "p1", v.Party.ID)
	assert.Len(t, v.Comments, 1)

	v = Resolve(NeighborProfile, Selection{NeighborID: "u2"}, Input{User: user, Data: testData()})
	require.NotNil(t, v.Neighbor)
	assert.Len(t, v.Items, 1, "only listed items are shown")

	v = Resolve(PartyHostDashboard, Selection{PartyID: "p1"}, Input{User: user, Data: testData()})
	require.NotNil(t, v.Party)
	assert.Len(t, v.Items, 1)

	v = Resolve(NeighborsCloset, Selection{}, Input{User: user, Data: testData()})
	require.Len(t, v.Users, 1)
	assert.Equal(t, "u2", v.Users[0].ID)
}

func TestResolveDashboardSumsCompletedImpact(t *testing.T) {
	v := Resolve(Dashboard, Selection{}, Input{Data: testData()})
	assert.Equal(t, 15, v.Impact.ItemsExchanged)
	assert.InDelta(t, 150, v.Impact.WaterSaved, 1e-9)
	assert.Len(t, v.Parties, 2)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/", Path(Home, Selection{}))
	assert.Equal(t, "/community/stories/s%201", Path(StoryDetail, Selection{StoryID: "s 1"}))
	assert.Equal(t, "/community", Path(StoryDetail, Selection{}))
	assert.Equal(t, "/parties/p1/dashboard", Path(PartyHostDashboard, WithSelection(PartyHostDashboard, "p1")))
	assert.Equal(t, "/neighbors/u2", Path(NeighborProfile, WithSelection(NeighborProfile, "u2")))
	assert.Equal(t, "/", Path(ID("NOPE"), Selection{}))

	for _, id := range All {
		assert.NotEmpty(t, Pattern(id), id)
	}
}

func TestNav(t *testing.T) {
	n := NewNav()
	id, _ := n.Current()
	assert.Equal(t, Home, id)

	n.Select(StoryDetail, Selection{StoryID: "s1"})
	n.Go(Community)
	id, sel := n.Current()
	assert.Equal(t, Community, id)
	assert.Equal(t, "s1", sel.StoryID)
}
