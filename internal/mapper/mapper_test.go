package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otgil/otgil/internal/model"
)

func TestUserNeighborShapes(t *testing.T) {
	raw := `{
		"id": "u1", "nickname": "mina", "email": "mina@example.com",
		"phone_number": null, "is_admin": true,
		"neighbors": ["u2", {"id": "u3", "nickname": "jun"}]
	}`

	var rec UserRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	u := User(rec)

	assert.Equal(t, "u1", u.ID)
	assert.True(t, u.IsAdmin)
	assert.Empty(t, u.PhoneNumber)
	require.Len(t, u.Neighbors, 2)
	assert.Equal(t, "u2", u.Neighbors[0].ID())
	assert.Nil(t, u.Neighbors[0].Summary)
	assert.Equal(t, "u3", u.Neighbors[1].ID())
	assert.Equal(t, "jun", u.Neighbors[1].Nickname())
}

func TestUserMissingOptionalFields(t *testing.T) {
	var rec UserRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"u9","nickname":"x","email":"x@y.z"}`), &rec))
	u := User(rec)
	assert.False(t, u.IsAdmin)
	assert.NotNil(t, u.Neighbors)
	assert.Empty(t, u.Neighbors)
}

func TestNeighborRecordRoundTrip(t *testing.T) {
	in := `["u2",{"id":"u3","nickname":"jun"}]`
	var recs []NeighborRecord
	require.NoError(t, json.Unmarshal([]byte(in), &recs))
	out, err := json.Marshal(recs)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestItemTagsAbsentOrWhole(t *testing.T) {
	raw := `[
		{"id":"i1","name":"Tee","category":"T-SHIRT","user_id":"u1","is_listed_for_exchange":true,
		 "party_submission_status":null,"submitted_party_id":null,"goodbye_tag":null},
		{"id":"i2","name":"Jeans","category":"JEANS","user_id":"u1",
		 "party_submission_status":"PENDING","submitted_party_id":"p1",
		 "goodbye_tag":{"met_when":"2019","met_where":"Seoul","why_got":"sale","worn_count":12,"why_let_go":"too small","final_message":"bye"},
		 "hello_tag":{"received_from":"mina","received_at":"party","first_impression":"soft","hello_message":"hi"}}
	]`

	var recs []ItemRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &recs))
	items := Items(recs)
	require.Len(t, items, 2)

	assert.Nil(t, items[0].GoodbyeTag)
	assert.Nil(t, items[0].HelloTag)
	assert.False(t, items[0].Submitted())
	assert.Empty(t, items[0].SubmittedPartyID)

	assert.Equal(t, model.SubmissionPending, items[1].PartySubmissionStatus)
	assert.Equal(t, "p1", items[1].SubmittedPartyID)
	require.NotNil(t, items[1].GoodbyeTag)
	assert.Equal(t, 12, items[1].GoodbyeTag.WornCount)
	assert.Equal(t, "too small", items[1].GoodbyeTag.WhyLetGo)
	require.NotNil(t, items[1].HelloTag)
	assert.Equal(t, "hi", items[1].HelloTag.HelloMessage)
}

func TestPartyImpactShapes(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantImpact *model.ImpactStats
		wantKit    *model.KitDetails
	}{
		{
			name:       "nested",
			raw:        `{"id":"p1","date":"2024-05-01","impact":{"items_exchanged":40,"water_saved":108000,"co2_reduced":220},"kit_details":{"participants":20,"items_per_person":3,"cost":150000}}`,
			wantImpact: &model.ImpactStats{ItemsExchanged: 40, WaterSaved: 108000, CO2Reduced: 220},
			wantKit:    &model.KitDetails{Participants: 20, ItemsPerPerson: 3, Cost: 150000},
		},
		{
			name:       "flat",
			raw:        `{"id":"p2","date":"2024-05-01","impact_items_exchanged":10,"impact_water_saved":27000,"impact_co2_reduced":55.5,"kit_participants":8}`,
			wantImpact: &model.ImpactStats{ItemsExchanged: 10, WaterSaved: 27000, CO2Reduced: 55.5},
			wantKit:    &model.KitDetails{Participants: 8},
		},
		{
			name: "absent",
			raw:  `{"id":"p3","date":"2024-05-01","impact":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec PartyRecord
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &rec))
			p := Party(rec)
			assert.Equal(t, tt.wantImpact, p.Impact)
			assert.Equal(t, tt.wantKit, p.Kit)
		})
	}
}

func TestPartyParticipantsAndDate(t *testing.T) {
	raw := `{"id":"p1","host_id":"u1","date":"2024-06-15","status":"UPCOMING","invitation_code":"ABC",
		"details":["bring 3 items"],
		"participants":[{"user_id":"u2","nickname":"jun","status":"ACCEPTED"}]}`
	var rec PartyRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	p := Party(rec)

	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), p.Date)
	assert.Equal(t, model.PartyUpcoming, p.Status)
	assert.True(t, p.HasParticipantWithStatus("u2", model.ParticipantAccepted))
	assert.Equal(t, []string{"bring 3 items"}, p.Details)
}

func TestStoryTagsFlatten(t *testing.T) {
	raw := `{"id":"s1","title":"t","tags":[{"id":1,"name":"denim"},{"id":2,"name":"swap"}],"likes":2,"liked_by":["u1","u2"]}`
	var rec StoryRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	s := Story(rec)

	assert.Equal(t, []string{"denim", "swap"}, s.Tags)
	assert.Equal(t, 2, s.Likes)
	assert.True(t, s.LikedByUser("u2"))
}

func TestStoryDetailComments(t *testing.T) {
	raw := `{"id":"s1","tags":[],"comments":[{"id":"c1","story_id":"s1","user_id":"u1","author_nickname":"mina","text":"nice","timestamp":"2024-05-01T10:00:00"}]}`
	var rec StoryDetailRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	require.Len(t, rec.Comments, 1)
	c := Comment(rec.Comments[0])
	assert.Equal(t, "mina", c.AuthorNickname)
	assert.Equal(t, 10, c.Timestamp.Hour())
	assert.Equal(t, "s1", Story(rec.StoryRecord).ID)
}

func TestCreditKeepsStoredSign(t *testing.T) {
	c := Credit(CreditRecord{ID: "c1", UserID: "u1", Date: "2024-05-01T09:30:00Z", Type: "SPENT_REWARD", Amount: -300})
	assert.Equal(t, -300, c.Amount)
	assert.Equal(t, model.CreditSpentReward, c.Type)
	assert.Equal(t, -300, c.Signed())
}

func TestMakerProductsInheritMakerID(t *testing.T) {
	m, products := Maker(MakerRecord{ID: "m1", Name: "Studio", Products: []MakerProductRecord{{ID: "mp1", Price: 500}}})
	assert.Equal(t, "m1", m.ID)
	require.Len(t, products, 1)
	assert.Equal(t, "m1", products[0].MakerID)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-05-01", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-05-01T12:30:00Z", time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)},
		{"2024-05-01T12:30:00.123456", time.Date(2024, 5, 1, 12, 30, 0, 123456000, time.UTC)},
		{"not a date", time.Time{}},
		{"", time.Time{}},
	}

	for _, tt := range tests {
		assert.True(t, tt.want.Equal(ParseDate(tt.in)), "ParseDate(%q) = %v", tt.in, ParseDate(tt.in))
	}
}

func TestSubmissionPatchSendsNulls(t *testing.T) {
	data, err := json.Marshal(SubmissionPatch{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"submitted_party_id":null,"party_submission_status":null}`, string(data))
}
