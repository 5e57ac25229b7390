// Package mapper translates the backend's snake_case wire records into the
// client's model types, and builds request bodies in the same convention.
package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UserRecord is a user as returned by /users/ and /users/me.
type UserRecord struct {
	ID          string           `json:"id"`
	Nickname    string           `json:"nickname"`
	Email       string           `json:"email"`
	PhoneNumber *string          `json:"phone_number"`
	IsAdmin     *bool            `json:"is_admin"`
	Neighbors   []NeighborRecord `json:"neighbors"`
}

// NeighborRecord holds one neighbors entry, which is either a bare user ID
// or a {id, nickname} object depending on the endpoint.
type NeighborRecord struct {
	ID       string
	Nickname string
	// Summary is set when the entry arrived as an object.
	Summary bool
}

// UnmarshalJSON accepts both neighbor shapes.
func (n *NeighborRecord) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = NeighborRecord{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		*n = NeighborRecord{}
		return json.Unmarshal(data, &n.ID)
	}
	var obj struct {
		ID       string `json:"id"`
		Nickname string `json:"nickname"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("neighbor entry: %w", err)
	}
	*n = NeighborRecord{ID: obj.ID, Nickname: obj.Nickname, Summary: true}
	return nil
}

// MarshalJSON writes the entry back in the shape it arrived in.
func (n NeighborRecord) MarshalJSON() ([]byte, error) {
	if n.Summary {
		return json.Marshal(map[string]string{"id": n.ID, "nickname": n.Nickname})
	}
	return json.Marshal(n.ID)
}

// GoodbyeTagRecord is the wire form of a goodbye tag.
type GoodbyeTagRecord struct {
	MetWhen      string `json:"met_when"`
	MetWhere     string `json:"met_where"`
	WhyGot       string `json:"why_got"`
	WornCount    int    `json:"worn_count"`
	WhyLetGo     string `json:"why_let_go"`
	FinalMessage string `json:"final_message"`
}

// HelloTagRecord is the wire form of a hello tag.
type HelloTagRecord struct {
	ReceivedFrom    string `json:"received_from"`
	ReceivedAt      string `json:"received_at"`
	FirstImpression string `json:"first_impression"`
	HelloMessage    string `json:"hello_message"`
}

// ItemRecord is a clothing item.
type ItemRecord struct {
	ID                    string            `json:"id"`
	Name                  string            `json:"name"`
	Description           string            `json:"description"`
	Category              string            `json:"category"`
	Size                  string            `json:"size"`
	ImageURL              string            `json:"image_url"`
	UserID                string            `json:"user_id"`
	UserNickname          string            `json:"user_nickname"`
	IsListedForExchange   bool              `json:"is_listed_for_exchange"`
	PartySubmissionStatus *string           `json:"party_submission_status"`
	SubmittedPartyID      *string           `json:"submitted_party_id"`
	GoodbyeTag            *GoodbyeTagRecord `json:"goodbye_tag"`
	HelloTag              *HelloTagRecord   `json:"hello_tag"`
}

// ParticipantRecord is a party participant.
type ParticipantRecord struct {
	UserID   string `json:"user_id"`
	Nickname string `json:"nickname"`
	Status   string `json:"status"`
}

// ImpactRecord is the nested impact object.
type ImpactRecord struct {
	ItemsExchanged int     `json:"items_exchanged"`
	WaterSaved     float64 `json:"water_saved"`
	CO2Reduced     float64 `json:"co2_reduced"`
}

// KitRecord is the nested kit_details object.
type KitRecord struct {
	Participants   int `json:"participants"`
	ItemsPerPerson int `json:"items_per_person"`
	Cost           int `json:"cost"`
}

// PartyRecord is a party. Impact and kit figures arrive either nested or as
// flat columns, depending on the backend version.
type PartyRecord struct {
	ID             string              `json:"id"`
	HostID         string              `json:"host_id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Date           string              `json:"date"`
	Location       string              `json:"location"`
	ImageURL       string              `json:"image_url"`
	Details        []string            `json:"details"`
	Status         string              `json:"status"`
	InvitationCode string              `json:"invitation_code"`
	Participants   []ParticipantRecord `json:"participants"`
	Impact         *ImpactRecord       `json:"impact"`
	KitDetails     *KitRecord          `json:"kit_details"`

	ImpactItemsExchanged *int     `json:"impact_items_exchanged"`
	ImpactWaterSaved     *float64 `json:"impact_water_saved"`
	ImpactCO2Reduced     *float64 `json:"impact_co2_reduced"`
	KitParticipants      *int     `json:"kit_participants"`
	KitItemsPerPerson    *int     `json:"kit_items_per_person"`
	KitCost              *int     `json:"kit_cost"`
}

// TagRecord wraps a story tag.
type TagRecord struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name"`
}

// StoryRecord is a community story.
type StoryRecord struct {
	ID       string      `json:"id"`
	UserID   string      `json:"user_id"`
	PartyID  string      `json:"party_id"`
	Title    string      `json:"title"`
	Author   string      `json:"author"`
	Excerpt  string      `json:"excerpt"`
	Content  string      `json:"content"`
	ImageURL string      `json:"image_url"`
	Tags     []TagRecord `json:"tags"`
	Likes    int         `json:"likes"`
	LikedBy  []string    `json:"liked_by"`
}

// StoryDetailRecord is a story with its comments.
type StoryDetailRecord struct {
	StoryRecord
	Comments []CommentRecord `json:"comments"`
}

// CommentRecord is a story comment.
type CommentRecord struct {
	ID             string `json:"id"`
	StoryID        string `json:"story_id"`
	UserID         string `json:"user_id"`
	AuthorNickname string `json:"author_nickname"`
	Text           string `json:"text"`
	Timestamp      string `json:"timestamp"`
}

// CreditRecord is one credit history entry.
type CreditRecord struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Date         string `json:"date"`
	ActivityName string `json:"activity_name"`
	Type         string `json:"type"`
	Amount       int    `json:"amount"`
}

// RewardRecord is a reward catalog entry.
type RewardRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	ImageURL    string `json:"image_url"`
	Type        string `json:"type"`
}

// MakerProductRecord is a product sold by a maker.
type MakerProductRecord struct {
	ID          string `json:"id"`
	MakerID     string `json:"maker_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	ImageURL    string `json:"image_url"`
}

// MakerRecord is a maker with nested products.
type MakerRecord struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Specialty string               `json:"specialty"`
	Location  string               `json:"location"`
	Bio       string               `json:"bio"`
	ImageURL  string               `json:"image_url"`
	Products  []MakerProductRecord `json:"products"`
}

// ReportRecord is a newsletter / performance report.
type ReportRecord struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Excerpt string `json:"excerpt"`
}

// TokenRecord is the login response.
type TokenRecord struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
