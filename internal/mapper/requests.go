package mapper

import "github.com/otgil/otgil/internal/model"

// SignUpRequest creates an account.
type SignUpRequest struct {
	Nickname    string  `json:"nickname"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Password    string  `json:"password"`
	IsAdmin     bool    `json:"is_admin"`
}

// ItemCreateRequest registers a clothing item.
type ItemCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Size        string `json:"size"`
	ImageURL    string `json:"image_url"`
}

// ListingPatch toggles an item's exchange listing.
type ListingPatch struct {
	IsListedForExchange bool `json:"is_listed_for_exchange"`
}

// SubmissionPatch sets or clears an item's party submission. A nil field
// is sent as an explicit null, which the backend treats as "clear".
type SubmissionPatch struct {
	SubmittedPartyID      *string `json:"submitted_party_id"`
	PartySubmissionStatus *string `json:"party_submission_status"`
}

// PartyCreateRequest proposes a new party.
type PartyCreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	ImageURL    string   `json:"image_url"`
	Details     []string `json:"details"`
}

// StoryRequest creates or updates a story.
type StoryRequest struct {
	PartyID  string   `json:"party_id,omitempty"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	ImageURL string   `json:"image_url"`
	Tags     []string `json:"tags"`
}

// CommentRequest adds a comment.
type CommentRequest struct {
	Text string `json:"text"`
}

// ReportRequest publishes a newsletter report.
type ReportRequest struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Excerpt string `json:"excerpt"`
}

// EarnRequest records a credit change. Amount is always sent as an absolute
// value; Type carries the direction.
type EarnRequest struct {
	UserID       string `json:"user_id"`
	Amount       int    `json:"amount"`
	ActivityName string `json:"activity_name"`
	Type         string `json:"type"`
}

// StatusRequest carries a single status value.
type StatusRequest struct {
	Status string `json:"status"`
}

// GoodbyeTagRequest converts a goodbye tag to its wire form.
func GoodbyeTagRequest(t model.GoodbyeTag) GoodbyeTagRecord {
	return GoodbyeTagRecord{
		MetWhen:      t.MetWhen,
		MetWhere:     t.MetWhere,
		WhyGot:       t.WhyGot,
		WornCount:    t.WornCount,
		WhyLetGo:     t.WhyLetGo,
		FinalMessage: t.FinalMessage,
	}
}

// HelloTagRequest converts a hello tag to its wire form.
func HelloTagRequest(t model.HelloTag) HelloTagRecord {
	return HelloTagRecord{
		ReceivedFrom:    t.ReceivedFrom,
		ReceivedAt:      t.ReceivedAt,
		FirstImpression: t.FirstImpression,
		HelloMessage:    t.HelloMessage,
	}
}

// Abs returns the magnitude of a credit amount.
func Abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
