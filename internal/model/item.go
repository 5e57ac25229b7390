package model

// Category is one of the closed set of garment categories.
type Category string

// Garment categories.
const (
	CategoryTShirt    Category = "T-SHIRT"
	CategoryJeans     Category = "JEANS"
	CategoryDress     Category = "DRESS"
	CategoryJacket    Category = "JACKET"
	CategoryAccessory Category = "ACCESSORY"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryTShirt, CategoryJeans, CategoryDress, CategoryJacket, CategoryAccessory}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := ImpactFactors[c]
	return ok
}

// ImpactFactor is the environmental saving attributed to exchanging one
// garment of a category instead of buying it new.
type ImpactFactor struct {
	Water float64 // litres
	CO2   float64 // kg
}

// ImpactFactors maps each category to its per-item saving.
var ImpactFactors = map[Category]ImpactFactor{
	CategoryTShirt:    {Water: 2700, CO2: 5.5},
	CategoryJeans:     {Water: 7500, CO2: 33.4},
	CategoryDress:     {Water: 4500, CO2: 14},
	CategoryJacket:    {Water: 5000, CO2: 20},
	CategoryAccessory: {Water: 1000, CO2: 2.5},
}

// SubmissionStatus is an item's party-submission state. The empty value means
// the item has not been submitted.
type SubmissionStatus string

// Party submission statuses.
const (
	SubmissionNone     SubmissionStatus = ""
	SubmissionPending  SubmissionStatus = "PENDING"
	SubmissionApproved SubmissionStatus = "APPROVED"
	SubmissionRejected SubmissionStatus = "REJECTED"
)

// GoodbyeTag is written by the outgoing owner.
type GoodbyeTag struct {
	MetWhen      string `json:"metWhen"`
	MetWhere     string `json:"metWhere"`
	WhyGot       string `json:"whyGot"`
	WornCount    int    `json:"wornCount"`
	WhyLetGo     string `json:"whyLetGo"`
	FinalMessage string `json:"finalMessage"`
}

// HelloTag is written by the incoming owner.
type HelloTag struct {
	ReceivedFrom    string `json:"receivedFrom"`
	ReceivedAt      string `json:"receivedAt"`
	FirstImpression string `json:"firstImpression"`
	HelloMessage    string `json:"helloMessage"`
}

// ClothingItem is a garment in someone's closet.
type ClothingItem struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	Description           string           `json:"description"`
	Category              Category         `json:"category"`
	Size                  string           `json:"size"`
	ImageURL              string           `json:"imageUrl"`
	UserID                string           `json:"userId"`
	UserNickname          string           `json:"userNickname"`
	IsListedForExchange   bool             `json:"isListedForExchange"`
	PartySubmissionStatus SubmissionStatus `json:"partySubmissionStatus,omitempty"`
	SubmittedPartyID      string           `json:"submittedPartyId,omitempty"`
	GoodbyeTag            *GoodbyeTag      `json:"goodbyeTag,omitempty"`
	HelloTag              *HelloTag        `json:"helloTag,omitempty"`
}

// Submitted reports whether the item carries any submission state.
func (i *ClothingItem) Submitted() bool {
	return i.PartySubmissionStatus != SubmissionNone
}
