package model

// RewardType distinguishes physical goods from services.
type RewardType string

// Reward types.
const (
	RewardGoods   RewardType = "GOODS"
	RewardService RewardType = "SERVICE"
)

// Reward is a catalog entry redeemable for OL credits.
type Reward struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Cost        int        `json:"cost"`
	ImageURL    string     `json:"imageUrl"`
	Type        RewardType `json:"type"`
}

// Maker is an upcycling artisan.
type Maker struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Location  string `json:"location"`
	Bio       string `json:"bio"`
	ImageURL  string `json:"imageUrl"`
}

// MakerProduct is sold by a maker for OL credits.
type MakerProduct struct {
	ID          string `json:"id"`
	MakerID     string `json:"makerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	ImageURL    string `json:"imageUrl"`
}
