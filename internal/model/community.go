package model

import "time"

// Story is a community post about a party.
type Story struct {
	ID       string   `json:"id"`
	UserID   string   `json:"userId"`
	PartyID  string   `json:"partyId"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Excerpt  string   `json:"excerpt"`
	Content  string   `json:"content"`
	ImageURL string   `json:"imageUrl"`
	Tags     []string `json:"tags"`
	Likes    int      `json:"likes"`
	LikedBy  []string `json:"likedBy"`
}

// LikedByUser reports whether userID liked the story.
func (s *Story) LikedByUser(userID string) bool {
	for _, id := range s.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is a reply on a story.
type Comment struct {
	ID             string    `json:"id"`
	StoryID        string    `json:"storyId"`
	UserID         string    `json:"userId"`
	AuthorNickname string    `json:"authorNickname"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
}

// Report is a newsletter / performance report.
type Report struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Date    time.Time `json:"date"`
	Excerpt string    `json:"excerpt"`
}
