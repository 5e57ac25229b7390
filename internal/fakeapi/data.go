package fakeapi

import (
	"crypto/rand"
	"encoding/hex"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/model"
)

type account struct {
	ID           string
	Nickname     string
	Email        string
	PhoneNumber  *string
	IsAdmin      bool
	PasswordHash string
	Neighbors    []string
}

type story struct {
	mapper.StoryRecord
	Likers []string
}

// Data is the backend's in-memory state. All access goes through mu.
type Data struct {
	mu       sync.Mutex
	accounts []*account
	items    []*mapper.ItemRecord
	parties  []*mapper.PartyRecord
	stories  []*story
	comments []*mapper.CommentRecord
	reports  []*mapper.ReportRecord
	credits  []*mapper.CreditRecord
	rewards  []mapper.RewardRecord
	makers   []mapper.MakerRecord
	now      func() time.Time
}

// NewData returns an empty backend state.
func NewData() *Data {
	return &Data{now: time.Now}
}

func newID() string {
	return uuid.NewString()
}

func invitationCode() string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "OTGIL1"
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}

func (d *Data) accountByID(id string) *account {
	for _, a := range d.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (d *Data) accountByEmail(email string) *account {
	for _, a := range d.accounts {
		if strings.EqualFold(a.Email, email) {
			return a
		}
	}
	return nil
}

func (d *Data) item(id string) *mapper.ItemRecord {
	for _, it := range d.items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (d *Data) party(id string) *mapper.PartyRecord {
	for _, p := range d.parties {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (d *Data) story(id string) *story {
	for _, s := range d.stories {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// userRecord renders an account. Summaries are used for /users/me, which
// expands neighbors; the list endpoint returns bare IDs.
func (d *Data) userRecord(a *account, summaries bool) mapper.UserRecord {
	isAdmin := a.IsAdmin
	rec := mapper.UserRecord{
		ID:          a.ID,
		Nickname:    a.Nickname,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		IsAdmin:     &isAdmin,
		Neighbors:   []mapper.NeighborRecord{},
	}
	for _, id := range a.Neighbors {
		n := mapper.NeighborRecord{ID: id}
		if summaries {
			n.Summary = true
			if other := d.accountByID(id); other != nil {
				n.Nickname = other.Nickname
			}
		}
		rec.Neighbors = append(rec.Neighbors, n)
	}
	return rec
}

func (d *Data) storyRecord(s *story) mapper.StoryRecord {
	rec := s.StoryRecord
	rec.Tags = slices.Clone(s.Tags)
	rec.Likes = len(s.Likers)
	rec.LikedBy = slices.Clone(s.Likers)
	if rec.LikedBy == nil {
		rec.LikedBy = []string{}
	}
	return rec
}

func (d *Data) balance(userID string) int {
	total := 0
	for _, c := range d.credits {
		if c.UserID != userID {
			continue
		}
		total += model.Credit{Type: model.CreditType(c.Type), Amount: c.Amount}.Signed()
	}
	return total
}

func cloneParty(p *mapper.PartyRecord) mapper.PartyRecord {
	c := *p
	c.Details = slices.Clone(p.Details)
	c.Participants = slices.Clone(p.Participants)
	if c.Participants == nil {
		c.Participants = []mapper.ParticipantRecord{}
	}
	if c.Details == nil {
		c.Details = []string{}
	}
	return c
}
