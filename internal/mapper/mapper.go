package mapper

import (
	"time"

	"github.com/otgil/otgil/internal/model"
)

// dateLayouts are tried in order when parsing backend dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999", // naive datetime
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDate parses a backend date or datetime. Unparseable input yields the
// zero time.
func ParseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate renders a date the way the backend accepts it.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// User maps a user record.
func User(r UserRecord) model.User {
	u := model.User{
		ID:          r.ID,
		Nickname:    r.Nickname,
		Email:       r.Email,
		PhoneNumber: deref(r.PhoneNumber),
		IsAdmin:     deref(r.IsAdmin),
		Neighbors:   make([]model.NeighborRef, 0, len(r.Neighbors)),
	}
	for _, n := range r.Neighbors {
		if n.Summary {
			u.Neighbors = append(u.Neighbors, model.NeighborBySummary(model.NeighborSummary{ID: n.ID, Nickname: n.Nickname}))
		} else {
			u.Neighbors = append(u.Neighbors, model.NeighborByID(n.ID))
		}
	}
	return u
}

// Item maps an item record. Absent tags stay nil.
func Item(r ItemRecord) model.ClothingItem {
	item := model.ClothingItem{
		ID:                    r.ID,
		Name:                  r.Name,
		Description:           r.Description,
		Category:              model.Category(r.Category),
		Size:                  r.Size,
		ImageURL:              r.ImageURL,
		UserID:                r.UserID,
		UserNickname:          r.UserNickname,
		IsListedForExchange:   r.IsListedForExchange,
		PartySubmissionStatus: model.SubmissionStatus(deref(r.PartySubmissionStatus)),
		SubmittedPartyID:      deref(r.SubmittedPartyID),
	}
	if g := r.GoodbyeTag; g != nil {
		item.GoodbyeTag = &model.GoodbyeTag{
			MetWhen:      g.MetWhen,
			MetWhere:     g.MetWhere,
			WhyGot:       g.WhyGot,
			WornCount:    g.WornCount,
			WhyLetGo:     g.WhyLetGo,
			FinalMessage: g.FinalMessage,
		}
	}
	if h := r.HelloTag; h != nil {
		item.HelloTag = &model.HelloTag{
			ReceivedFrom:    h.ReceivedFrom,
			ReceivedAt:      h.ReceivedAt,
			FirstImpression: h.FirstImpression,
			HelloMessage:    h.HelloMessage,
		}
	}
	return item
}

// Items maps a list of item records.
func Items(rs []ItemRecord) []model.ClothingItem {
	out := make([]model.ClothingItem, 0, len(rs))
	for _, r := range rs {
		out = append(out, Item(r))
	}
	return out
}

// Party maps a party record. Nested impact/kit objects take precedence over
// the flat columns.
func Party(r PartyRecord) model.Party {
	p := model.Party{
		ID:             r.ID,
		HostID:         r.HostID,
		Title:          r.Title,
		Description:    r.Description,
		Date:           ParseDate(r.Date),
		Location:       r.Location,
		ImageURL:       r.ImageURL,
		Details:        append([]string{}, r.Details...),
		Status:         model.PartyStatus(r.Status),
		InvitationCode: r.InvitationCode,
		Participants:   make([]model.PartyParticipant, 0, len(r.Participants)),
	}
	for _, pp := range r.Participants {
		p.Participants = append(p.Participants, model.PartyParticipant{
			UserID:   pp.UserID,
			Nickname: pp.Nickname,
			Status:   model.ParticipantStatus(pp.Status),
		})
	}

	switch {
	case r.Impact != nil:
		p.Impact = &model.ImpactStats{
			ItemsExchanged: r.Impact.ItemsExchanged,
			WaterSaved:     r.Impact.WaterSaved,
			CO2Reduced:     r.Impact.CO2Reduced,
		}
	case r.ImpactItemsExchanged != nil || r.ImpactWaterSaved != nil || r.ImpactCO2Reduced != nil:
		p.Impact = &model.ImpactStats{
			ItemsExchanged: deref(r.ImpactItemsExchanged),
			WaterSaved:     deref(r.ImpactWaterSaved),
			CO2Reduced:     deref(r.ImpactCO2Reduced),
		}
	}

	switch {
	case r.KitDetails != nil:
		p.Kit = &model.KitDetails{
			Participants:   r.KitDetails.Participants,
			ItemsPerPerson: r.KitDetails.ItemsPerPerson,
			Cost:           r.KitDetails.Cost,
		}
	case r.KitParticipants != nil || r.KitItemsPerPerson != nil || r.KitCost != nil:
		p.Kit = &model.KitDetails{
			Participants:   deref(r.KitParticipants),
			ItemsPerPerson: deref(r.KitItemsPerPerson),
			Cost:           deref(r.KitCost),
		}
	}
	return p
}

// Story maps a story record, flattening tag wrappers.
func Story(r StoryRecord) model.Story {
	s := model.Story{
		ID:       r.ID,
		UserID:   r.UserID,
		PartyID:  r.PartyID,
		Title:    r.Title,
		Author:   r.Author,
		Excerpt:  r.Excerpt,
		Content:  r.Content,
		ImageURL: r.ImageURL,
		Tags:     make([]string, 0, len(r.Tags)),
		Likes:    r.Likes,
		LikedBy:  append([]string{}, r.LikedBy...),
	}
	for _, t := range r.Tags {
		s.Tags = append(s.Tags, t.Name)
	}
	return s
}

// Comment maps a comment record.
func Comment(r CommentRecord) model.Comment {
	return model.Comment{
		ID:             r.ID,
		StoryID:        r.StoryID,
		UserID:         r.UserID,
		AuthorNickname: r.AuthorNickname,
		Text:           r.Text,
		Timestamp:      ParseDate(r.Timestamp),
	}
}

// Credit maps a credit record. The stored sign of Amount is preserved.
func Credit(r CreditRecord) model.Credit {
	return model.Credit{
		ID:           r.ID,
		UserID:       r.UserID,
		Date:         ParseDate(r.Date),
		ActivityName: r.ActivityName,
		Type:         model.CreditType(r.Type),
		Amount:       r.Amount,
	}
}

// Reward maps a reward record.
func Reward(r RewardRecord) model.Reward {
	return model.Reward{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Cost:        r.Cost,
		ImageURL:    r.ImageURL,
		Type:        model.RewardType(r.Type),
	}
}

// Maker maps a maker record and its nested products.
func Maker(r MakerRecord) (model.Maker, []model.MakerProduct) {
	m := model.Maker{
		ID:        r.ID,
		Name:      r.Name,
		Specialty: r.Specialty,
		Location:  r.Location,
		Bio:       r.Bio,
		ImageURL:  r.ImageURL,
	}
	products := make([]model.MakerProduct, 0, len(r.Products))
	for _, p := range r.Products {
		makerID := p.MakerID
		if makerID == "" {
			makerID = r.ID
		}
		products = append(products, model.MakerProduct{
			ID:          p.ID,
			MakerID:     makerID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			ImageURL:    p.ImageURL,
		})
	}
	return m, products
}

// Report maps a report record.
func Report(r ReportRecord) model.Report {
	return model.Report{
		ID:      r.ID,
		Title:   r.Title,
		Date:    ParseDate(r.Date),
		Excerpt: r.Excerpt,
	}
}
