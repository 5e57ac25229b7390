package fakeapi

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/otgil/otgil/internal/mapper"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "otgil1234"

func strPtr(s string) *string { return &s }

// Seed fills d with a small demo community: four members (the first is an
// admin), a handful of garments, three parties and the catalogs.
func Seed(d *Data) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), passwordCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.accounts = []*account{
		{ID: "user1", Nickname: "EcoFashionista", Email: "eco@fashion.com", PhoneNumber: strPtr("010-1111-2222"), IsAdmin: true, PasswordHash: string(hash), Neighbors: []string{"user2", "user4"}},
		{ID: "user2", Nickname: "Haebbi", Email: "namu@lazy.com", PhoneNumber: strPtr("010-3333-4444"), PasswordHash: string(hash), Neighbors: []string{"user1"}},
		{ID: "user3", Nickname: "StyleSeeker", Email: "style@seeker.com", PasswordHash: string(hash)},
		{ID: "user4", Nickname: "GreenThumb", Email: "green@thumb.com", PasswordHash: string(hash), Neighbors: []string{"user1"}},
	}

	goodbye := func(when, where, why string, worn int, letGo, msg string) *mapper.GoodbyeTagRecord {
		return &mapper.GoodbyeTagRecord{MetWhen: when, MetWhere: where, WhyGot: why, WornCount: worn, WhyLetGo: letGo, FinalMessage: msg}
	}
	d.items = []*mapper.ItemRecord{
		{ID: "item1", Name: "Vintage Denim Jacket", Description: "Well kept denim jacket with brass buttons.", Category: "JACKET", Size: "L", UserID: "user1", UserNickname: "EcoFashionista",
			GoodbyeTag: goodbye("2020", "Flea market", "Classic cut", 50, "Too small now", "Hope it keeps you warm!")},
		{ID: "item2", Name: "Embroidered T-Shirt", Description: "White tee with a hand-stitched flower.", Category: "T-SHIRT", Size: "M", UserID: "user2", UserNickname: "Haebbi", IsListedForExchange: true,
			HelloTag: &mapper.HelloTagRecord{ReceivedFrom: "EcoFashionista", ReceivedAt: "Year-end closet party", FirstImpression: "So cute!", HelloMessage: "My new favourite tee."}},
		{ID: "item3", Name: "Floral Wrap Dress", Description: "Light chiffon dress sewn from vintage fabric.", Category: "DRESS", Size: "S", UserID: "user1", UserNickname: "EcoFashionista", IsListedForExchange: true},
		{ID: "item4", Name: "Graphic Tee", Description: "Barely worn band shirt.", Category: "T-SHIRT", Size: "M", UserID: "user2", UserNickname: "Haebbi",
			PartySubmissionStatus: strPtr("PENDING"), SubmittedPartyID: strPtr("party1"),
			GoodbyeTag: goodbye("Summer 2022", "Online shop", "Limited print", 5, "Style changed", "Wear it loud!")},
		{ID: "item5", Name: "Woven Handbag", Description: "Summer bag woven from recycled cord.", Category: "ACCESSORY", Size: "FREE", UserID: "user1", UserNickname: "EcoFashionista",
			PartySubmissionStatus: strPtr("APPROVED"), SubmittedPartyID: strPtr("party1")},
		{ID: "item6", Name: "Painted Custom Jeans", Description: "One-off hand painted jeans.", Category: "JEANS", Size: "28", UserID: "user4", UserNickname: "GreenThumb", IsListedForExchange: true},
	}

	d.parties = []*mapper.PartyRecord{
		{ID: "party1", HostID: "user1", Title: "Year-end Closet Swap", Description: "Bring what you no longer wear and swap over tea.", Date: "2024-12-28", Location: "Seongsu-dong, Seoul",
			Details: []string{"Free admission", "Upcycling workshop materials provided"}, Status: "UPCOMING", InvitationCode: "ECOPARTY24",
			Participants: []mapper.ParticipantRecord{{UserID: "user1", Nickname: "EcoFashionista", Status: "ACCEPTED"}, {UserID: "user2", Nickname: "Haebbi", Status: "ACCEPTED"}},
			KitDetails:   &mapper.KitRecord{Participants: 15, ItemsPerPerson: 5, Cost: 80000}},
		{ID: "party2", HostID: "user4", Title: "Flea Market After Party", Description: "Swap the leftovers and meet the neighbours.", Date: "2024-11-15", Location: "Seongsu-dong, Seoul",
			Details: []string{"First 50 people"}, Status: "UPCOMING", InvitationCode: "SEONGSU24",
			Participants: []mapper.ParticipantRecord{{UserID: "user1", Nickname: "EcoFashionista", Status: "PENDING"}, {UserID: "user3", Nickname: "StyleSeeker", Status: "PENDING"}},
			KitDetails:   &mapper.KitRecord{Participants: 20, ItemsPerPerson: 3, Cost: 95000}},
		{ID: "party3", HostID: "user4", Title: "Last Summer's Swap", Description: "Trade the summer clothes that no longer fit.", Date: "2024-09-05", Location: "Online",
			Details: []string{"Breakout rooms for small groups"}, Status: "COMPLETED", InvitationCode: "SUMMER24",
			Participants: []mapper.ParticipantRecord{{UserID: "user1", Nickname: "EcoFashionista", Status: "ATTENDED"}, {UserID: "user2", Nickname: "Haebbi", Status: "REJECTED"}},
			Impact:       &mapper.ImpactRecord{ItemsExchanged: 50, WaterSaved: 135000, CO2Reduced: 275},
			KitDetails:   &mapper.KitRecord{Participants: 10, ItemsPerPerson: 5, Cost: 70000}},
	}

	d.stories = []*story{
		{StoryRecord: mapper.StoryRecord{ID: "story1", UserID: "user2", PartyID: "party1", Title: "Found my favourite jacket at the swap", Author: "Haebbi",
			Excerpt: "The Seongsu swap was bigger than I expected...", Content: "The Seongsu swap was bigger than I expected, and I left with a denim jacket in exactly my size.",
			Tags: tagRecords([]string{"#EventReview", "#GoodFind"})}, Likers: []string{"user1"}},
		{StoryRecord: mapper.StoryRecord{ID: "story2", UserID: "user1", PartyID: "party1", Title: "An eco-bag from old jeans", Author: "EcoFashionista",
			Excerpt: "Old jeans, new bag.", Content: "A pair of jeans from the back of my closet became a tote bag at the workshop.",
			Tags: tagRecords([]string{"#Upcycling", "#DIY"})}, Likers: []string{"user2", "user3"}},
	}
	d.comments = []*mapper.CommentRecord{
		{ID: "comment1", StoryID: "story1", UserID: "user1", AuthorNickname: "EcoFashionista", Text: "That jacket looks great on you!", Timestamp: "2023-11-20T10:00:00Z"},
		{ID: "comment2", StoryID: "story1", UserID: "user2", AuthorNickname: "Haebbi", Text: "Thank you! I got lucky.", Timestamp: "2023-11-20T10:05:00Z"},
	}
	d.reports = []*mapper.ReportRecord{
		{ID: "report1", Title: "October newsletter", Date: "2023-10-31", Excerpt: "521 garments found new owners this month."},
		{ID: "report2", Title: "September newsletter", Date: "2023-09-30", Excerpt: "The holiday campaign rehomed 380 garments."},
	}
	d.credits = []*mapper.CreditRecord{
		{ID: "credit1", UserID: "user1", Date: "2023-10-25", ActivityName: "Donated a denim jacket", Type: "EARNED_CLOTHING", Amount: 1000},
		{ID: "credit2", UserID: "user1", Date: "2023-11-18", ActivityName: "Flea market workshop", Type: "EARNED_EVENT", Amount: 500},
		{ID: "credit3", UserID: "user1", Date: "2023-11-20", ActivityName: "Eco detergent", Type: "SPENT_REWARD", Amount: 800},
	}
	d.rewards = []mapper.RewardRecord{
		{ID: "reward1", Name: "Plant-based dish soap", Description: "Kitchen soap made from plant oils.", Cost: 800, Type: "GOODS"},
		{ID: "reward2", Name: "Bamboo toothbrush set", Description: "Two bamboo toothbrushes.", Cost: 1200, Type: "GOODS"},
		{ID: "reward3", Name: "Laundry service coupon", Description: "10% off a partner laundry service.", Cost: 500, Type: "SERVICE"},
	}
	d.makers = []mapper.MakerRecord{
		{ID: "maker1", Name: "Repair Atelier", Specialty: "Mending and reworking", Location: "Seongsu-dong, Seoul", Bio: "Twenty years of tailoring.",
			Products: []mapper.MakerProductRecord{
				{ID: "prod1", MakerID: "maker1", Name: "Denim pouch", Description: "Pouch cut from old jeans.", Price: 1500},
				{ID: "prod2", MakerID: "maker1", Name: "Patchwork coasters", Description: "Set of four coasters from offcuts.", Price: 800},
			}},
		{ID: "maker2", Name: "Denim Lab", Specialty: "Denim upcycling", Location: "Yeonnam-dong, Seoul", Bio: "Old jeans into bags and accessories.",
			Products: []mapper.MakerProductRecord{
				{ID: "prod3", MakerID: "maker2", Name: "Pocket card wallet", Description: "Card wallet built around a back pocket.", Price: 1200},
			}},
	}
	return nil
}
