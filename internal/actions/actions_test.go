package actions_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otgil/otgil/internal/actions"
	"github.com/otgil/otgil/internal/apiclient"
	"github.com/otgil/otgil/internal/db"
	"github.com/otgil/otgil/internal/fakeapi"
	"github.com/otgil/otgil/internal/model"
	"github.com/otgil/otgil/internal/page"
	"github.com/otgil/otgil/internal/session"
	"github.com/otgil/otgil/internal/state"
	"github.com/otgil/otgil/internal/store"
)

type env struct {
	h     *actions.Handlers
	srv   *fakeapi.Server
	sess  *session.Manager
	store *state.Store
	nav   *page.Nav
}

// setup wires the client against a seeded backend. A non-empty email logs
// that member in and loads every collection.
func setup(t *testing.T, email string, prepare ...func(*fakeapi.Data)) env {
	t.Helper()
	ctx := context.Background()

	srv, ts := fakeapi.NewTestServer(t)
	for _, fn := range prepare {
		fn(srv.Data)
	}
	client := apiclient.New(ts.URL)
	sess := session.New(client, &store.TokenStore{DB: db.NewTestDB(t)})
	st := state.New(client, sess)
	nav := page.NewNav()

	if email != "" {
		require.NoError(t, sess.Login(ctx, email, fakeapi.SeedPassword))
		require.NoError(t, st.RefreshCredits(ctx))
	}
	require.NoError(t, st.RefreshPublic(ctx))
	srv.ResetRequests()

	return env{h: actions.New(client, sess, st, nav), srv: srv, sess: sess, store: st, nav: nav}
}

func currentPage(e env) page.ID {
	id, _ := e.nav.Current()
	return id
}

func TestRedeemRewardInsufficientBalanceSendsNothing(t *testing.T) {
	e := setup(t, "eco@fashion.com", func(d *fakeapi.Data) {
		d.AddCredit("user1", "EARNED_EVENT", 100)
	})
	require.Equal(t, 800, e.store.CreditBalance("user1"))

	err := e.h.RedeemReward(context.Background(), "reward2")

	assert.ErrorIs(t, err, actions.ErrInsufficientBalance)
	assert.Equal(t, "Insufficient balance.", actions.Message(err))
	assert.Empty(t, e.srv.Requests())
}

func TestRedeemRewardSpendsAndRefreshes(t *testing.T) {
	e := setup(t, "eco@fashion.com", func(d *fakeapi.Data) {
		d.AddCredit("user1", "EARNED_EVENT", 100)
	})

	require.NoError(t, e.h.RedeemReward(context.Background(), "reward1"))

	assert.Equal(t, []string{"POST /credits/earn", "GET /credits/my-history"}, e.srv.Requests())
	assert.Equal(t, 0, e.store.CreditBalance("user1"))
	credits := e.store.UserCredits("user1")
	last := credits[len(credits)-1]
	assert.Equal(t, model.CreditSpentReward, last.Type)
	assert.Equal(t, 800, last.Amount)
}

func TestPurchaseAndOffset(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "eco@fashion.com", func(d *fakeapi.Data) {
		d.AddCredit("user1", "EARNED_EVENT", 1000)
	})
	require.Equal(t, 1700, e.store.CreditBalance("user1"))

	require.NoError(t, e.h.PurchaseMakerProduct(ctx, "prod1"))
	assert.Equal(t, 200, e.store.CreditBalance("user1"))
	assert.ErrorIs(t, e.h.PurchaseMakerProduct(ctx, "prod2"), actions.ErrInsufficientBalance)

	var verr *actions.ValidationError
	assert.ErrorAs(t, e.h.OffsetCredit(ctx, 0), &verr)
	require.NoError(t, e.h.OffsetCredit(ctx, 150))
	assert.Equal(t, 50, e.store.CreditBalance("user1"))
	assert.ErrorIs(t, e.h.OffsetCredit(ctx, 51), actions.ErrInsufficientBalance)
}

func TestAnonymousToggleNeighborRedirects(t *testing.T) {
	e := setup(t, "")

	err := e.h.ToggleNeighbor(context.Background(), "user2")

	assert.ErrorIs(t, err, actions.ErrLoginRequired)
	assert.Equal(t, page.Login, currentPage(e))
	assert.Empty(t, e.srv.Requests())
}

func TestAnonymousActionsNeverSend(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "")

	calls := map[string]func() error{
		"redeem":   func() error { return e.h.RedeemReward(ctx, "reward1") },
		"offset":   func() error { return e.h.OffsetCredit(ctx, 10) },
		"listing":  func() error { return e.h.ToggleListing(ctx, "item2") },
		"apply":    func() error { return e.h.ApplyToParty(ctx, "party1", "ECOPARTY24") },
		"like":     func() error { return e.h.ToggleLikeStory(ctx, "story1") },
		"comment":  func() error { return e.h.AddComment(ctx, "story1", "hi") },
		"check-in": func() error { return e.h.UpdateParticipantStatus(ctx, "party1", "user2", model.ParticipantAttended) },
	}
	for name, call := range calls {
		assert.ErrorIs(t, call(), actions.ErrLoginRequired, name)
	}
	assert.Empty(t, e.srv.Requests())
}

func TestToggleNeighbor(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "eco@fashion.com")

	require.NoError(t, e.h.ToggleNeighbor(ctx, "user2"))
	assert.Equal(t, []string{"DELETE /users/user2/neighbors", "GET /users/me"}, e.srv.Requests())
	u, _ := e.sess.User()
	assert.False(t, u.HasNeighbor("user2"))
	stored, _ := e.store.User("user1")
	assert.False(t, stored.HasNeighbor("user2"))

	require.NoError(t, e.h.ToggleNeighbor(ctx, "user2"))
	u, _ = e.sess.User()
	assert.True(t, u.HasNeighbor("user2"))
}

func TestCheckInOnlyDrivesAttended(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "eco@fashion.com")

	require.NoError(t, e.h.UpdateParticipantStatus(ctx, "party1", "user2", model.ParticipantAccepted))
	assert.Empty(t, e.srv.Requests())

	require.NoError(t, e.h.UpdateParticipantStatus(ctx, "party1", "user2", model.ParticipantAttended))
	assert.Contains(t, e.srv.Requests(), "POST /parties/party1/check-in?user_id=user2")
	p, ok := e.store.Party("party1")
	require.True(t, ok)
	assert.True(t, p.HasParticipantWithStatus("user2", model.ParticipantAttended))
}

func TestSubmitCancelRoundTrip(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "eco@fashion.com")

	before, ok := e.store.Item("item3")
	require.True(t, ok)
	require.False(t, before.Submitted())

	require.NoError(t, e.h.SubmitToParty(ctx, "item3", "party1"))
	mid, _ := e.store.Item("item3")
	assert.Equal(t, model.SubmissionPending, mid.PartySubmissionStatus)
	assert.Equal(t, "party1", mid.SubmittedPartyID)

	require.NoError(t, e.h.CancelPartySubmission(ctx, "item3"))
	after, _ := e.store.Item("item3")
	assert.Equal(t, before, after)
}

func TestCancelRequiresPending(t *testing.T) {
	e := setup(t, "eco@fashion.com")

	err := e.h.CancelPartySubmission(context.Background(), "item5")

	var verr *actions.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "item", verr.Field)
	assert.Empty(t, e.srv.Requests())
}

func TestApplyToParty(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "style@seeker.com")

	var verr *actions.ValidationError
	assert.ErrorAs(t, e.h.ApplyToParty(ctx, "party1", "  "), &verr)
	assert.Empty(t, e.srv.Requests())

	err := e.h.ApplyToParty(ctx, "party1", "WRONG")
	require.Error(t, err)
	assert.Equal(t, "Invalid invitation code", actions.Message(err))

	require.NoError(t, e.h.ApplyToParty(ctx, "party1", "ECOPARTY24"))
	p, _ := e.store.Party("party1")
	assert.True(t, p.HasParticipantWithStatus("user3", model.ParticipantPending))
}

func TestAdminActionsNeedAdmin(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "namu@lazy.com")

	assert.ErrorIs(t, e.h.DecidePartyItem(ctx, "item4", model.SubmissionApproved), actions.ErrAdminRequired)
	assert.ErrorIs(t, e.h.DeleteParty(ctx, "party1"), actions.ErrAdminRequired)
	assert.ErrorIs(t, e.h.AddReport(ctx, actions.ReportDraft{Title: "x", Date: "2024-01-01"}), actions.ErrAdminRequired)
	assert.Empty(t, e.srv.Requests())
}

func TestAdminDecisions(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "eco@fashion.com")
	require.NoError(t, e.store.RefreshPending(ctx))
	require.Len(t, e.store.Snapshot().Pending, 1)

	require.NoError(t, e.h.DecidePartyItem(ctx, "item4", model.SubmissionApproved))
	it, _ := e.store.Item("item4")
	assert.Equal(t, model.SubmissionApproved, it.PartySubmissionStatus)
	assert.Empty(t, e.store.Snapshot().Pending)

	require.NoError(t, e.h.DecideParticipant(ctx, "party2", "user3", model.ParticipantAccepted))
	p, _ := e.store.Party("party2")
	assert.True(t, p.HasParticipantWithStatus("user3", model.ParticipantAccepted))

	require.NoError(t, e.h.DeleteParty(ctx, "party3"))
	_, ok := e.store.Party("party3")
	assert.False(t, ok)
}

func TestHostPartyAndApprove(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "eco@fashion.com")

	var verr *actions.ValidationError
	assert.ErrorAs(t, e.h.HostParty(ctx, actions.PartyDraft{Title: "x"}), &verr)

	draft := actions.PartyDraft{
		Title:    "Spring swap",
		Date:     time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC),
		Location: "Mangwon",
	}
	require.NoError(t, e.h.HostParty(ctx, draft))
	assert.Equal(t, page.MyPage, currentPage(e))

	hosted := e.store.Snapshot().HostedParties("user1")
	var created model.Party
	for _, p := range hosted {
		if p.Title == "Spring swap" {
			created = p
		}
	}
	require.NotEmpty(t, created.ID)
	assert.Equal(t, model.PartyPendingApproval, created.Status)

	require.NoError(t, e.h.DecidePartyApproval(ctx, created.ID, model.PartyUpcoming))
	p, _ := e.store.Party(created.ID)
	assert.Equal(t, model.PartyUpcoming, p.Status)
}

func TestAddItemWithPhotoAndTags(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "namu@lazy.com")

	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	item, err := e.h.AddItem(ctx, actions.ItemDraft{
		Name:       "Linen shirt",
		Category:   model.CategoryTShirt,
		Size:       "M",
		Photo:      &buf,
		GoodbyeTag: &model.GoodbyeTag{MetWhen: "2021", WornCount: 12, FinalMessage: "Bye"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(item.ImageURL, "data:image/jpeg;base64,"))
	require.NotNil(t, item.GoodbyeTag)
	assert.Equal(t, 12, item.GoodbyeTag.WornCount)
	assert.Nil(t, item.HelloTag)
	assert.Equal(t, page.MyPage, currentPage(e))

	stored, ok := e.store.Item(item.ID)
	require.True(t, ok)
	assert.Equal(t, "Linen shirt", stored.Name)
}

func TestAddItemTagFailureStillRefreshes(t *testing.T) {
	ctx := context.Background()

	data := fakeapi.NewData()
	require.NoError(t, fakeapi.Seed(data))
	backend := fakeapi.New(data, fakeapi.TestSecret)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/hello") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"detail":"tag storage unavailable"}`)
			return
		}
		backend.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	client := apiclient.New(ts.URL)
	sess := session.New(client, &store.TokenStore{DB: db.NewTestDB(t)})
	st := state.New(client, sess)
	h := actions.New(client, sess, st, page.NewNav())
	require.NoError(t, sess.Login(ctx, "namu@lazy.com", fakeapi.SeedPassword))
	require.NoError(t, st.RefreshItems(ctx))
	before := len(st.ItemsOf("user2"))

	_, err := h.AddItem(ctx, actions.ItemDraft{
		Name:     "Wool scarf",
		Category: model.CategoryAccessory,
		HelloTag: &model.HelloTag{ReceivedFrom: "Haebbi", HelloMessage: "Hi"},
	})
	require.ErrorContains(t, err, "adding hello tag")

	items := st.ItemsOf("user2")
	require.Len(t, items, before+1)
	var names []string
	for _, it := range items {
		names = append(names, it.Name)
	}
	assert.Contains(t, names, "Wool scarf")
}

func TestAddItemValidation(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "namu@lazy.com")

	_, err := e.h.AddItem(ctx, actions.ItemDraft{Category: model.CategoryJeans})
	var verr *actions.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = e.h.AddItem(ctx, actions.ItemDraft{Name: "hat", Category: "HAT"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)

	_, err = e.h.AddItem(ctx, actions.ItemDraft{Name: "x", Category: model.CategoryJeans, Photo: strings.NewReader("not an image")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "photo", verr.Field)

	assert.Empty(t, e.srv.Requests())
}

func TestStoryLifecycle(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "style@seeker.com")

	require.NoError(t, e.h.SubmitStory(ctx, actions.StoryDraft{
		PartyID: "party1", Title: "My first swap", Content: "It was fun.", Tags: []string{" #Fun ", ""},
	}))
	var mine model.Story
	for _, s := range e.store.Snapshot().Stories {
		if s.Title == "My first swap" {
			mine = s
		}
	}
	require.NotEmpty(t, mine.ID)
	assert.Equal(t, []string{"#Fun"}, mine.Tags)

	require.NoError(t, e.h.ToggleLikeStory(ctx, mine.ID))
	liked, _ := e.store.Story(mine.ID)
	assert.True(t, liked.LikedByUser("user3"))

	require.NoError(t, e.h.AddComment(ctx, mine.ID, "first!"))
	assert.Len(t, e.store.Snapshot().CommentsOf(mine.ID), 1)

	e.nav.Select(page.StoryDetail, page.Selection{StoryID: mine.ID})
	require.NoError(t, e.h.DeleteStory(ctx, mine.ID))
	assert.Equal(t, page.Community, currentPage(e))
	_, ok := e.store.Story(mine.ID)
	assert.False(t, ok)
}

func TestLoginAndLogout(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "")

	err := e.h.Login(ctx, "eco@fashion.com", "wrong")
	assert.Equal(t, "Incorrect username or password", actions.Message(err))
	assert.Equal(t, session.Anonymous, e.sess.State())
	assert.Equal(t, page.Home, currentPage(e))

	require.NoError(t, e.h.Login(ctx, "eco@fashion.com", fakeapi.SeedPassword))
	assert.Equal(t, page.MyPage, currentPage(e))

	require.NoError(t, e.h.Logout(ctx))
	assert.Equal(t, page.Home, currentPage(e))
	assert.Equal(t, session.Anonymous, e.sess.State())
}

func TestExpiredSessionOnAction(t *testing.T) {
	ctx := context.Background()
	e := setup(t, "eco@fashion.com")
	before, _ := e.store.Item("item3")

	e.srv.Data.RemoveAccount("user1")
	err := e.h.ToggleListing(ctx, "item3")

	require.Error(t, err)
	assert.Equal(t, "Your session has expired. Please log in again.", actions.Message(err))
	assert.Equal(t, session.Anonymous, e.sess.State())
	after, _ := e.store.Item("item3")
	assert.Equal(t, before, after)
	assert.Equal(t, []string{"PATCH /items/item3"}, e.srv.Requests())
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{actions.ErrLoginRequired, "Please log in first."},
		{fmt.Errorf("wrapped: %w", actions.ErrInsufficientBalance), "Insufficient balance."},
		{&actions.ValidationError{Field: "name", Message: "Give the item a name."}, "Give the item a name."},
		{fmt.Errorf("x: %w", &apiclient.APIError{StatusCode: 400, Detail: "Invalid invitation code"}), "Invalid invitation code"},
		{&apiclient.APIError{StatusCode: http.StatusUnauthorized}, "Your session has expired. Please log in again."},
		{&apiclient.APIError{StatusCode: 502, StatusText: "Bad Gateway"}, "Request failed (502 Bad Gateway)."},
		{fmt.Errorf("GET /x: %w: %w", apiclient.ErrTransport, errors.New("dial tcp")), "Could not reach the server. Please try again."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, actions.Message(tt.err))
	}
}
