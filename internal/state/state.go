// Package state is the client's in-memory copy of server data. Every
// collection is replaced wholesale when its refresh succeeds and left alone
// when it fails. Mutations never patch the store; they re-run a refresh.
//
// Between a mutation's success and the end of its refresh the store is
// stale, and when two refreshes of one collection overlap the response that
// resolves last wins. Both windows are accepted.
package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/otgil/otgil/internal/apiclient"
	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/metrics"
	"github.com/otgil/otgil/internal/model"
)

// Auth supplies the bearer token and learns about rejected tokens.
type Auth interface {
	Token() (string, bool)
	Guard(ctx context.Context, token string, err error) error
}

// PartyStatuses are the status filters fetched by RefreshParties, in merge
// order.
var PartyStatuses = []model.PartyStatus{
	model.PartyUpcoming,
	model.PartyCompleted,
	model.PartyPendingApproval,
}

// Store holds the collections. Collections are never modified in place, so
// snapshots can share their backing arrays.
type Store struct {
	client *apiclient.Client
	auth   Auth

	mu   sync.RWMutex
	snap Snapshot
}

// New creates an empty store.
func New(client *apiclient.Client, auth Auth) *Store {
	return &Store{client: client, auth: auth}
}

// Snapshot returns the current collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.snap)
}

func mapAll[R, M any](rs []R, f func(R) M) []M {
	out := make([]M, 0, len(rs))
	for _, r := range rs {
		out = append(out, f(r))
	}
	return out
}

// private fetches path with the session token. ok is false when there is no
// session. A rejected token is reported to Auth.
func (s *Store) private(ctx context.Context, path string, out any) (ok bool, err error) {
	token, ok := s.auth.Token()
	if !ok {
		return false, nil
	}
	if err := s.client.Get(ctx, path, token, out); err != nil {
		return true, s.auth.Guard(ctx, token, err)
	}
	return true, nil
}

// RefreshUsers replaces the member directory.
func (s *Store) RefreshUsers(ctx context.Context) (err error) {
	defer func() { metrics.ObserveRefresh("users", err) }()

	var recs []mapper.UserRecord
	if err := s.client.Get(ctx, "/users/", "", &recs); err != nil {
		return fmt.Errorf("fetching users: %w", err)
	}
	users := mapAll(recs, mapper.User)
	s.update(func(sn *Snapshot) { sn.Users = users })
	return nil
}

// UpsertUser inserts u into the directory, replacing any entry with the
// same ID.
func (s *Store) UpsertUser(u model.User) {
	s.update(func(sn *Snapshot) {
		users := slices.Clone(sn.Users)
		if i := slices.IndexFunc(users, func(x model.User) bool { return x.ID == u.ID }); i >= 0 {
			users[i] = u
		} else {
			users = append(users, u)
		}
		sn.Users = users
	})
}

// RefreshItems fetches the public catalog and, with a session, the caller's
// own items, and stores their merge. If the private fetch is rejected as
// unauthorized the public catalog is stored alone.
func (s *Store) RefreshItems(ctx context.Context) (err error) {
	defer func() { metrics.ObserveRefresh("items", err) }()

	var public []mapper.ItemRecord
	if err := s.client.Get(ctx, "/items/", "", &public); err != nil {
		return fmt.Errorf("fetching public items: %w", err)
	}

	var private []mapper.ItemRecord
	if _, err := s.private(ctx, "/items/my-items", &private); err != nil {
		if !apiclient.IsUnauthorized(err) {
			return fmt.Errorf("fetching my items: %w", err)
		}
		slog.Warn("my items rejected, storing public catalog only")
		private = nil
	}

	items := MergeItems(mapper.Items(public), mapper.Items(private))
	s.update(func(sn *Snapshot) { sn.Items = items })
	return nil
}

// RefreshParties fetches every status filter concurrently and stores the
// deduplicated, date-sorted merge. A filter the server rejects contributes
// nothing; a transport failure aborts the refresh.
func (s *Store) RefreshParties(ctx context.Context) (err error) {
	defer func() { metrics.ObserveRefresh("parties", err) }()

	batches := make([][]model.Party, len(PartyStatuses))
	g, gctx := errgroup.WithContext(ctx)
	for i, status := range PartyStatuses {
		g.Go(func() error {
			var recs []mapper.PartyRecord
			path := apiclient.WithQuery("/parties/", url.Values{"status_filter": {string(status)}})
			if err := s.client.Get(gctx, path, "", &recs); err != nil {
				if _, ok := apiclient.AsAPIError(err); ok {
					slog.Warn("party filter rejected", "status", status, "error", err)
					return nil
				}
				return fmt.Errorf("fetching %s parties: %w", status, err)
			}
			batches[i] = mapAll(recs, mapper.Party)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	parties := MergeParties(batches...)
	s.update(func(sn *Snapshot) { sn.Parties = parties })
	return nil
}

// RefreshStories replaces the story list.
func (s *Store) RefreshStories(ctx context.Context) (err error) {
	defer func() { metrics.ObserveRefresh("stories", err) }()

	var recs []mapper.StoryRecord
	if err := s.client.Get(ctx, "/community/stories", "", &recs); err != nil {
		return fmt.Errorf("fetching stories: %w", err)
	}
	stories := mapAll(recs, mapper.Story)
	s.update(func(sn *Snapshot) { sn.Stories = stories })
	return nil
}

// RefreshStory fetches one story with its comments. Only that story's
// comments are replaced; comments of other stories are kept.
func (s *Store) RefreshStory(ctx context.Context, id string) (err error) {
	defer func() { metrics.ObserveRefresh("story", err) }()

	var rec mapper.StoryDetailRecord
	if err := s.client.Get(ctx, "/community/stories/"+url.PathEscape(id), "", &rec); err != nil {
		return fmt.Errorf("fetching story %s: %w", id, err)
	}
	story := mapper.Story(rec.StoryRecord)
	fetched := mapAll(rec.Comments, mapper.Comment)

	s.update(func(sn *Snapshot) {
		comments := make([]model.Comment, 0, len(sn.Comments)+len(fetched))
		for _, c := range sn.Comments {
			if c.StoryID != id {
				comments = append(comments, c)
			}
		}
		sn.Comments = append(comments, fetched...)

		stories := slices.Clone(sn.Stories)
		if i := slices.IndexFunc(stories, func(st model.Story) bool { return st.ID == id }); i >= 0 {
			stories[i] = story
		} else {
			stories = append(stories, story)
		}
		sn.Stories = stories
	})
	return nil
}

// RefreshReports replaces the newsletter reports.
func (s *Store) RefreshReports(ctx context.Context) (err error) {
	defer func() { metrics.ObserveRefresh("reports", err) }()

	var recs []mapper.ReportRecord
	if err := s.client.Get(ctx, "/community/reports", "", &recs); err != nil {
		return fmt.Errorf("fetching reports: %w", err)
	}
	reports := mapAll(recs, mapper.Report)
	s.update(func(sn *Snapshot) { sn.Reports = reports })
	return nil
}

// RefreshCredits replaces the caller's credit history. Without a session it
// does nothing.
func (s *Store) RefreshCredits(ctx context.Context) (err error) {
	defer func() { metrics.ObserveRefresh("credits", err) }()

	var recs []mapper.CreditRecord
	ok, err := s.private(ctx, "/credits/my-history", &recs)
	if err != nil {
		return fmt.Errorf("fetching credits: %w", err)
	}
	if !ok {
		return nil
	}
	credits := mapAll(recs, mapper.Credit)
	s.update(func(sn *Snapshot) { sn.Credits = credits })
	return nil
}

// RefreshRewards replaces the reward catalog.
func (s *Store) RefreshRewards(ctx context.Context) (err error) {
	defer func() { metrics.ObserveRefresh("rewards", err) }()

	var recs []mapper.RewardRecord
	if err := s.client.Get(ctx, "/rewards/", "", &recs); err != nil {
		return fmt.Errorf("fetching rewards: %w", err)
	}
	rewards := mapAll(recs, mapper.Reward)
	s.update(func(sn *Snapshot) { sn.Rewards = rewards })
	return nil
}

// RefreshMakers replaces the makers and their products together.
func (s *Store) RefreshMakers(ctx context.Context) (err error) {
	defer func() { metrics.ObserveRefresh("makers", err) }()

	var recs []mapper.MakerRecord
	if err := s.client.Get(ctx, "/makers/", "", &recs); err != nil {
		return fmt.Errorf("fetching makers: %w", err)
	}
	makers := make([]model.Maker, 0, len(recs))
	var products []model.MakerProduct
	for _, r := range recs {
		m, ps := mapper.Maker(r)
		makers = append(makers, m)
		products = append(products, ps...)
	}
	s.update(func(sn *Snapshot) { sn.Makers, sn.Products = makers, products })
	return nil
}

// RefreshPending replaces the admin queue of items awaiting a party
// decision. Without a session it does nothing.
func (s *Store) RefreshPending(ctx context.Context) (err error) {
	defer func() { metrics.ObserveRefresh("pending", err) }()

	var recs []mapper.ItemRecord
	ok, err := s.private(ctx, "/admin/items/pending", &recs)
	if err != nil {
		return fmt.Errorf("fetching pending items: %w", err)
	}
	if !ok {
		return nil
	}
	pending := mapper.Items(recs)
	s.update(func(sn *Snapshot) { sn.Pending = pending })
	return nil
}

// RefreshPublic refreshes every collection readable without a session,
// concurrently. Failures are logged and joined; none stops the others.
func (s *Store) RefreshPublic(ctx context.Context) error {
	refreshers := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"users", s.RefreshUsers},
		{"items", s.RefreshItems},
		{"parties", s.RefreshParties},
		{"stories", s.RefreshStories},
		{"reports", s.RefreshReports},
		{"rewards", s.RefreshRewards},
		{"makers", s.RefreshMakers},
	}

	errs := make([]error, len(refreshers))
	var g errgroup.Group
	for i, r := range refreshers {
		g.Go(func() error {
			if err := r.fn(ctx); err != nil {
				slog.Error("refresh failed", "collection", r.name, "error", err)
				errs[i] = err
			}
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}

// ClearPrivate drops the collections that belong to the signed-in user.
func (s *Store) ClearPrivate() {
	s.update(func(sn *Snapshot) {
		sn.Credits = nil
		sn.Pending = nil
	})
}

func (s *Store) User(id string) (model.User, bool)         { return s.Snapshot().User(id) }
func (s *Store) Item(id string) (model.ClothingItem, bool) { return s.Snapshot().Item(id) }
func (s *Store) Party(id string) (model.Party, bool)       { return s.Snapshot().Party(id) }
func (s *Store) Story(id string) (model.Story, bool)       { return s.Snapshot().Story(id) }
func (s *Store) Reward(id string) (model.Reward, bool)     { return s.Snapshot().Reward(id) }
func (s *Store) MakerProduct(id string) (model.MakerProduct, bool) {
	return s.Snapshot().MakerProduct(id)
}

func (s *Store) ImpactStats(userID string) model.ImpactStats {
	return s.Snapshot().ImpactStats(userID)
}

func (s *Store) CreditBalance(userID string) int {
	return s.Snapshot().CreditBalance(userID)
}

func (s *Store) UserCredits(userID string) []model.Credit {
	return s.Snapshot().UserCredits(userID)
}

func (s *Store) AcceptedUpcomingParties(userID string) []model.Party {
	return s.Snapshot().AcceptedUpcomingParties(userID)
}

func (s *Store) ItemsOf(userID string) []model.ClothingItem {
	return s.Snapshot().ItemsOf(userID)
}

func (s *Store) ListedItemsOf(userID string) []model.ClothingItem {
	return s.Snapshot().ListedItemsOf(userID)
}
