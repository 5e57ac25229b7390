// Package app wires the client together: token persistence, API client,
// session, domain state, navigator and action handlers.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/otgil/otgil/internal/actions"
	"github.com/otgil/otgil/internal/apiclient"
	"github.com/otgil/otgil/internal/config"
	"github.com/otgil/otgil/internal/db"
	"github.com/otgil/otgil/internal/model"
	"github.com/otgil/otgil/internal/page"
	"github.com/otgil/otgil/internal/session"
	"github.com/otgil/otgil/internal/state"
	"github.com/otgil/otgil/internal/store"
)

// App owns every long-lived client component.
type App struct {
	DB      *sql.DB
	Client  *apiclient.Client
	Session *session.Manager
	Store   *state.Store
	Nav     *page.Nav
	Actions *actions.Handlers

	ownsDB bool
}

// Open opens the configured database and builds an App over it.
func Open(cfg config.Config) (*App, error) {
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("preparing database: %w", err)
	}
	slog.Info("database ready", "path", cfg.DBPath)

	a := New(cfg, database)
	a.ownsDB = true
	return a, nil
}

// New builds an App over an already migrated database.
func New(cfg config.Config, database *sql.DB) *App {
	client := apiclient.New(cfg.APIBaseURL, apiclient.WithTimeout(cfg.HTTPTimeout))
	sess := session.New(client, &store.TokenStore{DB: database})
	st := state.New(client, sess)
	nav := page.NewNav()

	a := &App{
		DB:      database,
		Client:  client,
		Session: sess,
		Store:   st,
		Nav:     nav,
		Actions: actions.New(client, sess, st, nav),
	}
	sess.OnAuthenticated(a.authenticated)
	sess.OnSignedOut(a.signedOut)
	return a
}

// authenticated loads what only a signed-in user can see.
func (a *App) authenticated(ctx context.Context, u model.User) {
	a.Store.UpsertUser(u)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Store.RefreshCredits(ctx) })
	g.Go(func() error { return a.Store.RefreshItems(ctx) })
	if u.IsAdmin {
		g.Go(func() error { return a.Store.RefreshPending(ctx) })
	}
	if err := g.Wait(); err != nil {
		slog.Warn("loading private collections", "user", u.ID, "error", err)
	}
}

// signedOut drops private collections and reloads items without the overlay.
func (a *App) signedOut(ctx context.Context) {
	a.Store.ClearPrivate()
	if err := a.Store.RefreshItems(ctx); err != nil {
		slog.Warn("reloading public items", "error", err)
	}
}

// Start resumes the persisted session and loads every public collection.
// Both run concurrently; neither failure stops the other.
func (a *App) Start(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		if err := a.Session.Resume(ctx); err != nil {
			slog.Warn("resuming session", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := a.Store.RefreshPublic(ctx); err != nil {
			slog.Warn("initial refresh incomplete", "error", err)
		}
		return nil
	})
	g.Wait()

	// The public item refresh may have finished after the session's
	// overlay; reload once more so the user's unlisted items are present.
	if u, ok := a.Session.User(); ok {
		slog.Info("session resumed", "user", u.ID, "nickname", u.Nickname)
		if err := a.Store.RefreshItems(ctx); err != nil {
			return fmt.Errorf("refreshing items: %w", err)
		}
	}
	return nil
}

// Enter loads the data a detail page needs beyond the shared collections,
// then resolves it and moves the navigator to wherever it resolved.
func (a *App) Enter(ctx context.Context, id page.ID, sel page.Selection) page.View {
	if id == page.StoryDetail && sel.StoryID != "" {
		if err := a.Store.RefreshStory(ctx, sel.StoryID); err != nil {
			slog.Warn("loading story", "story", sel.StoryID, "error", err)
		}
	}
	v := a.Resolve(id, sel)
	a.Nav.Select(v.Page, v.Selection)
	return v
}

// Resolve resolves id with sel against the current state.
func (a *App) Resolve(id page.ID, sel page.Selection) page.View {
	in := page.Input{Data: a.Store.Snapshot()}
	if u, ok := a.Session.User(); ok {
		in.User = &u
	}
	return page.Resolve(id, sel, in)
}

// Close releases the database if Open created it.
func (a *App) Close() error {
	if !a.ownsDB {
		return nil
	}
	return a.DB.Close()
}
