// Package actions implements the user's mutations. Each one checks the
// session locally, sends one authorized request and then re-runs the
// refresh of the collection it touched instead of patching local state.
package actions

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/otgil/otgil/internal/apiclient"
	"github.com/otgil/otgil/internal/model"
	"github.com/otgil/otgil/internal/page"
	"github.com/otgil/otgil/internal/session"
	"github.com/otgil/otgil/internal/state"
)

// Session is the part of the session manager the actions use.
type Session interface {
	Token() (string, bool)
	User() (model.User, bool)
	Guard(ctx context.Context, token string, err error) error
	ReloadUser(ctx context.Context) error
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	SignUp(ctx context.Context, r session.Registration) (model.User, error)
}

// Navigator moves the client between pages.
type Navigator interface {
	Go(id page.ID)
	Current() (page.ID, page.Selection)
}

// Handlers holds the dependencies shared by every action.
type Handlers struct {
	client  *apiclient.Client
	session Session
	store   *state.Store
	nav     Navigator
}

// New creates the action handlers.
func New(client *apiclient.Client, sess Session, store *state.Store, nav Navigator) *Handlers {
	return &Handlers{client: client, session: sess, store: store, nav: nav}
}

// require returns the session's token and user, or sends the caller to the
// login page.
func (h *Handlers) require() (string, model.User, error) {
	token, ok := h.session.Token()
	user, uok := h.session.User()
	if !ok || !uok {
		h.nav.Go(page.Login)
		return "", model.User{}, ErrLoginRequired
	}
	return token, user, nil
}

func (h *Handlers) requireAdmin() (string, model.User, error) {
	token, user, err := h.require()
	if err != nil {
		return "", model.User{}, err
	}
	if !user.IsAdmin {
		return "", model.User{}, ErrAdminRequired
	}
	return token, user, nil
}

// send issues an authorized request. A 401 expires the session.
func (h *Handlers) send(ctx context.Context, method, path, token string, body, out any) error {
	if err := h.client.Do(ctx, method, path, token, body, out); err != nil {
		return h.session.Guard(ctx, token, err)
	}
	return nil
}

// refresh re-runs fn after a successful mutation. Its failure is logged; the
// mutation itself already happened.
func refresh(ctx context.Context, name string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		slog.Warn("refresh after action failed", "collection", name, "error", err)
	}
}

func escape(id string) string {
	return url.PathEscape(id)
}

// Login signs in and opens My Page.
func (h *Handlers) Login(ctx context.Context, username, password string) error {
	if err := h.session.Login(ctx, username, password); err != nil {
		return err
	}
	h.nav.Go(page.MyPage)
	return nil
}

// Logout signs out and returns to Home. Private collections are cleared by
// the session's sign-out hook.
func (h *Handlers) Logout(ctx context.Context) error {
	err := h.session.Logout(ctx)
	h.nav.Go(page.Home)
	return err
}

// SignUp creates an account and opens the login page.
func (h *Handlers) SignUp(ctx context.Context, r session.Registration) (model.User, error) {
	u, err := h.session.SignUp(ctx, r)
	if err != nil {
		return model.User{}, err
	}
	h.nav.Go(page.Login)
	return u, nil
}

// ToggleNeighbor adds or removes neighborID from the user's neighbors.
func (h *Handlers) ToggleNeighbor(ctx context.Context, neighborID string) error {
	token, user, err := h.require()
	if err != nil {
		return err
	}

	method := http.MethodPost
	if user.HasNeighbor(neighborID) {
		method = http.MethodDelete
	}
	if err := h.send(ctx, method, "/users/"+escape(neighborID)+"/neighbors", token, nil, nil); err != nil {
		return fmt.Errorf("updating neighbors: %w", err)
	}

	refresh(ctx, "user", h.session.ReloadUser)
	if u, ok := h.session.User(); ok {
		h.store.UpsertUser(u)
	}
	return nil
}
