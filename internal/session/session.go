// Package session owns the bearer token and the identity it resolves to.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/otgil/otgil/internal/apiclient"
	"github.com/otgil/otgil/internal/auth"
	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/model"
)

// State is the session lifecycle state.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

var (
	// ErrCredentialsRequired is returned by Login before any request is sent.
	ErrCredentialsRequired = errors.New("email and password are required")
	// ErrRegistrationIncomplete is returned by SignUp before any request is sent.
	ErrRegistrationIncomplete = errors.New("nickname, email and password are required")
	// ErrSessionExpired wraps the 401 that ended an authenticated session.
	ErrSessionExpired = errors.New("session expired")
)

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Registration is the sign-up form.
type Registration struct {
	Nickname    string
	Email       string
	PhoneNumber string
	Password    string
}

// Manager drives ANONYMOUS → AUTHENTICATING → AUTHENTICATED and back.
type Manager struct {
	client *apiclient.Client
	tokens TokenStore

	mu        sync.RWMutex
	state     State
	token     string
	user      *model.User
	onAuth    []func(context.Context, model.User)
	onSignOut []func(context.Context)
}

// New creates an anonymous session.
func New(client *apiclient.Client, tokens TokenStore) *Manager {
	return &Manager{client: client, tokens: tokens}
}

// OnAuthenticated registers fn to run every time an identity is established.
func (m *Manager) OnAuthenticated(fn func(context.Context, model.User)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onAuth = append(m.onAuth, fn)
}

// OnSignedOut registers fn to run after logout or session expiry.
func (m *Manager) OnSignedOut(fn func(context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSignOut = append(m.onSignOut, fn)
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Token returns the bearer token while authenticated.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != Authenticated {
		return "", false
	}
	return m.token, true
}

// User returns a copy of the current user while authenticated.
func (m *Manager) User() (model.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != Authenticated || m.user == nil {
		return model.User{}, false
	}
	return *m.user.Clone(), true
}

// Claims decodes the current token without verifying it.
func (m *Manager) Claims() (*auth.Claims, error) {
	token, ok := m.Token()
	if !ok {
		return nil, errors.New("not authenticated")
	}
	return auth.Inspect(token)
}

// Resume restores a persisted token. A token whose expiry has passed is
// dropped without asking the backend. Any failure clears the token and leaves
// the session anonymous; only a storage read error is returned.
func (m *Manager) Resume(ctx context.Context) error {
	token, err := m.tokens.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading token: %w", err)
	}
	if token == "" {
		return nil
	}

	if claims, err := auth.Inspect(token); err == nil && claims.Expired(time.Now()) {
		slog.Info("stored session expired", "expired_at", claims.ExpiresAt.Time)
		if cerr := m.tokens.Clear(ctx); cerr != nil {
			slog.Error("clearing stored token", "error", cerr)
		}
		return nil
	}

	if err := m.establish(ctx, token); err != nil {
		slog.Warn("stored session rejected", "error", err)
		if cerr := m.tokens.Clear(ctx); cerr != nil {
			slog.Error("clearing stored token", "error", cerr)
		}
	}
	return nil
}

// Login exchanges credentials for a token and resolves the user. A failed
// exchange leaves any existing session as it was; a successful one ends it
// before the new identity is resolved.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrCredentialsRequired
	}

	m.mu.Lock()
	prev := identity{state: m.state, token: m.token, user: m.user}
	m.state = Authenticating
	m.mu.Unlock()

	var tok mapper.TokenRecord
	form := url.Values{"username": {username}, "password": {password}}
	if err := m.client.PostForm(ctx, "/users/login", form, &tok); err != nil {
		m.restore(prev)
		slog.Warn("login failed", "user", username, "error", err)
		return err
	}
	if tok.AccessToken == "" {
		m.restore(prev)
		return errors.New("login response carried no access token")
	}

	if err := m.tokens.Save(ctx, tok.AccessToken); err != nil {
		m.restore(prev)
		return fmt.Errorf("persisting token: %w", err)
	}

	if prev.state == Authenticated {
		m.reset()
		m.signedOut(ctx)
	}

	if err := m.establish(ctx, tok.AccessToken); err != nil {
		if cerr := m.tokens.Clear(ctx); cerr != nil {
			slog.Error("clearing token", "error", cerr)
		}
		return err
	}

	slog.Info("user logged in", "user", username)
	return nil
}

// Logout clears the session synchronously, then tells the backend.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	token := m.token
	m.state, m.token, m.user = Anonymous, "", nil
	m.mu.Unlock()

	err := m.tokens.Clear(ctx)
	m.signedOut(ctx)

	if token != "" {
		if lerr := m.client.Do(ctx, http.MethodPost, "/users/logout", token, nil, nil); lerr != nil {
			slog.Warn("logout notification failed", "error", lerr)
		}
	}
	if err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	return nil
}

// Guard inspects the result of a call made with token. A 401 ends the
// session that token belongs to and is returned wrapped in
// ErrSessionExpired. A 401 drawn by a token the session no longer holds,
// and every other error, is returned unchanged.
func (m *Manager) Guard(ctx context.Context, token string, err error) error {
	if err == nil || !apiclient.IsUnauthorized(err) {
		return err
	}

	m.mu.Lock()
	if m.state != Authenticated || m.token != token {
		m.mu.Unlock()
		return err
	}
	m.state, m.token, m.user = Anonymous, "", nil
	m.mu.Unlock()

	slog.Warn("session expired")
	if cerr := m.tokens.Clear(ctx); cerr != nil {
		slog.Error("clearing expired token", "error", cerr)
	}
	m.signedOut(ctx)
	return fmt.Errorf("%w: %w", ErrSessionExpired, err)
}

// ReloadUser re-resolves the current user, e.g. after a neighbor change.
func (m *Manager) ReloadUser(ctx context.Context) error {
	token, ok := m.Token()
	if !ok {
		return nil
	}

	var rec mapper.UserRecord
	if err := m.client.Get(ctx, "/users/me", token, &rec); err != nil {
		return m.Guard(ctx, token, err)
	}
	user := mapper.User(rec)

	m.mu.Lock()
	if m.state == Authenticated && m.token == token {
		m.user = &user
	}
	m.mu.Unlock()
	return nil
}

// SignUp creates an account. It does not log in.
func (m *Manager) SignUp(ctx context.Context, r Registration) (model.User, error) {
	r.Nickname = strings.TrimSpace(r.Nickname)
	r.Email = strings.TrimSpace(r.Email)
	if r.Nickname == "" || r.Email == "" || r.Password == "" {
		return model.User{}, ErrRegistrationIncomplete
	}

	req := mapper.SignUpRequest{
		Nickname: r.Nickname,
		Email:    r.Email,
		Password: r.Password,
	}
	if phone := strings.TrimSpace(r.PhoneNumber); phone != "" {
		req.PhoneNumber = &phone
	}

	var rec mapper.UserRecord
	if err := m.client.Do(ctx, http.MethodPost, "/users/signup", "", req, &rec); err != nil {
		return model.User{}, err
	}
	slog.Info("account created", "user", r.Email)
	return mapper.User(rec), nil
}

// establish resolves /users/me with token and, on success, authenticates.
func (m *Manager) establish(ctx context.Context, token string) error {
	m.setState(Authenticating)

	var rec mapper.UserRecord
	if err := m.client.Get(ctx, "/users/me", token, &rec); err != nil {
		m.reset()
		return fmt.Errorf("resolving current user: %w", err)
	}
	user := mapper.User(rec)

	m.mu.Lock()
	m.state, m.token, m.user = Authenticated, token, &user
	hooks := append([]func(context.Context, model.User){}, m.onAuth...)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn(ctx, user)
	}
	return nil
}

// identity is the part of the session a failed login puts back.
type identity struct {
	state State
	token string
	user  *model.User
}

func (m *Manager) restore(id identity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state, m.token, m.user = id.state, id.token, id.user
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
}

func (m *Manager) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state, m.token, m.user = Anonymous, "", nil
}

func (m *Manager) signedOut(ctx context.Context) {
	m.mu.RLock()
	hooks := append([]func(context.Context){}, m.onSignOut...)
	m.mu.RUnlock()
	for _, fn := range hooks {
		fn(ctx)
	}
}
