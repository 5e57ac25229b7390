// Package fakeapi is an in-memory implementation of the exchange backend's
// REST contract, for tests and local development.
package fakeapi

import (
	"net/http"
	"slices"
	"sync"
)

// Server serves the backend API and records every request it receives.
type Server struct {
	Data      *Data
	JWTSecret string

	handler  http.Handler
	mu       sync.Mutex
	requests []string
}

// New creates a server over data.
func New(data *Data, jwtSecret string) *Server {
	s := &Server{Data: data, JWTSecret: jwtSecret}
	s.handler = NewRouter(data, jwtSecret)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.RequestURI())
	s.mu.Unlock()
	s.handler.ServeHTTP(w, r)
}

// Requests returns "METHOD /path?query" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.requests)
}

// ResetRequests forgets the recorded requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(data *Data, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	users := &UsersHandler{Data: data, JWTSecret: jwtSecret}
	items := &ItemsHandler{Data: data}
	parties := &PartiesHandler{Data: data}
	community := &CommunityHandler{Data: data}
	credits := &CreditsHandler{Data: data}
	catalog := &CatalogHandler{Data: data}
	admin := &AdminHandler{Data: data}

	authMW := AuthMiddleware(jwtSecret, data)
	authed := func(h http.HandlerFunc) http.Handler { return authMW(h) }
	adminOnly := func(h http.HandlerFunc) http.Handler { return authMW(RequireAdmin(h)) }

	// Users.
	mux.HandleFunc("GET /users/", users.List)
	mux.HandleFunc("POST /users/signup", users.SignUp)
	mux.HandleFunc("POST /users/login", users.Login)
	mux.HandleFunc("POST /users/logout", users.Logout)
	mux.Handle("GET /users/me", authed(users.Me))
	mux.Handle("POST /users/{id}/neighbors", authed(users.AddNeighbor))
	mux.Handle("DELETE /users/{id}/neighbors", authed(users.RemoveNeighbor))

	// Items.
	mux.HandleFunc("GET /items/", items.List)
	mux.Handle("GET /items/my-items", authed(items.Mine))
	mux.Handle("POST /items/", authed(items.Create))
	mux.Handle("PATCH /items/{id}", authed(items.Update))
	mux.Handle("POST /items/{id}/goodbye", authed(items.Goodbye))
	mux.Handle("POST /items/{id}/hello", authed(items.Hello))
	mux.Handle("PUT /items/{id}/submission_status", adminOnly(items.SetSubmissionStatus))

	// Parties.
	mux.HandleFunc("GET /parties/", parties.List)
	mux.Handle("POST /parties/", authed(parties.Create))
	mux.Handle("POST /parties/{id}/join", authed(parties.Join))
	mux.Handle("POST /parties/{id}/check-in", authed(parties.CheckIn))

	// Community.
	mux.HandleFunc("GET /community/stories", community.ListStories)
	mux.Handle("POST /community/stories", authed(community.CreateStory))
	mux.HandleFunc("GET /community/stories/{id}", community.GetStory)
	mux.Handle("PATCH /community/stories/{id}", authed(community.UpdateStory))
	mux.Handle("DELETE /community/stories/{id}", authed(community.DeleteStory))
	mux.Handle("POST /community/stories/{id}/like", authed(community.ToggleLike))
	mux.Handle("POST /community/stories/{id}/comments", authed(community.AddComment))
	mux.HandleFunc("GET /community/reports", community.ListReports)
	mux.Handle("POST /community/reports", adminOnly(community.CreateReport))

	// Credits and catalogs.
	mux.Handle("GET /credits/my-history", authed(credits.History))
	mux.Handle("GET /credits/my-balance", authed(credits.Balance))
	mux.Handle("POST /credits/earn", authed(credits.Earn))
	mux.HandleFunc("GET /rewards/", catalog.Rewards)
	mux.HandleFunc("GET /makers/", catalog.Makers)

	// Admin.
	mux.Handle("POST /admin/parties/{id}/status", adminOnly(admin.SetPartyStatus))
	mux.Handle("PATCH /admin/parties/{id}/participants/{uid}/status", adminOnly(admin.SetParticipantStatus))
	mux.Handle("DELETE /admin/parties/{id}", adminOnly(admin.DeleteParty))
	mux.Handle("GET /admin/items/pending", adminOnly(admin.PendingItems))

	return LoggingMiddleware(mux)
}
