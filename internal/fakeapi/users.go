package fakeapi

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/otgil/otgil/internal/auth"
	"github.com/otgil/otgil/internal/mapper"
)

// passwordCost is deliberately low; this backend only serves development data.
const passwordCost = bcrypt.MinCost

// UsersHandler handles account, login and neighbor endpoints.
type UsersHandler struct {
	Data      *Data
	JWTSecret string
}

// List handles GET /users/.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	out := make([]mapper.UserRecord, 0, len(h.Data.accounts))
	for _, a := range h.Data.accounts {
		out = append(out, h.Data.userRecord(a, false))
	}
	jsonResponse(w, http.StatusOK, out)
}

// SignUp handles POST /users/signup.
func (h *UsersHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req mapper.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if req.Nickname == "" || req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusUnprocessableEntity, "nickname, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	if h.Data.accountByEmail(req.Email) != nil {
		jsonError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	a := &account{
		ID:           newID(),
		Nickname:     req.Nickname,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		IsAdmin:      req.IsAdmin,
		PasswordHash: string(hash),
	}
	h.Data.accounts = append(h.Data.accounts, a)

	slog.Info("account created", "email", a.Email)
	jsonResponse(w, http.StatusCreated, h.Data.userRecord(a, false))
}

// Login handles POST /users/login with a form-encoded body.
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid form body")
		return
	}
	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		jsonError(w, http.StatusUnprocessableEntity, "username and password required")
		return
	}

	h.Data.mu.Lock()
	a := h.Data.accountByEmail(username)
	var (
		id, email, hash string
		isAdmin         bool
	)
	if a != nil {
		id, email, hash, isAdmin = a.ID, a.Email, a.PasswordHash, a.IsAdmin
	}
	h.Data.mu.Unlock()

	if a == nil || bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		slog.Warn("login failed", "username", username, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, id, email, isAdmin)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("user logged in", "user", email)
	jsonResponse(w, http.StatusOK, mapper.TokenRecord{AccessToken: token, TokenType: "bearer"})
}

// Logout handles POST /users/logout. Tokens are stateless; the client drops
// its copy.
func (h *UsersHandler) Logout(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"msg": "Successfully logged out"})
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	a := h.Data.accountByID(claims.UserID)
	if a == nil {
		jsonError(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	jsonResponse(w, http.StatusOK, h.Data.userRecord(a, true))
}

// AddNeighbor handles POST /users/{id}/neighbors.
func (h *UsersHandler) AddNeighbor(w http.ResponseWriter, r *http.Request) {
	h.changeNeighbor(w, r, true)
}

// RemoveNeighbor handles DELETE /users/{id}/neighbors.
func (h *UsersHandler) RemoveNeighbor(w http.ResponseWriter, r *http.Request) {
	h.changeNeighbor(w, r, false)
}

func (h *UsersHandler) changeNeighbor(w http.ResponseWriter, r *http.Request, add bool) {
	claims := GetClaims(r.Context())
	targetID := r.PathValue("id")
	if targetID == claims.UserID {
		jsonError(w, http.StatusBadRequest, "You cannot add yourself as a neighbor")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	me := h.Data.accountByID(claims.UserID)
	if h.Data.accountByID(targetID) == nil {
		jsonError(w, http.StatusNotFound, "User not found")
		return
	}

	idx := slices.Index(me.Neighbors, targetID)
	switch {
	case add && idx < 0:
		me.Neighbors = append(me.Neighbors, targetID)
	case !add && idx >= 0:
		me.Neighbors = slices.Delete(me.Neighbors, idx, idx+1)
	case !add:
		jsonError(w, http.StatusNotFound, "Neighbor not found")
		return
	}

	jsonResponse(w, http.StatusOK, h.Data.userRecord(me, false))
}
