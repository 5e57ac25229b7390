package fakeapi

import (
	"net/http"
	"slices"
	"time"

	"github.com/otgil/otgil/internal/mapper"
)

// CommunityHandler handles stories, comments and reports.
type CommunityHandler struct {
	Data *Data
}

func tagRecords(names []string) []mapper.TagRecord {
	out := make([]mapper.TagRecord, 0, len(names))
	for i, n := range names {
		out = append(out, mapper.TagRecord{ID: i + 1, Name: n})
	}
	return out
}

// ListStories handles GET /community/stories.
func (h *CommunityHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	out := make([]mapper.StoryRecord, 0, len(h.Data.stories))
	for _, s := range h.Data.stories {
		out = append(out, h.Data.storyRecord(s))
	}
	jsonResponse(w, http.StatusOK, out)
}

// CreateStory handles POST /community/stories.
func (h *CommunityHandler) CreateStory(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req mapper.StoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if req.Title == "" || req.PartyID == "" {
		jsonError(w, http.StatusUnprocessableEntity, "title and party_id are required")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	if h.Data.party(req.PartyID) == nil {
		jsonError(w, http.StatusNotFound, "Party not found")
		return
	}
	author := h.Data.accountByID(claims.UserID)
	s := &story{StoryRecord: mapper.StoryRecord{
		ID:       newID(),
		UserID:   author.ID,
		PartyID:  req.PartyID,
		Title:    req.Title,
		Author:   author.Nickname,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Tags:     tagRecords(req.Tags),
	}}
	h.Data.stories = append(h.Data.stories, s)
	jsonResponse(w, http.StatusCreated, h.Data.storyRecord(s))
}

// GetStory handles GET /community/stories/{id}, including comments.
func (h *CommunityHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	s := h.Data.story(r.PathValue("id"))
	if s == nil {
		jsonError(w, http.StatusNotFound, "Story not found")
		return
	}
	detail := mapper.StoryDetailRecord{StoryRecord: h.Data.storyRecord(s), Comments: []mapper.CommentRecord{}}
	for _, c := range h.Data.comments {
		if c.StoryID == s.ID {
			detail.Comments = append(detail.Comments, *c)
		}
	}
	jsonResponse(w, http.StatusOK, detail)
}

// UpdateStory handles PATCH /community/stories/{id}. Authors only.
func (h *CommunityHandler) UpdateStory(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req mapper.StoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	s := h.Data.story(r.PathValue("id"))
	if s == nil {
		jsonError(w, http.StatusNotFound, "Story not found")
		return
	}
	if s.UserID != claims.UserID {
		jsonError(w, http.StatusForbidden, "Not enough permissions")
		return
	}
	if req.Title != "" {
		s.Title = req.Title
	}
	if req.Excerpt != "" {
		s.Excerpt = req.Excerpt
	}
	if req.Content != "" {
		s.Content = req.Content
	}
	if req.ImageURL != "" {
		s.ImageURL = req.ImageURL
	}
	if req.Tags != nil {
		s.Tags = tagRecords(req.Tags)
	}
	jsonResponse(w, http.StatusOK, h.Data.storyRecord(s))
}

// DeleteStory handles DELETE /community/stories/{id}. Authors and admins.
func (h *CommunityHandler) DeleteStory(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	id := r.PathValue("id")
	s := h.Data.story(id)
	if s == nil {
		jsonError(w, http.StatusNotFound, "Story not found")
		return
	}
	if s.UserID != claims.UserID && !claims.IsAdmin {
		jsonError(w, http.StatusForbidden, "Not enough permissions")
		return
	}
	h.Data.stories = slices.DeleteFunc(h.Data.stories, func(x *story) bool { return x.ID == id })
	h.Data.comments = slices.DeleteFunc(h.Data.comments, func(c *mapper.CommentRecord) bool { return c.StoryID == id })
	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike handles POST /community/stories/{id}/like.
func (h *CommunityHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	s := h.Data.story(r.PathValue("id"))
	if s == nil {
		jsonError(w, http.StatusNotFound, "Story not found")
		return
	}
	if i := slices.Index(s.Likers, claims.UserID); i >= 0 {
		s.Likers = slices.Delete(s.Likers, i, i+1)
	} else {
		s.Likers = append(s.Likers, claims.UserID)
	}
	jsonResponse(w, http.StatusOK, h.Data.storyRecord(s))
}

// AddComment handles POST /community/stories/{id}/comments.
func (h *CommunityHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req mapper.CommentRequest
	if err := decodeJSON(r, &req); err != nil || req.Text == "" {
		jsonError(w, http.StatusUnprocessableEntity, "text required")
		return
	}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	s := h.Data.story(r.PathValue("id"))
	if s == nil {
		jsonError(w, http.StatusNotFound, "Story not found")
		return
	}
	author := h.Data.accountByID(claims.UserID)
	c := &mapper.CommentRecord{
		ID:             newID(),
		StoryID:        s.ID,
		UserID:         author.ID,
		AuthorNickname: author.Nickname,
		Text:           req.Text,
		Timestamp:      h.Data.now().UTC().Format(time.RFC3339),
	}
	h.Data.comments = append(h.Data.comments, c)
	jsonResponse(w, http.StatusOK, c)
}

// ListReports handles GET /community/reports.
func (h *CommunityHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()

	out := make([]mapper.ReportRecord, 0, len(h.Data.reports))
	for _, rep := range h.Data.reports {
		out = append(out, *rep)
	}
	jsonResponse(w, http.StatusOK, out)
}

// CreateReport handles POST /community/reports.
func (h *CommunityHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var req mapper.ReportRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	if req.Title == "" || mapper.ParseDate(req.Date).IsZero() {
		jsonError(w, http.StatusUnprocessableEntity, "title and a valid date are required")
		return
	}

	rep := &mapper.ReportRecord{ID: newID(), Title: req.Title, Date: req.Date, Excerpt: req.Excerpt}

	h.Data.mu.Lock()
	defer h.Data.mu.Unlock()
	h.Data.reports = append(h.Data.reports, rep)
	jsonResponse(w, http.StatusCreated, rep)
}
