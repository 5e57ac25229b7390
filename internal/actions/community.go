package actions

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/otgil/otgil/internal/mapper"
	"github.com/otgil/otgil/internal/page"
)

// StoryDraft creates a story, or updates one when ID is set.
type StoryDraft struct {
	ID       string
	PartyID  string
	Title    string
	Excerpt  string
	Content  string
	ImageURL string
	Tags     []string
}

// ReportDraft is a newsletter report.
type ReportDraft struct {
	Title   string
	Date    string
	Excerpt string
}

// SubmitStory creates or updates a story.
func (h *Handlers) SubmitStory(ctx context.Context, d StoryDraft) error {
	token, _, err := h.require()
	if err != nil {
		return err
	}
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return invalid("title", "Give the story a title.")
	}
	if strings.TrimSpace(d.Content) == "" {
		return invalid("content", "Write something first.")
	}

	tags := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	req := mapper.StoryRequest{
		PartyID:  d.PartyID,
		Title:    d.Title,
		Excerpt:  strings.TrimSpace(d.Excerpt),
		Content:  d.Content,
		ImageURL: d.ImageURL,
		Tags:     tags,
	}

	method, path := http.MethodPost, "/community/stories"
	if d.ID != "" {
		method, path = http.MethodPatch, "/community/stories/"+escape(d.ID)
	}
	if err := h.send(ctx, method, path, token, req, nil); err != nil {
		return fmt.Errorf("saving story: %w", err)
	}

	refresh(ctx, "stories", h.store.RefreshStories)
	return nil
}

// DeleteStory removes a story. If it was open, the community page is shown.
func (h *Handlers) DeleteStory(ctx context.Context, storyID string) error {
	token, _, err := h.require()
	if err != nil {
		return err
	}
	if err := h.send(ctx, http.MethodDelete, "/community/stories/"+escape(storyID), token, nil, nil); err != nil {
		return fmt.Errorf("deleting story: %w", err)
	}

	refresh(ctx, "stories", h.store.RefreshStories)
	if id, sel := h.nav.Current(); id == page.StoryDetail && sel.StoryID == storyID {
		h.nav.Go(page.Community)
	}
	return nil
}

// ToggleLikeStory likes or unlikes a story.
func (h *Handlers) ToggleLikeStory(ctx context.Context, storyID string) error {
	token, _, err := h.require()
	if err != nil {
		return err
	}
	if err := h.send(ctx, http.MethodPost, "/community/stories/"+escape(storyID)+"/like", token, nil, nil); err != nil {
		return fmt.Errorf("liking story: %w", err)
	}

	refresh(ctx, "stories", h.store.RefreshStories)
	return nil
}

// AddComment comments on a story and reloads that story's comments.
func (h *Handlers) AddComment(ctx context.Context, storyID, text string) error {
	token, _, err := h.require()
	if err != nil {
		return err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return invalid("text", "Write a comment first.")
	}

	path := "/community/stories/" + escape(storyID) + "/comments"
	if err := h.send(ctx, http.MethodPost, path, token, mapper.CommentRequest{Text: text}, nil); err != nil {
		return fmt.Errorf("adding comment: %w", err)
	}

	refresh(ctx, "story", func(ctx context.Context) error { return h.store.RefreshStory(ctx, storyID) })
	return nil
}

// AddReport publishes a newsletter report.
func (h *Handlers) AddReport(ctx context.Context, d ReportDraft) error {
	token, _, err := h.requireAdmin()
	if err != nil {
		return err
	}
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Date) == "" {
		return invalid("title", "Title and date are required.")
	}

	req := mapper.ReportRequest{Title: strings.TrimSpace(d.Title), Date: strings.TrimSpace(d.Date), Excerpt: d.Excerpt}
	if err := h.send(ctx, http.MethodPost, "/community/reports", token, req, nil); err != nil {
		return fmt.Errorf("publishing report: %w", err)
	}

	refresh(ctx, "reports", h.store.RefreshReports)
	return nil
}
