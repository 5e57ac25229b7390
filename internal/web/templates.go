package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/otgil/otgil/internal/app"
	"github.com/otgil/otgil/internal/model"
	"github.com/otgil/otgil/internal/page"
	webembed "github.com/otgil/otgil/web"
)

// Templates holds parsed HTML templates, one per page.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"path": func(id page.ID, key string) string {
			return page.Path(id, page.WithSelection(id, key))
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
		"isNeighbor": func(u *model.User, id string) bool {
			return u != nil && u.HasNeighbor(id)
		},
		"liked": func(st model.Story, u *model.User) bool {
			return u != nil && st.LikedByUser(u.ID)
		},
		"participation": func(p model.Party, u *model.User) string {
			if u == nil {
				return ""
			}
			pp, ok := p.Participant(u.ID)
			if !ok {
				return ""
			}
			return string(pp.Status)
		},
		"signed": func(c model.Credit) int { return c.Signed() },
		"join":   strings.Join,
		"statusName": func(status string) string {
			switch status {
			case "PENDING_APPROVAL":
				return "Awaiting approval"
			case "UPCOMING":
				return "Upcoming"
			case "COMPLETED":
				return "Completed"
			case "REJECTED":
				return "Rejected"
			case "PENDING":
				return "Pending"
			case "ACCEPTED":
				return "Accepted"
			case "APPROVED":
				return "Approved"
			case "ATTENDED":
				return "Attended"
			default:
				return status
			}
		},
		"categoryName": func(c model.Category) string {
			switch c {
			case model.CategoryTShirt:
				return "T-shirt"
			case model.CategoryJeans:
				return "Jeans"
			case model.CategoryDress:
				return "Dress"
			case model.CategoryJacket:
				return "Jacket"
			case model.CategoryAccessory:
				return "Accessory"
			default:
				return string(c)
			}
		},
		// safeImage lets compressed data URLs through the URL sanitizer.
		"safeImage": func(src string) template.URL {
			if strings.HasPrefix(src, "data:image/") || strings.HasPrefix(src, "https://") || strings.HasPrefix(src, "http://") {
				return template.URL(src)
			}
			return ""
		},
	}
}

// templateName maps a page to its template file.
func templateName(id page.ID) string {
	return strings.ToLower(string(id)) + ".html"
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, id := range page.All {
		name := templateName(id)
		pageBytes, err := fs.ReadFile(tfs, name)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", name, err)
		}

		tmpl := template.New(name).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", name, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}

		ts.templates[name] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the data passed to every template.
type PageData struct {
	page.View
	Title   string
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	App       *app.App
	Templates *Templates
}
