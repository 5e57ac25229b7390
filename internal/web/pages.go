package web

import (
	"log/slog"
	"net/http"

	"github.com/otgil/otgil/internal/actions"
	"github.com/otgil/otgil/internal/page"
)

var titles = map[page.ID]string{
	page.Home:               "Home",
	page.Upload:             "Add an item",
	page.Dashboard:          "Impact",
	page.Browse:             "Browse",
	page.NeighborsCloset:    "Neighbors' closet",
	page.NeighborProfile:    "Neighbor",
	page.MyPage:             "My page",
	page.Login:              "Log in",
	page.SignUp:             "Sign up",
	page.StoryDetail:        "Story",
	page.Community:          "Community",
	page.Rewards:            "Rewards",
	page.Admin:              "Admin",
	page.Party:              "21% Party",
	page.PartyHosting:       "Host a party",
	page.PartyHostDashboard: "Party dashboard",
	page.MakersHub:          "Makers hub",
}

// Page returns the GET handler of page id. When the page resolves to a
// different one (login required, missing selection) the browser is
// redirected there.
func (s *Server) Page(id page.ID) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sel := page.WithSelection(id, r.PathValue("id"))
		v := s.App.Enter(r.Context(), id, sel)
		if v.Page != id {
			http.Redirect(w, r, page.Path(v.Page, v.Selection), http.StatusSeeOther)
			return
		}

		success, errMsg := popFlash(w, r)
		s.Templates.Render(w, templateName(v.Page), &PageData{
			View:    v,
			Title:   titles[v.Page],
			Error:   errMsg,
			Success: success,
		})
	}
}

// done finishes a form submission: the outcome becomes a flash message and
// the browser goes to whatever page the navigator is on now.
func (s *Server) done(w http.ResponseWriter, r *http.Request, err error, success string) {
	if err != nil {
		slog.Warn("action failed", "path", r.URL.Path, "error", err)
		setFlash(w, flashErrorCookie, actions.Message(err))
	} else if success != "" {
		setFlash(w, flashSuccessCookie, success)
	}
	id, sel := s.App.Nav.Current()
	http.Redirect(w, r, page.Path(id, sel), http.StatusSeeOther)
}

// RefreshSubmit handles POST /refresh.
func (s *Server) RefreshSubmit(w http.ResponseWriter, r *http.Request) {
	err := s.App.Store.RefreshPublic(r.Context())
	if err == nil {
		if _, ok := s.App.Session.User(); ok {
			err = s.App.Store.RefreshCredits(r.Context())
		}
	}
	s.done(w, r, err, "Refreshed.")
}
