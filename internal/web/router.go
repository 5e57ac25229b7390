package web

import (
	"net/http"

	"github.com/otgil/otgil/internal/app"
	"github.com/otgil/otgil/internal/metrics"
	"github.com/otgil/otgil/internal/page"
	webembed "github.com/otgil/otgil/web"
)

// NewRouter creates the front-end router: one GET route per page, one POST
// route per action, static assets and /metrics.
func NewRouter(a *app.App) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		App:       a,
		Templates: templates,
	}

	mux := http.NewServeMux()

	// Static assets and metrics.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.Handle("GET /metrics", metrics.Handler())

	// Pages.
	for _, id := range page.All {
		pattern := page.Pattern(id)
		if pattern == "/" {
			pattern = "/{$}"
		}
		mux.HandleFunc("GET "+pattern, s.Page(id))
	}

	// Session.
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.LogoutSubmit)
	mux.HandleFunc("POST /signup", s.SignUpSubmit)
	mux.HandleFunc("POST /refresh", s.RefreshSubmit)
	mux.HandleFunc("POST /neighbors/{id}/toggle", s.NeighborToggleSubmit)

	// Items.
	mux.HandleFunc("POST /items", s.ItemCreateSubmit)
	mux.HandleFunc("POST /items/{id}/listing", s.ItemListingSubmit)
	mux.HandleFunc("POST /items/{id}/submission", s.ItemSubmissionSubmit)
	mux.HandleFunc("POST /items/{id}/submission/cancel", s.ItemSubmissionCancel)
	mux.HandleFunc("POST /admin/items/{id}/decision", s.ItemDecisionSubmit)

	// Credits.
	mux.HandleFunc("POST /rewards/{id}/redeem", s.RewardRedeemSubmit)
	mux.HandleFunc("POST /makers/products/{id}/purchase", s.ProductPurchaseSubmit)
	mux.HandleFunc("POST /credits/offset", s.OffsetSubmit)

	// Parties.
	mux.HandleFunc("POST /parties", s.PartyHostSubmit)
	mux.HandleFunc("POST /parties/{id}/join", s.PartyJoinSubmit)
	mux.HandleFunc("POST /parties/{id}/participants/{uid}/check-in", s.CheckInSubmit)
	mux.HandleFunc("POST /admin/parties/{id}/status", s.PartyApprovalSubmit)
	mux.HandleFunc("POST /admin/parties/{id}/participants/{uid}", s.ParticipantDecisionSubmit)
	mux.HandleFunc("POST /admin/parties/{id}/delete", s.PartyDeleteSubmit)

	// Community.
	mux.HandleFunc("POST /community/stories", s.StorySubmit)
	mux.HandleFunc("POST /community/stories/{id}/delete", s.StoryDeleteSubmit)
	mux.HandleFunc("POST /community/stories/{id}/like", s.StoryLikeSubmit)
	mux.HandleFunc("POST /community/stories/{id}/comments", s.CommentSubmit)
	mux.HandleFunc("POST /community/reports", s.ReportSubmit)

	var handler http.Handler = mux
	handler = http.NewCrossOriginProtection().Handler(handler)
	handler = metrics.InstrumentHandler(handler)
	return handler, nil
}
