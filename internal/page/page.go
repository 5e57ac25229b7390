// Package page decides what each page of the client shows. Resolve is pure;
// Nav holds the current page for the running application.
package page

import (
	"net/url"
	"strings"
	"sync"
)

// ID names a page.
type ID string

const (
	Home               ID = "HOME"
	Upload             ID = "UPLOAD"
	Dashboard          ID = "DASHBOARD"
	Browse             ID = "BROWSE"
	NeighborsCloset    ID = "NEIGHBORS_CLOSET"
	NeighborProfile    ID = "NEIGHBOR_PROFILE"
	MyPage             ID = "MY_PAGE"
	Login              ID = "LOGIN"
	SignUp             ID = "SIGNUP"
	StoryDetail        ID = "STORY_DETAIL"
	Community          ID = "COMMUNITY"
	Rewards            ID = "REWARDS"
	Admin              ID = "ADMIN"
	Party              ID = "TWENTY_ONE_PERCENT_PARTY"
	PartyHosting       ID = "PARTY_HOSTING"
	PartyHostDashboard ID = "PARTY_HOST_DASHBOARD"
	MakersHub          ID = "MAKERS_HUB"
)

// All lists every page.
var All = []ID{
	Home, Upload, Dashboard, Browse, NeighborsCloset, NeighborProfile, MyPage,
	Login, SignUp, StoryDetail, Community, Rewards, Admin, Party, PartyHosting,
	PartyHostDashboard, MakersHub,
}

// Selection carries the record a detail page is about.
type Selection struct {
	StoryID    string
	PartyID    string
	NeighborID string
}

// patterns maps each page to its front-end route. "{id}" stands for the
// page's selection.
var patterns = map[ID]string{
	Home:               "/",
	Upload:             "/upload",
	Dashboard:          "/dashboard",
	Browse:             "/browse",
	NeighborsCloset:    "/neighbors",
	NeighborProfile:    "/neighbors/{id}",
	MyPage:             "/me",
	Login:              "/login",
	SignUp:             "/signup",
	StoryDetail:        "/community/stories/{id}",
	Community:          "/community",
	Rewards:            "/rewards",
	Admin:              "/admin",
	Party:              "/parties",
	PartyHosting:       "/parties/host",
	PartyHostDashboard: "/parties/{id}/dashboard",
	MakersHub:          "/makers",
}

// Pattern returns the route pattern of id, suitable for http.ServeMux.
func Pattern(id ID) string {
	if p, ok := patterns[id]; ok {
		return p
	}
	return patterns[Home]
}

// Path returns the URL path of id with the selection filled in. A detail
// page without its selection falls back to its list page.
func Path(id ID, sel Selection) string {
	pattern := Pattern(id)
	if !strings.Contains(pattern, "{id}") {
		return pattern
	}
	key := sel.key(id)
	if key == "" {
		return Pattern(listPage(id))
	}
	return strings.Replace(pattern, "{id}", url.PathEscape(key), 1)
}

// WithSelection returns sel with id's selection set to key.
func WithSelection(id ID, key string) Selection {
	var sel Selection
	switch id {
	case StoryDetail:
		sel.StoryID = key
	case PartyHostDashboard:
		sel.PartyID = key
	case NeighborProfile:
		sel.NeighborID = key
	}
	return sel
}

func (s Selection) key(id ID) string {
	switch id {
	case StoryDetail:
		return s.StoryID
	case PartyHostDashboard:
		return s.PartyID
	case NeighborProfile:
		return s.NeighborID
	}
	return ""
}

func listPage(id ID) ID {
	switch id {
	case StoryDetail:
		return Community
	case PartyHostDashboard:
		return MyPage
	case NeighborProfile:
		return NeighborsCloset
	}
	return Home
}

// Nav is the navigator: the current page and its selection.
type Nav struct {
	mu      sync.Mutex
	current ID
	sel     Selection
}

// NewNav starts on Home.
func NewNav() *Nav {
	return &Nav{current: Home}
}

// Go switches to id, keeping the selection.
func (n *Nav) Go(id ID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = id
}

// Select switches to id with sel.
func (n *Nav) Select(id ID, sel Selection) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current, n.sel = id, sel
}

// Current returns the current page and selection.
func (n *Nav) Current() (ID, Selection) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current, n.sel
}
