package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/items/", "items"},
		{"/items/42/goodbye", "items"},
		{"parties/?status_filter=UPCOMING", "parties"},
		{"/community/stories/7/like", "community"},
		{"/", "root"},
		{"", "root"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Resource(tt.path), tt.path)
	}
}

// scrape returns the text exposition of the registry.
func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestObserveAPIRequest(t *testing.T) {
	ObserveAPIRequest("GET", "/rewards/", 200, 10*time.Millisecond)
	ObserveAPIRequest("GET", "/makers/", 0, time.Millisecond)

	out := scrape(t)
	assert.Contains(t, out, `otgil_api_requests_total{method="GET",resource="rewards",status="200"}`)
	assert.Contains(t, out, `otgil_api_requests_total{method="GET",resource="makers",status="error"}`)
	assert.Contains(t, out, `otgil_api_request_duration_seconds_count{method="GET",resource="rewards"}`)
}

func TestObserveRefresh(t *testing.T) {
	ObserveRefresh("items", nil)
	ObserveRefresh("items", errors.New("boom"))

	out := scrape(t)
	assert.Contains(t, out, `otgil_state_refresh_total{collection="items",result="ok"}`)
	assert.Contains(t, out, `otgil_state_refresh_total{collection="items",result="error"}`)
}

func TestHandlerExposesRegistry(t *testing.T) {
	ObserveAPIRequest("POST", "/credits/earn", 201, time.Millisecond)

	h := InstrumentHandler(Handler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "otgil_api_requests_total"))
	assert.Contains(t, scrape(t), `otgil_web_requests_total{method="GET",status="200"}`)
}
