package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("could not reach the server")

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	StatusText string
	// Detail is the server's explanation, when one could be extracted.
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.StatusText, e.Detail)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.StatusText)
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusUnauthorized
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// extractDetail pulls a human-readable message out of an error body. The
// body may be anything, including empty or HTML.
func extractDetail(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}

	detail := gjson.GetBytes(body, "detail")
	switch {
	case detail.Type == gjson.String:
		return detail.String()
	case detail.IsArray():
		// Validation errors: [{"loc": [...], "msg": "...", "type": "..."}].
		var msgs []string
		for _, m := range detail.Get("#.msg").Array() {
			if s := m.String(); s != "" {
				msgs = append(msgs, s)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	case detail.IsObject():
		if msg := detail.Get("msg"); msg.Exists() {
			return msg.String()
		}
		return detail.Raw
	}

	for _, key := range []string{"error", "message"} {
		if r := gjson.GetBytes(body, key); r.Type == gjson.String {
			return r.String()
		}
	}
	return ""
}

func statusText(resp *http.Response) string {
	// resp.Status is "404 Not Found"; fall back to the canonical text.
	if _, text, ok := strings.Cut(resp.Status, " "); ok && text != "" {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
