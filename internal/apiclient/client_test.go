package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"http://api", "/items/", "http://api/items/"},
		{"http://api/", "items/", "http://api/items/"},
		{"http://api///", "//items/", "http://api/items/"},
		{"http://api/v1", "/users/me", "http://api/v1/users/me"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.base).URL(tt.path), "%s + %s", tt.base, tt.path)
	}
}

func TestDoSendsBearerAndJSON(t *testing.T) {
	var gotAuth, gotType, gotBody, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"7","name":"scarf"}`))
	}))
	defer srv.Close()

	var out struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	in := map[string]string{"image_url": "x"}
	err := New(srv.URL).Do(context.Background(), http.MethodPost, "/items/", "tok", in, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"image_url":"x"}`, gotBody)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "7", out.ID)
	assert.Equal(t, "scarf", out.Name)
}

func TestGetWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected authorization header")
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var out []any
	require.NoError(t, New(srv.URL).Get(context.Background(), "/rewards/", "", &out))
	assert.Empty(t, out)
}

func TestPostFormEncodesCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "mina@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "pw", r.PostForm.Get("password"))
		w.Write([]byte(`{"access_token":"abc","token_type":"bearer"}`))
	}))
	defer srv.Close()

	var out struct {
		AccessToken string `json:"access_token"`
	}
	form := url.Values{"username": {"mina@example.com"}, "password": {"pw"}}
	require.NoError(t, New(srv.URL).PostForm(context.Background(), "/users/login", form, &out))
	assert.Equal(t, "abc", out.AccessToken)
}

func TestErrorDetailExtraction(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"fastapi string", 401, `{"detail":"Incorrect username or password"}`, "Incorrect username or password"},
		{"validation list", 422, `{"detail":[{"loc":["body","name"],"msg":"field required"},{"msg":"too short"}]}`, "field required; too short"},
		{"error key", 400, `{"error":"bad input"}`, "bad input"},
		{"message key", 409, `{"message":"already joined"}`, "already joined"},
		{"html body", 502, `<html>Bad Gateway</html>`, ""},
		{"empty body", 500, ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := New(srv.URL).Get(context.Background(), "/x", "", nil)
			apiErr, ok := AsAPIError(err)
			require.True(t, ok, "expected APIError, got %v", err)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, http.StatusText(tt.status), apiErr.StatusText)
			assert.Equal(t, tt.detail, apiErr.Detail)
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{StatusCode: 401}))
	assert.False(t, IsUnauthorized(&APIError{StatusCode: 403}))
	assert.False(t, IsUnauthorized(errors.New("other")))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	err := New(base).Get(context.Background(), "/items/", "", nil)
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestEmptySuccessBodyIgnoresOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out map[string]any
	require.NoError(t, New(srv.URL).Do(context.Background(), http.MethodDelete, "/admin/parties/1", "t", nil, &out))
	assert.Nil(t, out)
}
