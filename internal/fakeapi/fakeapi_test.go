package fakeapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otgil/otgil/internal/mapper"
)

func login(t *testing.T, base, email string) string {
	t.Helper()
	form := url.Values{"username": {email}, "password": {SeedPassword}}
	resp, err := http.PostForm(base+"/users/login", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tok mapper.TokenRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

func call(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLoginWrongPassword(t *testing.T) {
	_, ts := NewTestServer(t)

	form := url.Values{"username": {"eco@fashion.com"}, "password": {"nope"}}
	resp, err := http.PostForm(ts.URL+"/users/login", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Incorrect username or password", body["detail"])
}

func TestMeExpandsNeighbors(t *testing.T) {
	_, ts := NewTestServer(t)
	token := login(t, ts.URL, "eco@fashion.com")

	resp := call(t, http.MethodGet, ts.URL+"/users/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.True(t, strings.HasPrefix(string(raw["neighbors"]), `[{"id":"user2"`), string(raw["neighbors"]))
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	_, ts := NewTestServer(t)

	resp := call(t, http.MethodGet, ts.URL+"/items/my-items", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, http.MethodGet, ts.URL+"/items/my-items", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminRouteRejectsMembers(t *testing.T) {
	_, ts := NewTestServer(t)
	token := login(t, ts.URL, "namu@lazy.com")

	resp := call(t, http.MethodDelete, ts.URL+"/admin/parties/party1", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPublicItemsHideUnlisted(t *testing.T) {
	_, ts := NewTestServer(t)

	resp := call(t, http.MethodGet, ts.URL+"/items/", "", nil)
	var items []mapper.ItemRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	for _, it := range items {
		assert.True(t, it.IsListedForExchange, it.ID)
	}

	token := login(t, ts.URL, "eco@fashion.com")
	resp = call(t, http.MethodGet, ts.URL+"/items/my-items", token, nil)
	var mine []mapper.ItemRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mine))
	assert.Len(t, mine, 3)
}

func TestPatchNullClearsSubmission(t *testing.T) {
	_, ts := NewTestServer(t)
	token := login(t, ts.URL, "namu@lazy.com")

	resp := call(t, http.MethodPatch, ts.URL+"/items/item4", token, mapper.SubmissionPatch{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var it mapper.ItemRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&it))
	assert.Nil(t, it.PartySubmissionStatus)
	assert.Nil(t, it.SubmittedPartyID)
}

func TestJoinRequiresInvitationCode(t *testing.T) {
	_, ts := NewTestServer(t)
	token := login(t, ts.URL, "style@seeker.com")

	resp := call(t, http.MethodPost, ts.URL+"/parties/party1/join?invitation_code=WRONG", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, http.MethodPost, ts.URL+"/parties/party1/join?invitation_code=ECOPARTY24", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var pp mapper.ParticipantRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pp))
	assert.Equal(t, "PENDING", pp.Status)
}

func TestEarnRejectsOverspend(t *testing.T) {
	srv, ts := NewTestServer(t)
	token := login(t, ts.URL, "eco@fashion.com")

	req := mapper.EarnRequest{UserID: "user1", Amount: 5000, ActivityName: "too much", Type: "SPENT_REWARD"}
	resp := call(t, http.MethodPost, ts.URL+"/credits/earn", token, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	srv.Data.AddCredit("user1", "EARNED_EVENT", 5000)
	resp = call(t, http.MethodPost, ts.URL+"/credits/earn", token, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestsAreRecorded(t *testing.T) {
	srv, ts := NewTestServer(t)

	call(t, http.MethodGet, ts.URL+"/parties/?status_filter=UPCOMING", "", nil)
	assert.Equal(t, []string{"GET /parties/?status_filter=UPCOMING"}, srv.Requests())

	srv.ResetRequests()
	assert.Empty(t, srv.Requests())
}
