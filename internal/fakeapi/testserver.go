package fakeapi

import (
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/otgil/otgil/internal/mapper"
)

// TestSecret signs tokens issued by NewTestServer.
const TestSecret = "test-secret"

// NewTestServer starts a seeded backend on a local port for the duration of
// the test.
func NewTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	data := NewData()
	if err := Seed(data); err != nil {
		t.Fatalf("seeding backend: %v", err)
	}

	srv := New(data, TestSecret)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	return srv, ts
}

// AddCredit appends a ledger entry for userID.
func (d *Data) AddCredit(userID, creditType string, amount int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.credits = append(d.credits, &mapper.CreditRecord{
		ID:           newID(),
		UserID:       userID,
		Date:         d.now().UTC().Format("2006-01-02"),
		ActivityName: "adjustment",
		Type:         creditType,
		Amount:       amount,
	})
}

// ClearCredits drops every ledger entry of userID.
func (d *Data) ClearCredits(userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.credits[:0]
	for _, c := range d.credits {
		if c.UserID != userID {
			kept = append(kept, c)
		}
	}
	d.credits = kept
}

// RemoveAccount deletes an account. Its tokens stop working.
func (d *Data) RemoveAccount(userID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.accounts = slices.DeleteFunc(d.accounts, func(a *account) bool { return a.ID == userID })
}
