package model

import "testing"

func TestNeighborRefID(t *testing.T) {
	tests := []struct {
		name string
		ref  NeighborRef
		want string
	}{
		{"identifier only", NeighborByID("u2"), "u2"},
		{"summary", NeighborBySummary(NeighborSummary{ID: "u3", Nickname: "mina"}), "u3"},
		{"empty", NeighborRef{}, ""},
	}

	for _, tt := range tests {
		if got := tt.ref.ID(); got != tt.want {
			t.Errorf("%s: ID() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestUserHasNeighbor(t *testing.T) {
	u := &User{ID: "u1", Neighbors: []NeighborRef{
		NeighborByID("u2"),
		NeighborBySummary(NeighborSummary{ID: "u3", Nickname: "mina"}),
	}}

	for _, id := range []string{"u2", "u3"} {
		if !u.HasNeighbor(id) {
			t.Errorf("HasNeighbor(%q) = false, want true", id)
		}
	}
	if u.HasNeighbor("u4") {
		t.Error("HasNeighbor(u4) = true, want false")
	}
}

func TestUserCloneIsDeep(t *testing.T) {
	u := &User{ID: "u1", Neighbors: []NeighborRef{NeighborBySummary(NeighborSummary{ID: "u3", Nickname: "mina"})}}
	c := u.Clone()
	c.Neighbors[0].Summary.Nickname = "changed"
	if u.Neighbors[0].Nickname() != "mina" {
		t.Errorf("clone shares summary: got %q", u.Neighbors[0].Nickname())
	}
}

func TestCreditSigned(t *testing.T) {
	tests := []struct {
		typ    CreditType
		amount int
		want   int
	}{
		{CreditEarnedClothing, 100, 100},
		{CreditEarnedEvent, -100, 100},
		{CreditSpentReward, 200, -200},
		{CreditSpentOffset, -200, -200},
		{CreditSpentMakerPurchase, 50, -50},
		// Unknown types do not move the balance.
		{CreditType("BONUS"), 70, 0},
	}

	for _, tt := range tests {
		c := Credit{Type: tt.typ, Amount: tt.amount}
		if got := c.Signed(); got != tt.want {
			t.Errorf("Credit{%s, %d}.Signed() = %d, want %d", tt.typ, tt.amount, got, tt.want)
		}
	}
}

func TestCategoryValid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if Category("SOCKS").Valid() {
		t.Error("SOCKS should not be valid")
	}
}
