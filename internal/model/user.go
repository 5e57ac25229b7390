package model

// User is a community member as the client sees it.
type User struct {
	ID          string        `json:"id"`
	Nickname    string        `json:"nickname"`
	Email       string        `json:"email"`
	PhoneNumber string        `json:"phoneNumber,omitempty"`
	IsAdmin     bool          `json:"isAdmin"`
	Neighbors   []NeighborRef `json:"neighbors"`
}

// NeighborSummary is the denormalized form some endpoints return for a neighbor.
type NeighborSummary struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}

// NeighborRef is either a bare user ID or a neighbor summary. Exactly one of
// the two forms is set.
type NeighborRef struct {
	UserID  string           `json:"userId,omitempty"`
	Summary *NeighborSummary `json:"summary,omitempty"`
}

// NeighborByID returns an identifier-only reference.
func NeighborByID(id string) NeighborRef {
	return NeighborRef{UserID: id}
}

// NeighborBySummary returns a summary reference.
func NeighborBySummary(s NeighborSummary) NeighborRef {
	return NeighborRef{Summary: &s}
}

// ID normalizes the reference to the neighbor's user ID.
func (n NeighborRef) ID() string {
	if n.Summary != nil {
		return n.Summary.ID
	}
	return n.UserID
}

// Nickname returns the summary nickname, or "" for identifier-only references.
func (n NeighborRef) Nickname() string {
	if n.Summary != nil {
		return n.Summary.Nickname
	}
	return ""
}

// HasNeighbor reports whether userID is among u's neighbors.
func (u *User) HasNeighbor(userID string) bool {
	for _, n := range u.Neighbors {
		if n.ID() == userID {
			return true
		}
	}
	return false
}

// NeighborIDs returns the normalized IDs of u's neighbors.
func (u *User) NeighborIDs() []string {
	ids := make([]string, 0, len(u.Neighbors))
	for _, n := range u.Neighbors {
		ids = append(ids, n.ID())
	}
	return ids
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.Neighbors = make([]NeighborRef, len(u.Neighbors))
	for i, n := range u.Neighbors {
		if n.Summary != nil {
			s := *n.Summary
			n.Summary = &s
		}
		c.Neighbors[i] = n
	}
	return &c
}
