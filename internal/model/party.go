package model

import "time"

// PartyStatus is the lifecycle state of a party.
type PartyStatus string

// Party statuses.
const (
	PartyPendingApproval PartyStatus = "PENDING_APPROVAL"
	PartyUpcoming        PartyStatus = "UPCOMING"
	PartyCompleted       PartyStatus = "COMPLETED"
	PartyRejected        PartyStatus = "REJECTED"
)

// ParticipantStatus is a participant's state within one party.
type ParticipantStatus string

// Participant statuses.
const (
	ParticipantPending  ParticipantStatus = "PENDING"
	ParticipantAccepted ParticipantStatus = "ACCEPTED"
	ParticipantRejected ParticipantStatus = "REJECTED"
	ParticipantAttended ParticipantStatus = "ATTENDED"
)

// ImpactStats aggregates environmental savings.
type ImpactStats struct {
	ItemsExchanged int     `json:"itemsExchanged"`
	WaterSaved     float64 `json:"waterSaved"`
	CO2Reduced     float64 `json:"co2Reduced"`
}

// KitDetails summarizes the cost of a party kit.
type KitDetails struct {
	Participants   int `json:"participants"`
	ItemsPerPerson int `json:"itemsPerPerson"`
	Cost           int `json:"cost"`
}

// PartyParticipant is a user's membership in a party. Nickname is a snapshot
// taken when the user applied.
type PartyParticipant struct {
	UserID   string            `json:"userId"`
	Nickname string            `json:"nickname"`
	Status   ParticipantStatus `json:"status"`
}

// Party is a clothing-exchange event.
type Party struct {
	ID             string             `json:"id"`
	HostID         string             `json:"hostId"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Date           time.Time          `json:"date"`
	Location       string             `json:"location"`
	ImageURL       string             `json:"imageUrl"`
	Details        []string           `json:"details"`
	Status         PartyStatus        `json:"status"`
	InvitationCode string             `json:"invitationCode"`
	Participants   []PartyParticipant `json:"participants"`
	Impact         *ImpactStats       `json:"impact,omitempty"`
	Kit            *KitDetails        `json:"kitDetails,omitempty"`
}

// Participant returns the participant entry for userID, if any.
func (p *Party) Participant(userID string) (PartyParticipant, bool) {
	for _, pp := range p.Participants {
		if pp.UserID == userID {
			return pp, true
		}
	}
	return PartyParticipant{}, false
}

// HasParticipantWithStatus reports whether userID participates with status.
func (p *Party) HasParticipantWithStatus(userID string, status ParticipantStatus) bool {
	pp, ok := p.Participant(userID)
	return ok && pp.Status == status
}
