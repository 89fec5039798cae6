package teetime

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

// Cancelled reservations are hard deleted, so reserved is the only status that is ever stored.
const StatusReserved Status = "reserved"

type Reservation struct {
	ID         string    `json:"id,omitempty"`
	SlotID     uuid.UUID `json:"slot_id"`
	Tournament string    `json:"tournament,omitempty"`
	Day        string    `json:"day"`
	TeeTime    string    `json:"tee_time"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Country   string `json:"country,omitempty"`
	SMSOptIn  bool   `json:"sms_opt_in,omitempty"`

	// Position is the player's place within the tee time, 1 through MaxPlayersPerSlot.
	Position  int       `json:"slot"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Reservation) FullName() string {
	return r.FirstName + " " + r.LastName
}

func (r *Reservation) SameGolfer(firstName, lastName string) bool {
	return NormalizeName(r.FirstName) == NormalizeName(firstName) &&
		NormalizeName(r.LastName) == NormalizeName(lastName)
}

// Query narrows a reservation listing. Empty fields match everything.
type Query struct {
	Tournament string
	Day        string
	TeeTime    string
}

func (q Query) Matches(r Reservation) bool {
	if q.Tournament != "" && !SameTournament(r.Tournament, q.Tournament) {
		return false
	}
	if q.Day != "" && r.Day != q.Day {
		return false
	}
	if q.TeeTime != "" && NormalizeTeeTime(r.TeeTime) != NormalizeTeeTime(q.TeeTime) {
		return false
	}
	return true
}

// SameTournament is the one rule for comparing tournament names: trimmed and case-insensitive.
func SameTournament(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
