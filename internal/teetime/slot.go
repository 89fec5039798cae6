package teetime

import (
	"strings"

	"github.com/google/uuid"
)

// MaxPlayersPerSlot is the number of golfers that can share one tee time.
const MaxPlayersPerSlot = 4

type Slot struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Number     int       `db:"number" json:"number"`
	Tournament string    `db:"tournament" json:"tournament"`
	Day        string    `db:"day" json:"day"`
	TeeTime    string    `db:"tee_time" json:"tee_time"`

	Players []Reservation `db:"-" json:"players,omitempty"`
}

func (s *Slot) Full() bool {
	return ReservedCount(s.Players) >= MaxPlayersPerSlot
}

func (s *Slot) OpenSpots() int {
	open := MaxPlayersPerSlot - ReservedCount(s.Players)
	if open < 0 {
		return 0
	}
	return open
}

// NormalizeTeeTime folds a tee time label for comparison, so "8:00 am" and " 8:00 AM" are the same slot.
func NormalizeTeeTime(t string) string {
	return strings.ToUpper(strings.Join(strings.Fields(t), " "))
}

// NormalizeName folds a player name for duplicate detection.
func NormalizeName(n string) string {
	return strings.ToLower(strings.Join(strings.Fields(n), " "))
}
