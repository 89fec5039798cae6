package teetime

import "fmt"

// ReservedCount counts the confirmed players among rs.
func ReservedCount(rs []Reservation) int {
	n := 0
	for _, r := range rs {
		if r.Status == StatusReserved {
			n++
		}
	}
	return n
}

// CheckBooking decides whether candidate may join the tee time currently holding existing and
// returns the position the candidate should take. A zero candidate.Position means "any free spot".
//
// The check reads a snapshot: callers that append afterwards without holding a lock can still let
// two concurrent requests past the count.
func CheckBooking(existing []Reservation, candidate Reservation) (int, error) {
	if candidate.Position < 0 || candidate.Position > MaxPlayersPerSlot {
		return 0, fmt.Errorf("%w: slot must be between 1 and %d", ErrValidation, MaxPlayersPerSlot)
	}

	if ReservedCount(existing) >= MaxPlayersPerSlot {
		return 0, ErrSlotFull
	}

	taken := make(map[int]bool, len(existing))
	for _, r := range existing {
		if r.Status != StatusReserved {
			continue
		}
		if r.SameGolfer(candidate.FirstName, candidate.LastName) {
			return 0, ErrDuplicateBooking
		}
		taken[r.Position] = true
	}

	if candidate.Position > 0 {
		if taken[candidate.Position] {
			return 0, ErrPositionTaken
		}
		return candidate.Position, nil
	}

	for pos := 1; pos <= MaxPlayersPerSlot; pos++ {
		if !taken[pos] {
			return pos, nil
		}
	}
	return 0, ErrSlotFull
}

// FindReservation returns the first reservation held by the named player. When position is
// non-zero the reservation must also sit at that position.
func FindReservation(existing []Reservation, firstName, lastName string, position int) (Reservation, error) {
	for _, r := range existing {
		if !r.SameGolfer(firstName, lastName) {
			continue
		}
		if position != 0 && r.Position != position {
			continue
		}
		return r, nil
	}
	return Reservation{}, ErrReservationNotFound
}
