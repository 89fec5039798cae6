package store

import (
	"context"
	"sort"
	"sync"

	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/google/uuid"
)

// MemoryStore keeps reservations in a tournament -> day -> slot map. Everything is lost on restart.
//
// The mutex only keeps the map itself consistent. It is released between a List and the following
// Create, so concurrent bookings for one slot can still both pass the capacity check.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]map[string]map[uuid.UUID][]teetime.Reservation
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]map[string]map[uuid.UUID][]teetime.Reservation)}
}

func (s *MemoryStore) List(ctx context.Context, q teetime.Query) ([]teetime.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []teetime.Reservation
	for tournament, days := range s.slots {
		if q.Tournament != "" && !teetime.SameTournament(tournament, q.Tournament) {
			continue
		}
		for day, slots := range days {
			if q.Day != "" && day != q.Day {
				continue
			}
			for _, rs := range slots {
				for _, r := range rs {
					if q.Matches(r) {
						out = append(out, r)
					}
				}
			}
		}
	}

	sortReservations(out)
	return out, nil
}

func (s *MemoryStore) Create(ctx context.Context, r *teetime.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	days, ok := s.slots[r.Tournament]
	if !ok {
		days = make(map[string]map[uuid.UUID][]teetime.Reservation)
		s.slots[r.Tournament] = days
	}
	slots, ok := days[r.Day]
	if !ok {
		slots = make(map[uuid.UUID][]teetime.Reservation)
		days[r.Day] = slots
	}
	slots[r.SlotID] = append(slots[r.SlotID], *r)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, r teetime.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.slots[r.Tournament][r.Day][r.SlotID]
	for i := range rs {
		if rs[i].ID == r.ID {
			s.slots[r.Tournament][r.Day][r.SlotID] = append(rs[:i:i], rs[i+1:]...)
			return nil
		}
	}
	return teetime.ErrReservationNotFound
}

// sortReservations orders by day, then tee time as stored, then position within the tee time.
func sortReservations(rs []teetime.Reservation) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].Day != rs[j].Day {
			return rs[i].Day < rs[j].Day
		}
		if rs[i].TeeTime != rs[j].TeeTime {
			return rs[i].TeeTime < rs[j].TeeTime
		}
		if rs[i].Position != rs[j].Position {
			return rs[i].Position < rs[j].Position
		}
		return rs[i].CreatedAt.Before(rs[j].CreatedAt)
	})
}
