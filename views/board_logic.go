package views

import (
	"sort"

	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
)

type Seat struct {
	Position int
	Name     string
	Country  string
	Taken    bool
}

type BoardRow struct {
	Number    int
	TeeTime   string
	Seats     []Seat
	OpenSpots int
}

type BoardData struct {
	Tournament string
	Day        string
	Rows       []BoardRow
}

func PrepareBoardData(tournament, day string, slots []teetime.Slot) BoardData {
	rows := make([]BoardRow, 0, len(slots))
	for _, s := range slots {
		rows = append(rows, BoardRow{
			Number:    s.Number,
			TeeTime:   s.TeeTime,
			Seats:     seats(s.Players),
			OpenSpots: s.OpenSpots(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Number < rows[j].Number
	})

	return BoardData{Tournament: tournament, Day: day, Rows: rows}
}

// seats places players at their position. Players without a usable position take the first empty seat.
func seats(players []teetime.Reservation) []Seat {
	out := make([]Seat, teetime.MaxPlayersPerSlot)
	for i := range out {
		out[i].Position = i + 1
	}

	var unplaced []teetime.Reservation
	for _, p := range players {
		if p.Status != teetime.StatusReserved {
			continue
		}
		if p.Position >= 1 && p.Position <= teetime.MaxPlayersPerSlot && !out[p.Position-1].Taken {
			out[p.Position-1] = Seat{Position: p.Position, Name: p.FullName(), Country: p.Country, Taken: true}
			continue
		}
		unplaced = append(unplaced, p)
	}

	for _, p := range unplaced {
		for i := range out {
			if !out[i].Taken {
				out[i] = Seat{Position: i + 1, Name: p.FullName(), Country: p.Country, Taken: true}
				break
			}
		}
	}
	return out
}
