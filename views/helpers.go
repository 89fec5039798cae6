package views

import (
	"context"
	"net/url"

	"github.com/AdamBeresnev/brisa-tee-times/internal/golfer"
	"github.com/AdamBeresnev/brisa-tee-times/internal/middleware"
	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/a-h/templ"
)

var seatHeaders = []string{"Player 1", "Player 2", "Player 3", "Player 4"}

func GetGolfer(ctx context.Context) *golfer.Golfer {
	return middleware.GetGolfer(ctx)
}

// formGolfer prefills the booking form. New visitors get empty fields.
func formGolfer(ctx context.Context) golfer.Golfer {
	if g := GetGolfer(ctx); g != nil {
		return *g
	}
	return golfer.Golfer{}
}

func boardURL(tournament, day string) templ.SafeURL {
	return templ.SafeURL("/board?" + url.Values{"tournament": {tournament}, "day": {day}}.Encode())
}

func slotChoices() []int {
	out := make([]int, teetime.MaxPlayersPerSlot)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
