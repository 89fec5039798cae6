package service

import (
	"context"

	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
)

// ReservationStore is implemented by every backend in internal/store.
type ReservationStore interface {
	List(ctx context.Context, q teetime.Query) ([]teetime.Reservation, error)
	Create(ctx context.Context, r *teetime.Reservation) error
	// Delete removes exactly the one stored record r was read from.
	Delete(ctx context.Context, r teetime.Reservation) error
}

type ReservationNotifier interface {
	NotifyReservation(ctx context.Context, r teetime.Reservation)
}
