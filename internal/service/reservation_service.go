package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/AdamBeresnev/brisa-tee-times/internal/catalog"
	"github.com/AdamBeresnev/brisa-tee-times/internal/metrics"
	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/AdamBeresnev/brisa-tee-times/internal/utils"
	"github.com/google/uuid"
)

const maxNameLength = 50

type ReservationService struct {
	catalog  *catalog.Catalog
	store    ReservationStore
	notifier ReservationNotifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewReservationService wires the service. m may be nil when metrics are off.
func NewReservationService(c *catalog.Catalog, store ReservationStore, notifier ReservationNotifier, m *metrics.Metrics, logger *slog.Logger) *ReservationService {
	return &ReservationService{
		catalog:  c,
		store:    store,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

type PlayerInput struct {
	FirstName string
	LastName  string
	Country   string
	Email     string
	Phone     string
	SMSOptIn  bool
}

type BookingInput struct {
	Tournament string
	Day        string
	TeeTime    string
	Player     PlayerInput
	// Slot optionally asks for a specific position within the tee time.
	Slot *int
}

type CancelInput struct {
	Tournament string
	Day        string
	TeeTime    string
	FirstName  string
	LastName   string
	Slot       *int
}

func (s *ReservationService) Tournaments() []teetime.Tournament {
	return s.catalog.Tournaments()
}

// Book runs the capacity guard against the tee time's current players and stores the reservation.
// The confirmation goes out in the background; its outcome never affects the booking.
func (s *ReservationService) Book(ctx context.Context, in BookingInput) (*teetime.Reservation, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		s.metrics.IncReservationRejected("invalid")
		return nil, err
	}

	slot, err := s.catalog.Find(in.Tournament, in.Day, in.TeeTime)
	if err != nil {
		s.metrics.IncReservationRejected(rejectReason(err))
		return nil, err
	}

	existing, err := s.store.List(ctx, slotQuery(slot))
	if err != nil {
		return nil, fmt.Errorf("load tee time: %w", err)
	}

	candidate := teetime.Reservation{
		ID:         uuid.NewString(),
		SlotID:     slot.ID,
		Tournament: slot.Tournament,
		Day:        slot.Day,
		TeeTime:    slot.TeeTime,
		FirstName:  in.Player.FirstName,
		LastName:   in.Player.LastName,
		Phone:      in.Player.Phone,
		Email:      in.Player.Email,
		Country:    in.Player.Country,
		SMSOptIn:   in.Player.SMSOptIn,
		Position:   utils.OrZero(in.Slot),
		Status:     teetime.StatusReserved,
		CreatedAt:  s.now().UTC(),
	}

	position, err := teetime.CheckBooking(existing, candidate)
	if err != nil {
		s.metrics.IncReservationRejected(rejectReason(err))
		s.logger.Info("reservation rejected",
			"tournament", slot.Tournament,
			"day", slot.Day,
			"tee_time", slot.TeeTime,
			"reason", err.Error(),
		)
		return nil, err
	}
	candidate.Position = position

	if err := s.store.Create(ctx, &candidate); err != nil {
		return nil, fmt.Errorf("save reservation: %w", err)
	}

	s.metrics.IncReservationCreated(slot.Tournament)
	s.logger.Info("reservation created",
		"reservation_id", candidate.ID,
		"tournament", slot.Tournament,
		"day", slot.Day,
		"tee_time", slot.TeeTime,
		"slot", candidate.Position,
	)

	go s.notify(context.WithoutCancel(ctx), candidate)

	return &candidate, nil
}

// notify runs on its own goroutine, so a panicking channel must not take the process down with it.
func (s *ReservationService) notify(ctx context.Context, r teetime.Reservation) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("confirmation panicked",
				"reservation_id", r.ID,
				"panic", p,
				"stack", string(debug.Stack()),
			)
		}
	}()
	s.notifier.NotifyReservation(ctx, r)
}

// Cancel hard deletes the matching reservation; nothing is kept behind with a cancelled status.
func (s *ReservationService) Cancel(ctx context.Context, in CancelInput) (*teetime.Reservation, error) {
	in = in.trimmed()
	if err := in.validate(); err != nil {
		return nil, err
	}

	slot, err := s.catalog.Find(in.Tournament, in.Day, in.TeeTime)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.List(ctx, slotQuery(slot))
	if err != nil {
		return nil, fmt.Errorf("load tee time: %w", err)
	}

	match, err := teetime.FindReservation(existing, in.FirstName, in.LastName, utils.OrZero(in.Slot))
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, match); err != nil {
		if errors.Is(err, teetime.ErrReservationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete reservation: %w", err)
	}

	s.metrics.IncReservationCanceled()
	s.logger.Info("reservation cancelled",
		"reservation_id", match.ID,
		"tournament", slot.Tournament,
		"day", slot.Day,
		"tee_time", slot.TeeTime,
		"slot", match.Position,
	)
	return &match, nil
}

func (s *ReservationService) Reservations(ctx context.Context, q teetime.Query) ([]teetime.Reservation, error) {
	rs, err := s.store.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return rs, nil
}

// DayBoard returns the day's tee times with their players filled in.
func (s *ReservationService) DayBoard(ctx context.Context, tournament, day string) ([]teetime.Slot, error) {
	slots, err := s.catalog.DaySlots(strings.TrimSpace(tournament), strings.TrimSpace(day))
	if err != nil {
		return nil, err
	}

	rs, err := s.Reservations(ctx, teetime.Query{Tournament: strings.TrimSpace(tournament), Day: strings.TrimSpace(day)})
	if err != nil {
		return nil, err
	}

	for i := range slots {
		for _, r := range rs {
			// Rows from the spreadsheet carry no tournament and match on day and time alone.
			if r.Tournament != "" && !teetime.SameTournament(r.Tournament, slots[i].Tournament) {
				continue
			}
			if teetime.NormalizeTeeTime(r.TeeTime) == teetime.NormalizeTeeTime(slots[i].TeeTime) {
				slots[i].Players = append(slots[i].Players, r)
			}
		}
		sort.SliceStable(slots[i].Players, func(a, b int) bool {
			return slots[i].Players[a].Position < slots[i].Players[b].Position
		})
	}
	return slots, nil
}

func slotQuery(slot teetime.Slot) teetime.Query {
	return teetime.Query{Tournament: slot.Tournament, Day: slot.Day, TeeTime: slot.TeeTime}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, teetime.ErrSlotFull):
		return "full"
	case errors.Is(err, teetime.ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, teetime.ErrPositionTaken):
		return "slot_taken"
	case errors.Is(err, teetime.ErrUnknownSlot):
		return "unknown_tee_time"
	default:
		return "invalid"
	}
}

func (in BookingInput) trimmed() BookingInput {
	in.Tournament = strings.TrimSpace(in.Tournament)
	in.Day = strings.TrimSpace(in.Day)
	in.TeeTime = strings.TrimSpace(in.TeeTime)
	in.Player.FirstName = strings.TrimSpace(in.Player.FirstName)
	in.Player.LastName = strings.TrimSpace(in.Player.LastName)
	in.Player.Country = strings.TrimSpace(in.Player.Country)
	in.Player.Email = strings.TrimSpace(in.Player.Email)
	in.Player.Phone = strings.TrimSpace(in.Player.Phone)
	return in
}

func (in BookingInput) validate() error {
	if err := required(map[string]string{
		"day":               in.Day,
		"tee_time":          in.TeeTime,
		"player.first_name": in.Player.FirstName,
		"player.last_name":  in.Player.LastName,
	}); err != nil {
		return err
	}
	if err := nameLength(in.Player.FirstName, in.Player.LastName); err != nil {
		return err
	}
	if in.Player.Email != "" {
		if _, err := mail.ParseAddress(in.Player.Email); err != nil {
			return fmt.Errorf("%w: email %q is not a valid address", teetime.ErrValidation, in.Player.Email)
		}
	}
	return slotInRange(in.Slot)
}

func (in CancelInput) trimmed() CancelInput {
	in.Tournament = strings.TrimSpace(in.Tournament)
	in.Day = strings.TrimSpace(in.Day)
	in.TeeTime = strings.TrimSpace(in.TeeTime)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	return in
}

func (in CancelInput) validate() error {
	if err := required(map[string]string{
		"day":               in.Day,
		"tee_time":          in.TeeTime,
		"player.first_name": in.FirstName,
		"player.last_name":  in.LastName,
	}); err != nil {
		return err
	}
	return slotInRange(in.Slot)
}

func required(fields map[string]string) error {
	var missing []string
	for name, v := range fields {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("%w: missing %s", teetime.ErrValidation, strings.Join(missing, ", "))
}

func nameLength(names ...string) error {
	for _, n := range names {
		if len(n) > maxNameLength {
			return fmt.Errorf("%w: name '%s' exceeds %d characters", teetime.ErrValidation, n, maxNameLength)
		}
	}
	return nil
}

func slotInRange(slot *int) error {
	if slot != nil && (*slot < 1 || *slot > teetime.MaxPlayersPerSlot) {
		return fmt.Errorf("%w: slot must be between 1 and %d", teetime.ErrValidation, teetime.MaxPlayersPerSlot)
	}
	return nil
}
