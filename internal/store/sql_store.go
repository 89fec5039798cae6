package store

import (
	"context"
	"fmt"
	"time"

	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/AdamBeresnev/brisa-tee-times/internal/utils"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLStore keeps slots and players in two tables. Nothing in the schema caps a slot at four players.
type SQLStore struct {
	db *sqlx.DB
}

type playerRow struct {
	ID         string    `db:"id"`
	SlotID     uuid.UUID `db:"slot_id"`
	Position   int       `db:"position"`
	FirstName  string    `db:"first_name"`
	LastName   string    `db:"last_name"`
	Phone      *string   `db:"phone"`
	Email      *string   `db:"email"`
	Country    *string   `db:"country"`
	SMSOptIn   bool      `db:"sms_opt_in"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	Tournament string    `db:"tournament"`
	Day        string    `db:"day"`
	TeeTime    string    `db:"tee_time"`
}

const (
	seedSlotQuery = `
		INSERT OR IGNORE INTO slots (id, number, tournament, day, tee_time)
		VALUES (:id, :number, :tournament, :day, :tee_time)
	`
	listPlayersQuery = `
		SELECT p.id, p.slot_id, p.position, p.first_name, p.last_name, p.phone, p.email, p.country,
			p.sms_opt_in, p.status, p.created_at, s.tournament, s.day, s.tee_time
		FROM players p
		JOIN slots s ON s.id = p.slot_id
		WHERE (? = '' OR s.day = ?)
		ORDER BY s.number ASC, p.position ASC, p.created_at ASC
	`
	createPlayerQuery = `
		INSERT INTO players (id, slot_id, position, first_name, last_name, phone, email, country, sms_opt_in, status, created_at)
		VALUES (:id, :slot_id, :position, :first_name, :last_name, :phone, :email, :country, :sms_opt_in, :status, :created_at)
	`
	deletePlayerQuery = "DELETE FROM players WHERE id = ?"
)

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

// SeedSlots inserts the catalog's tee times. Slots that already exist are left alone.
func (s *SQLStore) SeedSlots(ctx context.Context, slots []teetime.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for i := range slots {
		if _, err := tx.NamedExecContext(ctx, seedSlotQuery, &slots[i]); err != nil {
			return fmt.Errorf("seed slot %s %s %s: %w", slots[i].Tournament, slots[i].Day, slots[i].TeeTime, err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) List(ctx context.Context, q teetime.Query) ([]teetime.Reservation, error) {
	var rows []playerRow
	err := s.db.SelectContext(ctx, &rows, listPlayersQuery, q.Day, q.Day)
	if err != nil {
		return nil, err
	}

	out := make([]teetime.Reservation, 0, len(rows))
	for _, row := range rows {
		r := row.reservation()
		// Tournament and tee time are compared folded in Go. SQLite's NOCASE only folds ASCII.
		if q.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *SQLStore) Create(ctx context.Context, r *teetime.Reservation) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	row := playerRow{
		ID:        r.ID,
		SlotID:    r.SlotID,
		Position:  r.Position,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     utils.StringOrNil(r.Phone),
		Email:     utils.StringOrNil(r.Email),
		Country:   utils.StringOrNil(r.Country),
		SMSOptIn:  r.SMSOptIn,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
	_, err := s.db.NamedExecContext(ctx, createPlayerQuery, row)
	return err
}

func (s *SQLStore) Delete(ctx context.Context, r teetime.Reservation) error {
	res, err := s.db.ExecContext(ctx, deletePlayerQuery, r.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return teetime.ErrReservationNotFound
	}
	return nil
}

func (row playerRow) reservation() teetime.Reservation {
	return teetime.Reservation{
		ID:         row.ID,
		SlotID:     row.SlotID,
		Tournament: row.Tournament,
		Day:        row.Day,
		TeeTime:    row.TeeTime,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		Phone:      utils.OrZero(row.Phone),
		Email:      utils.OrZero(row.Email),
		Country:    utils.OrZero(row.Country),
		SMSOptIn:   row.SMSOptIn,
		Position:   row.Position,
		Status:     teetime.Status(row.Status),
		CreatedAt:  row.CreatedAt.UTC(),
	}
}
