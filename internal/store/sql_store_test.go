package store

import (
	"context"
	"testing"
	"time"

	"github.com/AdamBeresnev/brisa-tee-times/internal/catalog"
	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	// Every pooled connection would otherwise open its own empty database.
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

func seededSQLStore(t *testing.T) (*SQLStore, []teetime.Slot) {
	t.Helper()
	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	slots := catalog.Generate(1, "U.S. Open", "Saturday", []string{"8:00 AM", "8:10 AM"})
	slots = append(slots, catalog.Generate(3, "U.S. Open", "Sunday", []string{"8:00 AM"})...)

	store := NewSQLStore(db)
	require.NoError(t, store.SeedSlots(context.Background(), slots))
	return store, slots
}

func reservationFor(slot teetime.Slot, first, last string, pos int) *teetime.Reservation {
	return &teetime.Reservation{
		SlotID:     slot.ID,
		Tournament: slot.Tournament,
		Day:        slot.Day,
		TeeTime:    slot.TeeTime,
		FirstName:  first,
		LastName:   last,
		Position:   pos,
		Status:     teetime.StatusReserved,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestSQLStore_SeedSlotsIsIdempotent(t *testing.T) {
	store, slots := seededSQLStore(t)

	require.NoError(t, store.SeedSlots(context.Background(), slots))

	var count int
	require.NoError(t, store.db.Get(&count, "SELECT COUNT(*) FROM slots"))
	assert.Equal(t, 3, count)
}

func TestSQLStore_CreateAndList(t *testing.T) {
	store, slots := seededSQLStore(t)
	ctx := context.Background()

	jane := reservationFor(slots[0], "Jane", "Doe", 1)
	jane.Email = "jane@example.com"
	jane.SMSOptIn = true
	require.NoError(t, store.Create(ctx, jane))
	assert.NotEmpty(t, jane.ID)

	require.NoError(t, store.Create(ctx, reservationFor(slots[1], "John", "Roe", 1)))
	require.NoError(t, store.Create(ctx, reservationFor(slots[2], "Ann", "Lee", 1)))

	saturday, err := store.List(ctx, teetime.Query{Tournament: "U.S. Open", Day: "Saturday"})
	require.NoError(t, err)
	require.Len(t, saturday, 2)
	assert.Equal(t, "Jane", saturday[0].FirstName)
	assert.Equal(t, "jane@example.com", saturday[0].Email)
	assert.Empty(t, saturday[0].Phone)
	assert.True(t, saturday[0].SMSOptIn)
	assert.Equal(t, teetime.StatusReserved, saturday[0].Status)
	assert.Equal(t, slots[0].ID, saturday[0].SlotID)
	assert.WithinDuration(t, jane.CreatedAt, saturday[0].CreatedAt, time.Second)

	folded, err := store.List(ctx, teetime.Query{Tournament: "u.s. open", Day: "Saturday"})
	require.NoError(t, err)
	assert.Len(t, folded, 2)

	other, err := store.List(ctx, teetime.Query{Tournament: "Masters"})
	require.NoError(t, err)
	assert.Empty(t, other)

	slot, err := store.List(ctx, teetime.Query{Day: "Saturday", TeeTime: "8:10 am"})
	require.NoError(t, err)
	require.Len(t, slot, 1)
	assert.Equal(t, "John", slot[0].FirstName)

	all, err := store.List(ctx, teetime.Query{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSQLStore_CreateRejectsUnknownSlot(t *testing.T) {
	store, _ := seededSQLStore(t)

	unknown := catalog.Generate(99, "Masters", "Friday", []string{"7:00 AM"})[0]
	err := store.Create(context.Background(), reservationFor(unknown, "Jane", "Doe", 1))
	assert.Error(t, err)
}

func TestSQLStore_DeleteRemovesExactlyOne(t *testing.T) {
	store, slots := seededSQLStore(t)
	ctx := context.Background()

	jane := reservationFor(slots[0], "Jane", "Doe", 1)
	john := reservationFor(slots[0], "John", "Roe", 2)
	require.NoError(t, store.Create(ctx, jane))
	require.NoError(t, store.Create(ctx, john))

	require.NoError(t, store.Delete(ctx, *jane))

	left, err := store.List(ctx, teetime.Query{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, john.ID, left[0].ID)

	err = store.Delete(ctx, *jane)
	assert.ErrorIs(t, err, teetime.ErrReservationNotFound)
}
