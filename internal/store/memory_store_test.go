package store

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/brisa-tee-times/internal/catalog"
	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateListDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sat := catalog.Generate(1, "U.S. Open", "Saturday", []string{"8:00 AM", "8:10 AM"})
	sun := catalog.Generate(3, "U.S. Open", "Sunday", []string{"8:00 AM"})

	jane := reservationFor(sat[0], "Jane", "Doe", 2)
	john := reservationFor(sat[0], "John", "Roe", 1)
	ann := reservationFor(sun[0], "Ann", "Lee", 1)
	for _, r := range []*teetime.Reservation{jane, john, ann} {
		require.NoError(t, store.Create(ctx, r))
		assert.NotEmpty(t, r.ID)
	}

	got, err := store.List(ctx, teetime.Query{Day: "Saturday", TeeTime: "8:00 AM"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "John", got[0].FirstName, "ordered by position")
	assert.Equal(t, "Jane", got[1].FirstName)

	got, err = store.List(ctx, teetime.Query{Tournament: "U.S. OPEN", Day: "Sunday"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ann", got[0].FirstName)

	got, err = store.List(ctx, teetime.Query{Tournament: "Other"})
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Delete(ctx, *jane))
	assert.ErrorIs(t, store.Delete(ctx, *jane), teetime.ErrReservationNotFound)

	got, err = store.List(ctx, teetime.Query{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []string{john.ID, ann.ID}, []string{got[0].ID, got[1].ID})
}

func TestMemoryStore_ListReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	slot := catalog.Generate(1, "Open", "Saturday", []string{"8:00 AM"})[0]
	require.NoError(t, store.Create(ctx, reservationFor(slot, "Jane", "Doe", 1)))

	got, err := store.List(ctx, teetime.Query{})
	require.NoError(t, err)
	got[0].FirstName = "Mutated"

	again, err := store.List(ctx, teetime.Query{})
	require.NoError(t, err)
	assert.Equal(t, "Jane", again[0].FirstName)
}
