package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/AdamBeresnev/brisa-tee-times/internal/store"
	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	rs := []teetime.Reservation{
		{
			Day:       "Saturday",
			TeeTime:   "8:00 AM",
			FirstName: "Jane",
			LastName:  "Doe",
			Country:   "USA",
			Email:     "jane@example.com",
			Status:    teetime.StatusReserved,
			Position:  1,
			CreatedAt: time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
		},
		{
			Day:       "Saturday",
			TeeTime:   "8:00 AM",
			FirstName: "John",
			LastName:  "Roe",
			Status:    teetime.StatusReserved,
			Position:  2,
			CreatedAt: time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rs))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, store.SheetColumns, rows[0])
	assert.Equal(t, []string{
		"2025-06-01T14:30:00Z", "Saturday", "8:00 AM", "Jane", "Doe", "USA", "jane@example.com", "reserved", "1",
	}, rows[1])
	assert.Equal(t, "John", rows[2][3])
	assert.Equal(t, "2", rows[2][8])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
