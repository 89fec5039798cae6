package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AdamBeresnev/brisa-tee-times/internal/catalog"
	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheet serves the slice of the Sheets v4 API the store uses, backed by an in-memory grid.
type fakeSheet struct {
	mu   sync.Mutex
	rows [][]string
}

func (f *fakeSheet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/v4/spreadsheets/sheet-id")
	switch {
	case r.Method == http.MethodGet && path == "":
		json.NewEncoder(w).Encode(sheets.Spreadsheet{
			Sheets: []*sheets.Sheet{
				{Properties: &sheets.SheetProperties{Title: "Summary", SheetId: 0}},
				{Properties: &sheets.SheetProperties{Title: DefaultWorksheet, SheetId: 7}},
			},
		})

	case r.Method == http.MethodGet && path == "/values/Reservations!A1:I1":
		var values [][]interface{}
		if len(f.rows) > 0 {
			values = [][]interface{}{toInterfaces(f.rows[0])}
		}
		json.NewEncoder(w).Encode(sheets.ValueRange{Values: values})

	case r.Method == http.MethodGet && path == "/values/Reservations!A2:I":
		var values [][]interface{}
		for i := 1; i < len(f.rows); i++ {
			values = append(values, toInterfaces(f.rows[i]))
		}
		json.NewEncoder(w).Encode(sheets.ValueRange{Values: values})

	case r.Method == http.MethodPut && path == "/values/Reservations!A1:I1":
		var vr sheets.ValueRange
		json.NewDecoder(r.Body).Decode(&vr)
		header := toStrings(vr.Values[0])
		if len(f.rows) == 0 {
			f.rows = append(f.rows, header)
		} else {
			f.rows[0] = header
		}
		json.NewEncoder(w).Encode(sheets.UpdateValuesResponse{})

	case r.Method == http.MethodPost && path == "/values/Reservations!A:I:append":
		var vr sheets.ValueRange
		json.NewDecoder(r.Body).Decode(&vr)
		for _, row := range vr.Values {
			f.rows = append(f.rows, toStrings(row))
		}
		json.NewEncoder(w).Encode(sheets.AppendValuesResponse{})

	case r.Method == http.MethodPost && path == ":batchUpdate":
		var req sheets.BatchUpdateSpreadsheetRequest
		json.NewDecoder(r.Body).Decode(&req)
		for _, rq := range req.Requests {
			d := rq.DeleteDimension
			if d == nil || d.Range.SheetId != 7 || d.Range.Dimension != "ROWS" {
				http.Error(w, "unexpected request", http.StatusBadRequest)
				return
			}
			f.rows = append(f.rows[:d.Range.StartIndex], f.rows[d.Range.EndIndex:]...)
		}
		json.NewEncoder(w).Encode(sheets.BatchUpdateSpreadsheetResponse{})

	default:
		http.Error(w, "unexpected "+r.Method+" "+r.URL.Path, http.StatusNotFound)
	}
}

func toInterfaces(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func newSheetsTestStore(t *testing.T, fake *fakeSheet) *SheetsStore {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	srv, err := sheets.NewService(context.Background(), option.WithEndpoint(server.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)
	return NewSheetsStore(srv, "sheet-id", "")
}

func TestParseSpreadsheetID(t *testing.T) {
	id, err := ParseSpreadsheetID("https://docs.google.com/spreadsheets/d/1AbC-d_9/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbC-d_9", id)

	id, err = ParseSpreadsheetID(" 1AbC-d_9 ")
	require.NoError(t, err)
	assert.Equal(t, "1AbC-d_9", id)

	_, err = ParseSpreadsheetID("https://example.com/not a sheet")
	assert.Error(t, err)
}

func TestSheetsStore_CreateWritesHeaderAndColumnContract(t *testing.T) {
	fake := &fakeSheet{}
	store := newSheetsTestStore(t, fake)
	ctx := context.Background()

	slot := catalog.Generate(1, "U.S. Open", "Saturday", []string{"8:00 AM"})[0]
	r := reservationFor(slot, "Jane", "Doe", 2)
	r.Country = "US"
	r.Email = "jane@example.com"
	r.CreatedAt = time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	require.NoError(t, store.Create(ctx, r))

	require.Len(t, fake.rows, 2)
	assert.Equal(t, SheetColumns, fake.rows[0])
	assert.Equal(t, []string{"2025-06-01T14:30:00Z", "Saturday", "8:00 AM", "Jane", "Doe", "US", "jane@example.com", "reserved", "2"}, fake.rows[1])
}

func TestSheetsStore_EnsureHeaderRejectsForeignSheet(t *testing.T) {
	fake := &fakeSheet{rows: [][]string{{"ID", "Name"}}}
	store := newSheetsTestStore(t, fake)

	err := store.EnsureHeader(context.Background())
	assert.Error(t, err)
}

func TestSheetsStore_ListScansRows(t *testing.T) {
	fake := &fakeSheet{rows: [][]string{
		SheetColumns,
		{"2025-06-01T14:30:00Z", "Saturday", "8:00 AM", "Jane", "Doe", "US", "jane@example.com", "reserved", "1"},
		{"", "", "", "", ""},
		{"2025-06-01T14:31:00Z", "Saturday", "9:00 AM", "John", "Roe"},
		{"2025-06-01T14:32:00Z", "Sunday", "8:00 AM", "Ann", "Lee", "", "", "reserved", "1"},
	}}
	store := newSheetsTestStore(t, fake)
	ctx := context.Background()

	all, err := store.List(ctx, teetime.Query{Tournament: "ignored"})
	require.NoError(t, err)
	require.Len(t, all, 3)

	sat, err := store.List(ctx, teetime.Query{Day: "Saturday", TeeTime: "8:00 am"})
	require.NoError(t, err)
	require.Len(t, sat, 1)
	assert.Equal(t, "Jane", sat[0].FirstName)
	assert.Equal(t, 1, sat[0].Position)
	assert.Equal(t, time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC), sat[0].CreatedAt)

	short, err := store.List(ctx, teetime.Query{Day: "Saturday", TeeTime: "9:00 AM"})
	require.NoError(t, err)
	require.Len(t, short, 1)
	assert.Equal(t, teetime.StatusReserved, short[0].Status, "rows without a status count as reserved")
	assert.Zero(t, short[0].Position)
}

func TestSheetsStore_DeleteRemovesExactlyOneRow(t *testing.T) {
	fake := &fakeSheet{rows: [][]string{
		SheetColumns,
		{"2025-06-01T14:30:00Z", "Saturday", "8:00 AM", "Jane", "Doe", "", "", "reserved", "1"},
		{"2025-06-01T14:31:00Z", "Saturday", "8:00 AM", "John", "Roe", "", "", "reserved", "2"},
		{"2025-06-01T14:32:00Z", "Sunday", "8:00 AM", "John", "Roe", "", "", "reserved", "1"},
	}}
	store := newSheetsTestStore(t, fake)
	ctx := context.Background()

	err := store.Delete(ctx, teetime.Reservation{Day: "Saturday", TeeTime: "8:00 AM", FirstName: "john", LastName: "ROE"})
	require.NoError(t, err)

	require.Len(t, fake.rows, 3)
	assert.Equal(t, "Jane", fake.rows[1][3])
	assert.Equal(t, "Sunday", fake.rows[2][1])

	err = store.Delete(ctx, teetime.Reservation{Day: "Saturday", TeeTime: "8:00 AM", FirstName: "Jane", LastName: "Doe", Position: 3})
	assert.ErrorIs(t, err, teetime.ErrReservationNotFound)
	assert.Len(t, fake.rows, 3)
}
