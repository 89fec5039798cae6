package store

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const DefaultWorksheet = "Reservations"

// SheetColumns is the column contract of the exported sheet. Do not reorder.
var SheetColumns = []string{"timestamp_utc", "day", "tee_time", "first_name", "last_name", "country", "email", "status", "slot"}

var (
	spreadsheetURLPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9_-]+)`)
	spreadsheetIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// SheetsStore keeps one reservation per row of a single worksheet. There is no index: every read
// and every cancellation scans all rows. The sheet has no tournament column, so tournament filters
// are ignored and listed reservations carry an empty Tournament.
type SheetsStore struct {
	service       *sheets.Service
	spreadsheetID string
	worksheet     string

	mu          sync.Mutex
	headerReady bool
}

// NewSheetsService builds an authenticated Sheets client from a service account key file.
func NewSheetsService(ctx context.Context, credentialsFile string) (*sheets.Service, error) {
	credentialsJSON, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets service: %w", err)
	}
	return srv, nil
}

// ParseSpreadsheetID accepts either a spreadsheet URL or a bare spreadsheet ID.
func ParseSpreadsheetID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if m := spreadsheetURLPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}
	if spreadsheetIDPattern.MatchString(ref) {
		return ref, nil
	}
	return "", fmt.Errorf("not a spreadsheet URL or ID: %q", ref)
}

func NewSheetsStore(service *sheets.Service, spreadsheetID, worksheet string) *SheetsStore {
	if worksheet == "" {
		worksheet = DefaultWorksheet
	}
	return &SheetsStore{service: service, spreadsheetID: spreadsheetID, worksheet: worksheet}
}

// EnsureHeader writes the column header into an empty worksheet and checks it otherwise.
func (s *SheetsStore) EnsureHeader(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.headerReady {
		return nil
	}

	vr, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.worksheet+"!A1:I1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	if len(vr.Values) == 0 || len(vr.Values[0]) == 0 {
		header := make([]interface{}, len(SheetColumns))
		for i, c := range SheetColumns {
			header[i] = c
		}
		_, err := s.service.Spreadsheets.Values.Update(s.spreadsheetID, s.worksheet+"!A1:I1", &sheets.ValueRange{
			Values: [][]interface{}{header},
		}).ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	} else {
		for i, c := range SheetColumns {
			if !strings.EqualFold(cell(vr.Values[0], i), c) {
				return fmt.Errorf("worksheet %s: column %d is %q, expected %q", s.worksheet, i+1, cell(vr.Values[0], i), c)
			}
		}
	}

	s.headerReady = true
	return nil
}

func (s *SheetsStore) List(ctx context.Context, q teetime.Query) ([]teetime.Reservation, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}

	q.Tournament = ""
	var out []teetime.Reservation
	for _, row := range rows {
		if q.Matches(row.Reservation) {
			out = append(out, row.Reservation)
		}
	}
	return out, nil
}

func (s *SheetsStore) Create(ctx context.Context, r *teetime.Reservation) error {
	if err := s.EnsureHeader(ctx); err != nil {
		return err
	}

	row := []interface{}{
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.Day,
		r.TeeTime,
		r.FirstName,
		r.LastName,
		r.Country,
		r.Email,
		string(r.Status),
		r.Position,
	}
	_, err := s.service.Spreadsheets.Values.Append(s.spreadsheetID, s.worksheet+"!A:I", &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// Delete removes the first row holding r's player at r's tee time, and the position when r has one.
func (s *SheetsStore) Delete(ctx context.Context, r teetime.Reservation) error {
	rows, err := s.rows(ctx)
	if err != nil {
		return err
	}

	target := -1
	for _, row := range rows {
		if row.Day != r.Day || teetime.NormalizeTeeTime(row.TeeTime) != teetime.NormalizeTeeTime(r.TeeTime) {
			continue
		}
		if !row.SameGolfer(r.FirstName, r.LastName) {
			continue
		}
		if r.Position != 0 && row.Position != r.Position {
			continue
		}
		target = row.index
		break
	}
	if target < 0 {
		return teetime.ErrReservationNotFound
	}

	sheetID, err := s.sheetID(ctx)
	if err != nil {
		return err
	}

	_, err = s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(target),
					EndIndex:   int64(target + 1),
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("delete row %d: %w", target+1, err)
	}
	return nil
}

type sheetRow struct {
	teetime.Reservation
	// index is the zero-based row index within the worksheet, header included.
	index int
}

func (s *SheetsStore) rows(ctx context.Context) ([]sheetRow, error) {
	vr, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.worksheet+"!A2:I").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	out := make([]sheetRow, 0, len(vr.Values))
	for i, values := range vr.Values {
		first, last := cell(values, 3), cell(values, 4)
		if first == "" && last == "" {
			continue
		}
		createdAt, _ := time.Parse(time.RFC3339, cell(values, 0))
		position, _ := strconv.Atoi(cell(values, 8))
		status := teetime.Status(cell(values, 7))
		if status == "" {
			status = teetime.StatusReserved
		}
		out = append(out, sheetRow{
			index: i + 1,
			Reservation: teetime.Reservation{
				CreatedAt: createdAt,
				Day:       cell(values, 1),
				TeeTime:   cell(values, 2),
				FirstName: first,
				LastName:  last,
				Country:   cell(values, 5),
				Email:     cell(values, 6),
				Status:    status,
				Position:  position,
			},
		})
	}
	return out, nil
}

func (s *SheetsStore) sheetID(ctx context.Context) (int64, error) {
	ss, err := s.service.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("read spreadsheet: %w", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == s.worksheet {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("worksheet %q not found", s.worksheet)
}

func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[i]))
}
