package export

import (
	"fmt"
	"io"
	"time"

	"github.com/AdamBeresnev/brisa-tee-times/internal/store"
	"github.com/AdamBeresnev/brisa-tee-times/internal/teetime"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Reservations"

// Workbook lays the reservations out in the same column order as the reservations spreadsheet.
func Workbook(rs []teetime.Reservation) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(store.SheetColumns))
	for i, c := range store.SheetColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(store.SheetColumns))
		_ = f.SetCellStyle(SheetName, "A1", lastCol+"1", style)
	}

	for i, r := range rs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
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
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 22)
	_ = f.SetColWidth(SheetName, "B", "G", 16)
	return f, nil
}

func WriteXLSX(w io.Writer, rs []teetime.Reservation) error {
	f, err := Workbook(rs)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
