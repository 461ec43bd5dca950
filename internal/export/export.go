// Package export renders a user's entries as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"finance-tracker/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "entries"

var header = []string{"id", "description", "month", "year", "amount", "type", "status", "registered_at"}

// ParseFormat resolves a format name case-insensitively; empty means csv.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", raw)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Extension() string {
	return string(f)
}

// Write renders entries to w in the given format.
func Write(w io.Writer, format Format, entries []domain.Entry) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, entries)
	case FormatXLSX:
		return writeXLSX(w, entries)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func writeCSV(w io.Writer, entries []domain.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(record(e)); err != nil {
			return fmt.Errorf("write csv row %d: %w", e.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, entries []domain.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, header)
	for _, e := range entries {
		rows = append(rows, record(e))
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func record(e domain.Entry) []string {
	row := []string{
		strconv.FormatInt(e.ID, 10),
		e.Description,
		optionalInt(e.Month),
		optionalInt(e.Year),
		"",
		string(e.Type),
		string(e.Status),
		"",
	}
	if e.Amount != nil {
		row[4] = e.Amount.String()
	}
	if e.RegisteredAt != nil {
		row[7] = e.RegisteredAt.Format(time.DateOnly)
	}
	return row
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
