package excel

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
)

// Punch sheet layout: a header row followed by one row per employee-day.
// Columns are employee_id, employee_name, department, date and up to ten
// punch time columns. Empty punch cells end the row's punch list.
const punchHeaderColumns = 4

// ParsePunchWorkbook reads the first sheet of an uploaded workbook into
// punch rows. Rows with no punches at all are skipped; malformed date or
// time cells fail the whole upload so a bad sheet never half-ingests.
func ParsePunchWorkbook(r io.Reader) ([]attendance.PunchRow, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, attendance.ErrEmptySheet
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) <= 1 {
		return nil, attendance.ErrEmptySheet
	}

	out := make([]attendance.PunchRow, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		row, ok, err := parsePunchRow(cells)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if ok {
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return nil, attendance.ErrEmptySheet
	}
	return out, nil
}

func parsePunchRow(cells []string) (attendance.PunchRow, bool, error) {
	if blankRow(cells) {
		return attendance.PunchRow{}, false, nil
	}
	if len(cells) < punchHeaderColumns {
		return attendance.PunchRow{}, false, fmt.Errorf("expected at least %d columns, got %d", punchHeaderColumns, len(cells))
	}

	row := attendance.PunchRow{
		EmployeeID:   strings.TrimSpace(cells[0]),
		EmployeeName: strings.TrimSpace(cells[1]),
		Department:   strings.TrimSpace(cells[2]),
	}
	if row.EmployeeID == "" || row.EmployeeName == "" {
		return attendance.PunchRow{}, false, fmt.Errorf("employee_id and employee_name are required")
	}

	date, err := parseDateCell(cells[3])
	if err != nil {
		return attendance.PunchRow{}, false, fmt.Errorf("date column: %w", err)
	}
	row.Date = date

	limit := punchHeaderColumns + attendance.MaxPunchesPerDay
	if limit > len(cells) {
		limit = len(cells)
	}
	for _, cell := range cells[punchHeaderColumns:limit] {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			break
		}
		punch, err := parseTimeCell(date, cell)
		if err != nil {
			return attendance.PunchRow{}, false, err
		}
		row.Times = append(row.Times, punch)
	}
	if len(row.Times) == 0 {
		return attendance.PunchRow{}, false, nil
	}
	// sheets sometimes carry punches out of column order
	sort.Slice(row.Times, func(i, j int) bool { return row.Times[i].Before(row.Times[j]) })
	return row, true, nil
}

func parseDateCell(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	for _, layout := range []string{"2006-01-02", "2006/01/02", "01-02-06"} {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
}

func parseTimeCell(date time.Time, cell string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, cell); err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", cell)
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
