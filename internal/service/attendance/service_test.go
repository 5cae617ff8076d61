package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/domain/settings"
)

type fakePunchRepo struct {
	records map[string]attendance.PunchRecord
}

func newFakePunchRepo() *fakePunchRepo {
	return &fakePunchRepo{records: make(map[string]attendance.PunchRecord)}
}

func punchKey(name string, date time.Time) string {
	return name + "|" + date.Format("2006-01-02")
}

func (r *fakePunchRepo) Upsert(_ context.Context, record attendance.PunchRecord) error {
	r.records[punchKey(record.EmployeeName, record.Date)] = record
	return nil
}

func (r *fakePunchRepo) GetByEmployeeAndDate(_ context.Context, name string, date time.Time) (attendance.PunchRecord, error) {
	record, ok := r.records[punchKey(name, date)]
	if !ok {
		return attendance.PunchRecord{}, attendance.ErrRecordNotFound
	}
	return record, nil
}

func (r *fakePunchRepo) ListByEmployeeAndMonth(_ context.Context, name string, year, month int) ([]attendance.PunchRecord, error) {
	var out []attendance.PunchRecord
	for _, record := range r.records {
		if record.EmployeeName == name && record.Date.Year() == year && int(record.Date.Month()) == month {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeSettingsRepo struct{}

func (fakeSettingsRepo) Get(context.Context) (settings.Settings, error) {
	return settings.Settings{
		AttendanceAdmin:    "Admin Gao",
		OvertimeHourlyRate: decimal.NewFromInt(15),
		IncentiveBonus:     decimal.NewFromInt(200),
	}, nil
}

func (fakeSettingsRepo) Update(context.Context, settings.Settings) error { return nil }

type regenCall struct {
	employee   string
	department string
	year       int
	month      int
}

type fakeSuggestionService struct {
	calls []regenCall
}

func (s *fakeSuggestionService) Regenerate(_ context.Context, employee, department string, year, month int) error {
	s.calls = append(s.calls, regenCall{employee, department, year, month})
	return nil
}

func (s *fakeSuggestionService) ListSuggestions(context.Context, string, int, int) ([]attendance.SuggestionView, error) {
	return nil, nil
}

func (s *fakeSuggestionService) Exceptions(context.Context, string, int, int) ([]attendance.SuggestionView, error) {
	return nil, nil
}

func sheet(t *testing.T, rows [][]string) io.Reader {
	t.Helper()
	wb := excelize.NewFile()
	header := []interface{}{"employee_id", "employee_name", "department", "date"}
	for i := 1; i <= attendance.MaxPunchesPerDay; i++ {
		header = append(header, fmt.Sprintf("time_%d", i))
	}
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &header))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		require.NoError(t, wb.SetSheetRow("Sheet1", fmt.Sprintf("A%d", i+2), &cells))
	}
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestIngestIsAdminOnly(t *testing.T) {
	svc := NewIngestService(newFakePunchRepo(), fakeSettingsRepo{}, &fakeSuggestionService{})

	_, err := svc.IngestPunches(context.Background(), "Zhou Wei", bytes.NewReader(nil))
	assert.ErrorIs(t, err, attendance.ErrUploadsAdminOnly)
}

func TestIngestUpsertsAndRegeneratesPerMonth(t *testing.T) {
	punches := newFakePunchRepo()
	suggestions := &fakeSuggestionService{}
	svc := NewIngestService(punches, fakeSettingsRepo{}, suggestions)

	summary, err := svc.IngestPunches(context.Background(), "Admin Gao", sheet(t, [][]string{
		{"1001", "Zhou Wei", "Power Generation", "2025-03-03", "08:05:00", "12:00:00", "13:00:00", "17:30:00"},
		{"1001", "Zhou Wei", "Power Generation", "2025-03-04", "08:00:00", "17:00:00"},
		{"1002", "Sun Li", "Maintenance", "2025-04-01", "08:00:00", "17:00:00"},
	}))
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 2, summary.Employees)
	assert.Equal(t, 2, summary.Months)

	record, err := punches.GetByEmployeeAndDate(context.Background(), "Zhou Wei",
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, record.Times, 4)
	assert.Equal(t, time.Date(2025, 3, 3, 8, 5, 0, 0, time.UTC), record.Times[0])

	// one regeneration per touched employee-month, not per row
	assert.Len(t, suggestions.calls, 2)
	assert.Contains(t, suggestions.calls, regenCall{"Zhou Wei", "Power Generation", 2025, 3})
	assert.Contains(t, suggestions.calls, regenCall{"Sun Li", "Maintenance", 2025, 4})
}

func TestReuploadOverwritesEmployeeDay(t *testing.T) {
	punches := newFakePunchRepo()
	svc := NewIngestService(punches, fakeSettingsRepo{}, &fakeSuggestionService{})

	_, err := svc.IngestPunches(context.Background(), "Admin Gao", sheet(t, [][]string{
		{"1001", "Zhou Wei", "Power Generation", "2025-03-03", "08:05:00", "12:00:00", "13:00:00", "17:30:00"},
	}))
	require.NoError(t, err)

	_, err = svc.IngestPunches(context.Background(), "Admin Gao", sheet(t, [][]string{
		{"1001", "Zhou Wei", "Power Generation", "2025-03-03", "08:00:00", "17:00:00"},
	}))
	require.NoError(t, err)

	record, err := punches.GetByEmployeeAndDate(context.Background(), "Zhou Wei",
		time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, record.Times, 2)
}

func TestEmptySheetIsRejected(t *testing.T) {
	svc := NewIngestService(newFakePunchRepo(), fakeSettingsRepo{}, &fakeSuggestionService{})

	_, err := svc.IngestPunches(context.Background(), "Admin Gao", sheet(t, nil))
	assert.ErrorIs(t, err, attendance.ErrEmptySheet)
}
