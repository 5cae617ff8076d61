package attendance

import (
	"context"
	"fmt"
	"io"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/domain/settings"
	"github.com/plantops/attendance-backend-go/internal/pkg/excel"
	"github.com/plantops/attendance-backend-go/internal/pkg/metrics"
)

// IngestService accepts punch-sheet uploads, upserts the ledger and
// re-derives suggestions for every employee-month the sheet touched.
type IngestService struct {
	punchRepo    attendance.PunchRepository
	settingsRepo settings.Repository
	suggestions  attendance.SuggestionService
}

func NewIngestService(
	punchRepo attendance.PunchRepository,
	settingsRepo settings.Repository,
	suggestions attendance.SuggestionService,
) *IngestService {
	return &IngestService{
		punchRepo:    punchRepo,
		settingsRepo: settingsRepo,
		suggestions:  suggestions,
	}
}

// monthKey identifies one employee-month touched by an upload.
type monthKey struct {
	employee   string
	department string
	year       int
	month      int
}

// IngestPunches parses the sheet, overwrites each employee-day wholesale
// and regenerates suggestions once per touched employee-month. Only the
// attendance admin may upload.
func (s *IngestService) IngestPunches(ctx context.Context, actor string, sheet io.Reader) (attendance.IngestSummary, error) {
	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return attendance.IngestSummary{}, fmt.Errorf("load settings: %w", err)
	}
	if cfg.AttendanceAdmin != actor {
		return attendance.IngestSummary{}, attendance.ErrUploadsAdminOnly
	}

	rows, err := excel.ParsePunchWorkbook(sheet)
	if err != nil {
		return attendance.IngestSummary{}, err
	}

	touched := make(map[monthKey]bool)
	employees := make(map[string]bool)
	for _, row := range rows {
		record := attendance.PunchRecord{
			EmployeeID:   row.EmployeeID,
			EmployeeName: row.EmployeeName,
			Department:   row.Department,
			Date:         row.Date,
			Times:        row.Times,
		}
		if err := s.punchRepo.Upsert(ctx, record); err != nil {
			return attendance.IngestSummary{}, fmt.Errorf("upsert punch record: %w", err)
		}
		touched[monthKey{
			employee:   row.EmployeeName,
			department: row.Department,
			year:       row.Date.Year(),
			month:      int(row.Date.Month()),
		}] = true
		employees[row.EmployeeName] = true
	}
	metrics.PunchRowsIngested.Add(float64(len(rows)))

	for key := range touched {
		if err := s.suggestions.Regenerate(ctx, key.employee, key.department, key.year, key.month); err != nil {
			return attendance.IngestSummary{}, fmt.Errorf("regenerate suggestions for %s %d-%02d: %w",
				key.employee, key.year, key.month, err)
		}
	}

	return attendance.IngestSummary{
		Rows:      len(rows),
		Employees: len(employees),
		Months:    len(touched),
	}, nil
}
