package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
)

type punchRecordRepositoryImpl struct {
	db *database.DB
}

func NewPunchRecordRepository(db *database.DB) attendance.PunchRepository {
	return &punchRecordRepositoryImpl{db: db}
}

const punchRecordColumns = `employee_id, employee_name, department, date,
	time_1, time_2, time_3, time_4, time_5, time_6, time_7, time_8, time_9, time_10`

func scanPunchRecord(row pgx.Row) (attendance.PunchRecord, error) {
	var p attendance.PunchRecord
	slots := make([]*time.Time, attendance.MaxPunchesPerDay)
	dest := []any{&p.EmployeeID, &p.EmployeeName, &p.Department, &p.Date}
	for i := range slots {
		dest = append(dest, &slots[i])
	}
	if err := row.Scan(dest...); err != nil {
		return attendance.PunchRecord{}, err
	}
	for _, slot := range slots {
		if slot == nil {
			break
		}
		p.Times = append(p.Times, *slot)
	}
	return p, nil
}

func punchSlots(record attendance.PunchRecord) []any {
	slots := make([]any, attendance.MaxPunchesPerDay)
	for i := range slots {
		if i < len(record.Times) {
			slots[i] = record.Times[i]
		}
	}
	return slots
}

func (r *punchRecordRepositoryImpl) Upsert(ctx context.Context, record attendance.PunchRecord) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO punch_records (` + punchRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			department = EXCLUDED.department,
			time_1 = EXCLUDED.time_1, time_2 = EXCLUDED.time_2,
			time_3 = EXCLUDED.time_3, time_4 = EXCLUDED.time_4,
			time_5 = EXCLUDED.time_5, time_6 = EXCLUDED.time_6,
			time_7 = EXCLUDED.time_7, time_8 = EXCLUDED.time_8,
			time_9 = EXCLUDED.time_9, time_10 = EXCLUDED.time_10
	`

	args := []any{record.EmployeeID, record.EmployeeName, record.Department, record.Date}
	args = append(args, punchSlots(record)...)

	_, err := q.Exec(ctx, query, args...)
	return err
}

func (r *punchRecordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeName string, date time.Time) (attendance.PunchRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + punchRecordColumns + ` FROM punch_records WHERE employee_name = $1 AND date = $2`

	record, err := scanPunchRecord(q.QueryRow(ctx, query, employeeName, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.PunchRecord{}, attendance.ErrRecordNotFound
	}
	return record, err
}

func (r *punchRecordRepositoryImpl) ListByEmployeeAndMonth(ctx context.Context, employeeName string, year, month int) ([]attendance.PunchRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + punchRecordColumns + `
		FROM punch_records
		WHERE employee_name = $1
		  AND date >= $2 AND date < $3
		ORDER BY date
	`
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	rows, err := q.Query(ctx, query, employeeName, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []attendance.PunchRecord
	for rows.Next() {
		p, err := scanPunchRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}
