package postgresql

import (
	"context"

	"github.com/plantops/attendance-backend-go/internal/domain/attendance"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
)

type suggestionRepositoryImpl struct {
	db *database.DB
}

func NewSuggestionRepository(db *database.DB) attendance.SuggestionRepository {
	return &suggestionRepositoryImpl{db: db}
}

const suggestionColumns = `id, employee_name, department, year, month, start_time, end_time, status, message`

// ReplaceForMonth deletes the employee-month's suggestions and inserts the
// fresh set in one transaction, so a regeneration never leaves a partial
// mix of old and new rows behind.
func (r *suggestionRepositoryImpl) ReplaceForMonth(ctx context.Context, employeeName, department string, year, month int, suggestions []attendance.Suggestion) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		deleteQuery := `
			DELETE FROM suggestions
			WHERE employee_name = $1 AND department = $2 AND year = $3 AND month = $4
		`
		if _, err := q.Exec(ctx, deleteQuery, employeeName, department, year, month); err != nil {
			return err
		}

		insertQuery := `
			INSERT INTO suggestions (employee_name, department, year, month, start_time, end_time, status, message)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		for _, s := range suggestions {
			_, err := q.Exec(ctx, insertQuery,
				s.EmployeeName,
				s.Department,
				s.Year,
				s.Month,
				s.StartTime,
				s.EndTime,
				s.Status,
				s.Message,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *suggestionRepositoryImpl) ListByEmployeeAndMonth(ctx context.Context, employeeName string, year, month int) ([]attendance.Suggestion, error) {
	query := `
		SELECT ` + suggestionColumns + `
		FROM suggestions
		WHERE employee_name = $1 AND year = $2 AND month = $3
		ORDER BY start_time
	`
	return r.list(ctx, query, employeeName, year, month)
}

func (r *suggestionRepositoryImpl) ListByMonth(ctx context.Context, year, month int) ([]attendance.Suggestion, error) {
	query := `
		SELECT ` + suggestionColumns + `
		FROM suggestions
		WHERE year = $1 AND month = $2
		ORDER BY department, employee_name, start_time
	`
	return r.list(ctx, query, year, month)
}

func (r *suggestionRepositoryImpl) ListByDepartmentAndMonth(ctx context.Context, department string, year, month int) ([]attendance.Suggestion, error) {
	query := `
		SELECT ` + suggestionColumns + `
		FROM suggestions
		WHERE department = $1 AND year = $2 AND month = $3
		ORDER BY employee_name, start_time
	`
	return r.list(ctx, query, department, year, month)
}

func (r *suggestionRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]attendance.Suggestion, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []attendance.Suggestion
	for rows.Next() {
		var s attendance.Suggestion
		err := rows.Scan(
			&s.ID,
			&s.EmployeeName,
			&s.Department,
			&s.Year,
			&s.Month,
			&s.StartTime,
			&s.EndTime,
			&s.Status,
			&s.Message,
		)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}
