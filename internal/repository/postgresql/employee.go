package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/plantops/attendance-backend-go/internal/domain/directory"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) directory.Repository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, name, title, department, status, password_hash, created_at, updated_at`

func scanEmployee(row pgx.Row) (directory.Employee, error) {
	var e directory.Employee
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Title,
		&e.Department,
		&e.Status,
		&e.PasswordHash,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, employee directory.Employee) (directory.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, name, title, department, status, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING ` + employeeColumns

	return scanEmployee(q.QueryRow(ctx, query,
		employee.ID,
		employee.Name,
		employee.Title,
		employee.Department,
		employee.Status,
		employee.PasswordHash,
	))
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (directory.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	employee, err := scanEmployee(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return directory.Employee{}, directory.ErrEmployeeNotFound
	}
	return employee, err
}

func (r *employeeRepositoryImpl) GetActiveByName(ctx context.Context, name string) (directory.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE name = $1 AND status = 'active'`

	employee, err := scanEmployee(q.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return directory.Employee{}, directory.ErrEmployeeNotFound
	}
	return employee, err
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]directory.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = 'active' ORDER BY department, name`

	return r.list(ctx, q, query)
}

func (r *employeeRepositoryImpl) ListActiveByDepartment(ctx context.Context, department string) ([]directory.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = 'active' AND department = $1 ORDER BY name`

	return r.list(ctx, q, query, department)
}

func (r *employeeRepositoryImpl) list(ctx context.Context, q database.Querier, query string, args ...any) ([]directory.Employee, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []directory.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, employee directory.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET name = $2, title = $3, department = $4, password_hash = $5, updated_at = now()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		employee.ID,
		employee.Name,
		employee.Title,
		employee.Department,
		employee.PasswordHash,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return directory.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, status directory.EmploymentStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE employees SET status = $2, updated_at = now() WHERE id = $1`

	commandTag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return directory.ErrEmployeeNotFound
	}
	return nil
}
