package postgresql

import (
	"context"
	"fmt"

	"github.com/plantops/attendance-backend-go/internal/pkg/database"
)

// Migrate creates the schema before the server accepts traffic. Statements
// are idempotent; running them on every boot is the deployment model.
func Migrate(ctx context.Context, db *database.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS employees (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			title TEXT NOT NULL,
			department TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_active_name
			ON employees (name) WHERE status = 'active'`,

		`CREATE TABLE IF NOT EXISTS leave_requests (
			id UUID PRIMARY KEY,
			applicant TEXT NOT NULL,
			department TEXT NOT NULL,
			category TEXT NOT NULL,
			shift TEXT NOT NULL DEFAULT '',
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			duration_days DOUBLE PRECISION NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			first_approver TEXT NOT NULL,
			second_approver TEXT NOT NULL DEFAULT '',
			needs_second_approval BOOLEAN NOT NULL DEFAULT FALSE,
			status INTEGER NOT NULL,
			reject_reason TEXT NOT NULL DEFAULT '',
			submitted_at TIMESTAMPTZ NOT NULL,
			first_decided_at TIMESTAMPTZ,
			second_decided_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_leave_requests_applicant
			ON leave_requests (applicant)`,

		`CREATE TABLE IF NOT EXISTS overtime_requests (
			id UUID PRIMARY KEY,
			applicant TEXT NOT NULL,
			department TEXT NOT NULL,
			date DATE NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			first_approver TEXT NOT NULL,
			second_approver TEXT NOT NULL DEFAULT '',
			needs_second_approval BOOLEAN NOT NULL DEFAULT FALSE,
			final_approver TEXT NOT NULL DEFAULT '',
			wants_ticket BOOLEAN NOT NULL DEFAULT FALSE,
			status INTEGER NOT NULL,
			hours DOUBLE PRECISION NOT NULL,
			pay_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
			tickets DOUBLE PRECISION NOT NULL DEFAULT 0,
			reject_reason TEXT NOT NULL DEFAULT '',
			submitted_at TIMESTAMPTZ NOT NULL,
			first_decided_at TIMESTAMPTZ,
			second_decided_at TIMESTAMPTZ,
			final_decided_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_overtime_requests_applicant_date
			ON overtime_requests (applicant, date)`,

		`CREATE TABLE IF NOT EXISTS business_trip_requests (
			id UUID PRIMARY KEY,
			applicant TEXT NOT NULL,
			department TEXT NOT NULL,
			target_unit TEXT NOT NULL,
			location TEXT NOT NULL,
			assigned_at TIMESTAMPTZ NOT NULL,
			planned_return_at TIMESTAMPTZ NOT NULL,
			departed_at TIMESTAMPTZ,
			returned_at TIMESTAMPTZ,
			room_director_status INTEGER NOT NULL,
			room_director_decided_at TIMESTAMPTZ,
			dept_leader_status INTEGER NOT NULL,
			dept_leader_decided_at TIMESTAMPTZ,
			reject_reason TEXT NOT NULL DEFAULT '',
			submitted_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_business_trip_requests_applicant
			ON business_trip_requests (applicant)`,

		`CREATE TABLE IF NOT EXISTS exchange_ticket_ledger (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			employee TEXT NOT NULL,
			quantity DOUBLE PRECISION NOT NULL,
			acquired_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exchange_ticket_ledger_employee
			ON exchange_ticket_ledger (employee)`,

		`CREATE TABLE IF NOT EXISTS punch_records (
			employee_id TEXT NOT NULL,
			employee_name TEXT NOT NULL,
			department TEXT NOT NULL,
			date DATE NOT NULL,
			time_1 TIMESTAMPTZ, time_2 TIMESTAMPTZ, time_3 TIMESTAMPTZ,
			time_4 TIMESTAMPTZ, time_5 TIMESTAMPTZ, time_6 TIMESTAMPTZ,
			time_7 TIMESTAMPTZ, time_8 TIMESTAMPTZ, time_9 TIMESTAMPTZ,
			time_10 TIMESTAMPTZ,
			PRIMARY KEY (employee_id, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_punch_records_name_date
			ON punch_records (employee_name, date)`,

		`CREATE TABLE IF NOT EXISTS suggestions (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			employee_name TEXT NOT NULL,
			department TEXT NOT NULL,
			year INTEGER NOT NULL,
			month INTEGER NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			status INTEGER NOT NULL,
			message TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_suggestions_employee_month
			ON suggestions (employee_name, department, year, month)`,

		`CREATE TABLE IF NOT EXISTS holidays (
			year INTEGER NOT NULL,
			date DATE NOT NULL,
			type TEXT NOT NULL,
			festival TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (year, date)
		)`,

		`CREATE TABLE IF NOT EXISTS settings (
			id BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (id),
			attendance_admin TEXT NOT NULL DEFAULT '',
			overtime_hourly_rate NUMERIC(10,2) NOT NULL DEFAULT 15,
			incentive_bonus NUMERIC(10,2) NOT NULL DEFAULT 200
		)`,
		`INSERT INTO settings (id) VALUES (TRUE) ON CONFLICT (id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}
	return nil
}
