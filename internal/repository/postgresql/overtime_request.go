package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/plantops/attendance-backend-go/internal/domain/overtime"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
)

type overtimeRequestRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRequestRepository(db *database.DB) overtime.Repository {
	return &overtimeRequestRepositoryImpl{db: db}
}

const overtimeRequestColumns = `id, applicant, department, date, start_time, end_time,
	first_approver, second_approver, needs_second_approval, final_approver, wants_ticket,
	status, hours, pay_hours, tickets, reject_reason, submitted_at,
	first_decided_at, second_decided_at, final_decided_at`

func scanOvertimeRequest(row pgx.Row) (overtime.Request, error) {
	var or overtime.Request
	err := row.Scan(
		&or.ID,
		&or.Applicant,
		&or.Department,
		&or.Date,
		&or.StartTime,
		&or.EndTime,
		&or.FirstApprover,
		&or.SecondApprover,
		&or.NeedsSecondApproval,
		&or.FinalApprover,
		&or.WantsTicket,
		&or.Status,
		&or.Hours,
		&or.PayHours,
		&or.Tickets,
		&or.RejectReason,
		&or.SubmittedAt,
		&or.FirstDecidedAt,
		&or.SecondDecidedAt,
		&or.FinalDecidedAt,
	)
	// stored rows from before the status backfill read as legacy zero
	or.Status = overtime.NormalizeStatus(int(or.Status))
	return or, err
}

func (r *overtimeRequestRepositoryImpl) Create(ctx context.Context, request overtime.Request) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO overtime_requests (
			id, applicant, department, date, start_time, end_time,
			first_approver, second_approver, needs_second_approval, final_approver, wants_ticket,
			status, hours, pay_hours, tickets, reject_reason, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17
		)
		RETURNING ` + overtimeRequestColumns

	return scanOvertimeRequest(q.QueryRow(ctx, query,
		request.ID,
		request.Applicant,
		request.Department,
		request.Date,
		request.StartTime,
		request.EndTime,
		request.FirstApprover,
		request.SecondApprover,
		request.NeedsSecondApproval,
		request.FinalApprover,
		request.WantsTicket,
		request.Status,
		request.Hours,
		request.PayHours,
		request.Tickets,
		request.RejectReason,
		request.SubmittedAt,
	))
}

func (r *overtimeRequestRepositoryImpl) GetByID(ctx context.Context, id string) (overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overtimeRequestColumns + ` FROM overtime_requests WHERE id = $1`

	request, err := scanOvertimeRequest(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return overtime.Request{}, overtime.ErrRequestNotFound
	}
	return request, err
}

func (r *overtimeRequestRepositoryImpl) ListByApplicant(ctx context.Context, applicant string, status *overtime.Status) ([]overtime.Request, error) {
	query := `SELECT ` + overtimeRequestColumns + ` FROM overtime_requests WHERE applicant = $1`
	args := []any{applicant}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY submitted_at DESC`

	return r.list(ctx, query, args...)
}

func (r *overtimeRequestRepositoryImpl) ListPendingForApprover(ctx context.Context, approver string) ([]overtime.Request, error) {
	query := `
		SELECT ` + overtimeRequestColumns + `
		FROM overtime_requests
		WHERE (status = $1 AND first_approver = $2)
		   OR (status = $3 AND second_approver = $2)
		ORDER BY submitted_at
	`
	return r.list(ctx, query, overtime.StatusAwaitingFirst, approver, overtime.StatusAwaitingSecond)
}

func (r *overtimeRequestRepositoryImpl) ListPendingFinal(ctx context.Context) ([]overtime.Request, error) {
	query := `
		SELECT ` + overtimeRequestColumns + `
		FROM overtime_requests
		WHERE status = $1
		ORDER BY submitted_at
	`
	return r.list(ctx, query, overtime.StatusAwaitingFinal)
}

func (r *overtimeRequestRepositoryImpl) ListByApplicantInRange(ctx context.Context, applicant string, from, to time.Time) ([]overtime.Request, error) {
	query := `
		SELECT ` + overtimeRequestColumns + `
		FROM overtime_requests
		WHERE applicant = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`
	return r.list(ctx, query, applicant, from, to)
}

func (r *overtimeRequestRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]overtime.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []overtime.Request
	for rows.Next() {
		or, err := scanOvertimeRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, or)
	}
	return requests, rows.Err()
}

func (r *overtimeRequestRepositoryImpl) Update(ctx context.Context, request overtime.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE overtime_requests
		SET status = $2, final_approver = $3, pay_hours = $4, tickets = $5, reject_reason = $6,
			first_decided_at = $7, second_decided_at = $8, final_decided_at = $9
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		request.ID,
		request.Status,
		request.FinalApprover,
		request.PayHours,
		request.Tickets,
		request.RejectReason,
		request.FirstDecidedAt,
		request.SecondDecidedAt,
		request.FinalDecidedAt,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return overtime.ErrRequestNotFound
	}
	return nil
}

func (r *overtimeRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM overtime_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return overtime.ErrRequestNotFound
	}
	return nil
}
