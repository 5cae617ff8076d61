package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/plantops/attendance-backend-go/internal/domain/leave"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.Repository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `id, applicant, department, category, shift, start_time, end_time,
	duration_days, reason, first_approver, second_approver, needs_second_approval,
	status, reject_reason, submitted_at, first_decided_at, second_decided_at`

func scanLeaveRequest(row pgx.Row) (leave.Request, error) {
	var lr leave.Request
	err := row.Scan(
		&lr.ID,
		&lr.Applicant,
		&lr.Department,
		&lr.Category,
		&lr.Shift,
		&lr.StartTime,
		&lr.EndTime,
		&lr.DurationDays,
		&lr.Reason,
		&lr.FirstApprover,
		&lr.SecondApprover,
		&lr.NeedsSecondApproval,
		&lr.Status,
		&lr.RejectReason,
		&lr.SubmittedAt,
		&lr.FirstDecidedAt,
		&lr.SecondDecidedAt,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.Request) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, applicant, department, category, shift, start_time, end_time,
			duration_days, reason, first_approver, second_approver, needs_second_approval,
			status, reject_reason, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15
		)
		RETURNING ` + leaveRequestColumns

	return scanLeaveRequest(q.QueryRow(ctx, query,
		request.ID,
		request.Applicant,
		request.Department,
		request.Category,
		request.Shift,
		request.StartTime,
		request.EndTime,
		request.DurationDays,
		request.Reason,
		request.FirstApprover,
		request.SecondApprover,
		request.NeedsSecondApproval,
		request.Status,
		request.RejectReason,
		request.SubmittedAt,
	))
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE id = $1`

	request, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.Request{}, leave.ErrRequestNotFound
	}
	return request, err
}

func (r *leaveRequestRepositoryImpl) ListByApplicant(ctx context.Context, applicant string, status *leave.Status) ([]leave.Request, error) {
	query := `SELECT ` + leaveRequestColumns + ` FROM leave_requests WHERE applicant = $1`
	args := []any{applicant}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY submitted_at DESC`

	return r.list(ctx, query, args...)
}

func (r *leaveRequestRepositoryImpl) ListPendingForApprover(ctx context.Context, approver string) ([]leave.Request, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE (status = $1 AND first_approver = $2)
		   OR (status = $3 AND second_approver = $2)
		ORDER BY submitted_at
	`
	return r.list(ctx, query, leave.StatusAwaitingFirst, approver, leave.StatusAwaitingSecond)
}

func (r *leaveRequestRepositoryImpl) ListByApplicantInRange(ctx context.Context, applicant string, from, to time.Time) ([]leave.Request, error) {
	query := `
		SELECT ` + leaveRequestColumns + `
		FROM leave_requests
		WHERE applicant = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`
	return r.list(ctx, query, applicant, from, to)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]leave.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.Request
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $2, reject_reason = $3, first_decided_at = $4, second_decided_at = $5
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		request.ID,
		request.Status,
		request.RejectReason,
		request.FirstDecidedAt,
		request.SecondDecidedAt,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrRequestNotFound
	}
	return nil
}
