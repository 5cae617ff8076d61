package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/plantops/attendance-backend-go/internal/domain/trip"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
)

type tripRequestRepositoryImpl struct {
	db *database.DB
}

func NewTripRequestRepository(db *database.DB) trip.Repository {
	return &tripRequestRepositoryImpl{db: db}
}

const tripRequestColumns = `id, applicant, department, target_unit, location,
	assigned_at, planned_return_at, departed_at, returned_at,
	room_director_status, room_director_decided_at,
	dept_leader_status, dept_leader_decided_at,
	reject_reason, submitted_at`

func scanTripRequest(row pgx.Row) (trip.Request, error) {
	var tr trip.Request
	err := row.Scan(
		&tr.ID,
		&tr.Applicant,
		&tr.Department,
		&tr.TargetUnit,
		&tr.Location,
		&tr.AssignedAt,
		&tr.PlannedReturnAt,
		&tr.DepartedAt,
		&tr.ReturnedAt,
		&tr.RoomDirectorStatus,
		&tr.RoomDirectorDecidedAt,
		&tr.DeptLeaderStatus,
		&tr.DeptLeaderDecidedAt,
		&tr.RejectReason,
		&tr.SubmittedAt,
	)
	return tr, err
}

func (r *tripRequestRepositoryImpl) Create(ctx context.Context, request trip.Request) (trip.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO business_trip_requests (
			id, applicant, department, target_unit, location,
			assigned_at, planned_return_at,
			room_director_status, dept_leader_status,
			reject_reason, submitted_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7,
			$8, $9,
			$10, $11
		)
		RETURNING ` + tripRequestColumns

	return scanTripRequest(q.QueryRow(ctx, query,
		request.ID,
		request.Applicant,
		request.Department,
		request.TargetUnit,
		request.Location,
		request.AssignedAt,
		request.PlannedReturnAt,
		request.RoomDirectorStatus,
		request.DeptLeaderStatus,
		request.RejectReason,
		request.SubmittedAt,
	))
}

func (r *tripRequestRepositoryImpl) GetByID(ctx context.Context, id string) (trip.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + tripRequestColumns + ` FROM business_trip_requests WHERE id = $1`

	request, err := scanTripRequest(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return trip.Request{}, trip.ErrRequestNotFound
	}
	return request, err
}

func (r *tripRequestRepositoryImpl) ListByApplicant(ctx context.Context, applicant string) ([]trip.Request, error) {
	query := `
		SELECT ` + tripRequestColumns + `
		FROM business_trip_requests
		WHERE applicant = $1
		ORDER BY submitted_at DESC
	`
	return r.list(ctx, query, applicant)
}

func (r *tripRequestRepositoryImpl) ListPendingByDepartment(ctx context.Context, department string) ([]trip.Request, error) {
	// not yet dual-approved; an empty department means every department
	query := `
		SELECT ` + tripRequestColumns + `
		FROM business_trip_requests
		WHERE NOT (room_director_status = $1 AND dept_leader_status = $1)
		  AND ($2 = '' OR department = $2)
		ORDER BY submitted_at
	`
	return r.list(ctx, query, trip.TrackApproved, department)
}

func (r *tripRequestRepositoryImpl) ListByApplicantInRange(ctx context.Context, applicant string, from, to time.Time) ([]trip.Request, error) {
	query := `
		SELECT ` + tripRequestColumns + `
		FROM business_trip_requests
		WHERE applicant = $1
		  AND assigned_at < $3
		  AND COALESCE(returned_at, planned_return_at) > $2
		ORDER BY assigned_at
	`
	return r.list(ctx, query, applicant, from, to)
}

func (r *tripRequestRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]trip.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []trip.Request
	for rows.Next() {
		tr, err := scanTripRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, tr)
	}
	return requests, rows.Err()
}

func (r *tripRequestRepositoryImpl) Update(ctx context.Context, request trip.Request) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE business_trip_requests
		SET departed_at = $2, returned_at = $3,
			room_director_status = $4, room_director_decided_at = $5,
			dept_leader_status = $6, dept_leader_decided_at = $7,
			reject_reason = $8
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query,
		request.ID,
		request.DepartedAt,
		request.ReturnedAt,
		request.RoomDirectorStatus,
		request.RoomDirectorDecidedAt,
		request.DeptLeaderStatus,
		request.DeptLeaderDecidedAt,
		request.RejectReason,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return trip.ErrRequestNotFound
	}
	return nil
}

func (r *tripRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM business_trip_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return trip.ErrRequestNotFound
	}
	return nil
}
