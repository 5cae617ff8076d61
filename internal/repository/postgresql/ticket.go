package postgresql

import (
	"context"
	"time"

	"github.com/plantops/attendance-backend-go/internal/domain/ticket"
	"github.com/plantops/attendance-backend-go/internal/pkg/database"
)

type ticketRepositoryImpl struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) ticket.Repository {
	return &ticketRepositoryImpl{db: db}
}

func (r *ticketRepositoryImpl) Create(ctx context.Context, entry ticket.Entry) (ticket.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO exchange_ticket_ledger (employee, quantity, acquired_at)
		VALUES ($1, $2, $3)
		RETURNING id, employee, quantity, acquired_at
	`

	var e ticket.Entry
	err := q.QueryRow(ctx, query, entry.Employee, entry.Quantity, entry.AcquiredAt).
		Scan(&e.ID, &e.Employee, &e.Quantity, &e.AcquiredAt)
	return e, err
}

func (r *ticketRepositoryImpl) ListByEmployeeForUpdate(ctx context.Context, employee string) ([]ticket.Entry, error) {
	query := `
		SELECT id, employee, quantity, acquired_at
		FROM exchange_ticket_ledger
		WHERE employee = $1
		ORDER BY acquired_at
		FOR UPDATE
	`
	return r.list(ctx, query, employee)
}

func (r *ticketRepositoryImpl) ListByEmployee(ctx context.Context, employee string) ([]ticket.Entry, error) {
	query := `
		SELECT id, employee, quantity, acquired_at
		FROM exchange_ticket_ledger
		WHERE employee = $1
		ORDER BY acquired_at
	`
	return r.list(ctx, query, employee)
}

func (r *ticketRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]ticket.Entry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ticket.Entry
	for rows.Next() {
		var e ticket.Entry
		if err := rows.Scan(&e.ID, &e.Employee, &e.Quantity, &e.AcquiredAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ticketRepositoryImpl) UpdateQuantity(ctx context.Context, id int64, quantity float64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `UPDATE exchange_ticket_ledger SET quantity = $2 WHERE id = $1`, id, quantity)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return ticket.ErrEntryNotFound
	}
	return nil
}

func (r *ticketRepositoryImpl) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM exchange_ticket_ledger WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return ticket.ErrEntryNotFound
	}
	return nil
}

// DeleteExpiredBefore mirrors Entry.ExpiresAt in SQL: entries acquired
// before September lapse at year end, later ones carry three months.
func (r *ticketRepositoryImpl) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM exchange_ticket_ledger
		WHERE CASE
			WHEN EXTRACT(MONTH FROM acquired_at) < 9
				THEN make_timestamptz(EXTRACT(YEAR FROM acquired_at)::int, 12, 31, 23, 59, 59, 'UTC')
			ELSE acquired_at + INTERVAL '3 months'
		END < $1
	`

	commandTag, err := q.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}
