package holiday

import "context"

// Repository - read-only interface for the holidays table. The calendar is
// maintained out of band; this system only consumes it.
type Repository interface {
	ListByYear(ctx context.Context, year int) ([]Holiday, error)
}
