package attendance

import (
	"context"
	"io"
)

// IngestSummary reports one sheet ingestion run.
type IngestSummary struct {
	Rows      int `json:"rows"`
	Employees int `json:"employees"`
	Months    int `json:"months"`
}

// IngestService accepts punch-sheet uploads and re-derives suggestions for
// every employee-month the sheet touches.
type IngestService interface {
	IngestPunches(ctx context.Context, actor string, sheet io.Reader) (IngestSummary, error)
}

// SuggestionService generates and serves attendance suggestions.
type SuggestionService interface {
	// Regenerate recomputes one employee-month from its punch records,
	// replacing any previously stored suggestions for that key.
	Regenerate(ctx context.Context, employeeName, department string, year, month int) error
	// ListSuggestions returns an employee-month with read-time
	// reconciliation flags.
	ListSuggestions(ctx context.Context, employeeName string, year, month int) ([]SuggestionView, error)
	// Exceptions returns the outstanding suggestions the viewer's role is
	// allowed to see.
	Exceptions(ctx context.Context, viewer string, year, month int) ([]SuggestionView, error)
}
