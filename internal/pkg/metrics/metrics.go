package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PunchRowsIngested counts punch rows upserted from uploaded sheets.
	PunchRowsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_punch_rows_ingested_total",
		Help: "Punch rows upserted from uploaded attendance sheets.",
	})

	// SuggestionsGenerated counts suggestions written by regeneration runs.
	SuggestionsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_suggestions_generated_total",
		Help: "Suggestions persisted by regeneration runs.",
	})

	// RegenerationRuns counts per-(employee, month) regeneration executions.
	RegenerationRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_suggestion_regeneration_runs_total",
		Help: "Suggestion regeneration runs, one per employee-month key.",
	})

	// ApprovalActions counts approval decisions by request type and action.
	ApprovalActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_approval_actions_total",
		Help: "Approval decisions applied, labeled by request type and action.",
	}, []string{"type", "action"})

	// TicketsSwept counts expired ledger entries removed by the sweep job.
	TicketsSwept = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_expired_tickets_swept_total",
		Help: "Expired exchange-ticket entries removed by the sweep job.",
	})
)
