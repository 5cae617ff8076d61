package leave

import (
	"math"
	"time"
)

// Category is the leave kind. Compensatory leave is the only category with a
// side effect: it consumes exchange tickets on final approval.
type Category string

const (
	CategoryAnnual       Category = "annual"
	CategoryPersonal     Category = "personal"
	CategorySick         Category = "sick"
	CategoryCompensatory Category = "compensatory-leave"
	CategoryMarriage     Category = "marriage"
	CategoryMaternity    Category = "maternity"
	CategoryBereavement  Category = "bereavement"
)

// Request is one leave application. Timestamps are second precision.
type Request struct {
	ID                  string     `json:"id"`
	Applicant           string     `json:"applicant"`
	Department          string     `json:"department"`
	Category            Category   `json:"category"`
	Shift               string     `json:"shift,omitempty"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             time.Time  `json:"end_time"`
	DurationDays        float64    `json:"duration_days"`
	Reason              string     `json:"reason"`
	FirstApprover       string     `json:"first_approver"`
	SecondApprover      string     `json:"second_approver,omitempty"`
	NeedsSecondApproval bool       `json:"needs_second_approval"`
	Status              Status     `json:"status"`
	RejectReason        string     `json:"reject_reason,omitempty"`
	SubmittedAt         time.Time  `json:"submitted_at"`
	FirstDecidedAt      *time.Time `json:"first_decided_at,omitempty"`
	SecondDecidedAt     *time.Time `json:"second_decided_at,omitempty"`
}

// TicketDebit is the exchange-ticket cost of a compensatory leave: duration
// is snapped to quarter days, then expressed in half-ticket units rounded to
// two decimals. The quarter snap rounds half to even, so an exact
// half-quarter like 1.125 days costs 2.0 tickets, not 2.5.
func TicketDebit(durationDays float64) float64 {
	quarters := math.RoundToEven(durationDays * 4)
	return math.Round(quarters/2*100) / 100
}
