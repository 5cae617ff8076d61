package overtime

import (
	"math"
	"time"
)

// Request is one overtime registration. Hours is the claimed duration
// floored to half hours at submission; PayHours and Tickets are filled by
// final approval and are mutually exclusive.
type Request struct {
	ID                  string     `json:"id"`
	Applicant           string     `json:"applicant"`
	Department          string     `json:"department"`
	Date                time.Time  `json:"date"`
	StartTime           time.Time  `json:"start_time"`
	EndTime             time.Time  `json:"end_time"`
	FirstApprover       string     `json:"first_approver"`
	SecondApprover      string     `json:"second_approver,omitempty"`
	NeedsSecondApproval bool       `json:"needs_second_approval"`
	FinalApprover       string     `json:"final_approver,omitempty"`
	WantsTicket         bool       `json:"wants_ticket"`
	Status              Status     `json:"status"`
	Hours               float64    `json:"hours"`
	PayHours            float64    `json:"pay_hours"`
	Tickets             float64    `json:"tickets"`
	RejectReason        string     `json:"reject_reason,omitempty"`
	SubmittedAt         time.Time  `json:"submitted_at"`
	FirstDecidedAt      *time.Time `json:"first_decided_at,omitempty"`
	SecondDecidedAt     *time.Time `json:"second_decided_at,omitempty"`
	FinalDecidedAt      *time.Time `json:"final_decided_at,omitempty"`
}

// RawHours is the unfloored interval length in hours.
func (r *Request) RawHours() float64 {
	return r.EndTime.Sub(r.StartTime).Hours()
}

// ClaimHours floors an interval length to half hours, the granularity a
// registration is recorded at.
func ClaimHours(start, end time.Time) float64 {
	raw := end.Sub(start).Hours()
	if raw <= 0 {
		return 0
	}
	return math.Floor(raw*2) / 2
}

// TicketCredit converts approved overtime hours to exchange tickets: whole
// hours only, four hours to a ticket.
func TicketCredit(hours float64) float64 {
	return math.Floor(hours) / 4
}
