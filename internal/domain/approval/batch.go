// Package approval holds the pieces shared by all three request state
// machines: batch outcome reporting and the per-item failure contract.
package approval

// BatchItemOutcome is the result of one item inside a batch action. Reason
// carries a short human-readable explanation on failure, never a raw
// internal error.
type BatchItemOutcome struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// BatchResult aggregates a best-effort batch: items are processed
// independently, one failure never rolls back the others.
type BatchResult struct {
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Items     []BatchItemOutcome `json:"items"`
}

func (b *BatchResult) Add(id string, err error) {
	if err != nil {
		b.Failed++
		b.Items = append(b.Items, BatchItemOutcome{ID: id, Success: false, Reason: err.Error()})
		return
	}
	b.Succeeded++
	b.Items = append(b.Items, BatchItemOutcome{ID: id, Success: true})
}
