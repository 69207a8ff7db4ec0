package model

import "time"

// DraftStatus is the approval state of a contract-update draft.
type DraftStatus string

// Draft workflow states
const (
	DraftStateDraft     DraftStatus = "draft"
	DraftStateSubmitted DraftStatus = "submitted"
	DraftStateApproved  DraftStatus = "approved"
	DraftStatePosted    DraftStatus = "posted"
)

// Draft is a proposed set of contract-line changes derived from an
// order, awaiting approval before being posted. Each order has at most
// one draft; drafts are never deleted, a send-back only resets them to
// the draft state.
type Draft struct {
	ID          string      `json:"id"`
	OrderID     string      `json:"order_id"`
	ContractID  string      `json:"contract_id,omitempty"`
	Lines       []OrderLine `json:"lines"`
	Status      DraftStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	SubmittedAt *time.Time  `json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time  `json:"approved_at,omitempty"`
	PostedAt    *time.Time  `json:"posted_at,omitempty"`
	CreatedBy   string      `json:"created_by"`
}

// HasLine reports whether the draft contains a line with the given key.
func (d *Draft) HasLine(key LineKey) bool {
	for _, line := range d.Lines {
		if line.Key() == key {
			return true
		}
	}
	return false
}
