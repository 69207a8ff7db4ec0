package service

import (
	"errors"
	"log/slog"
	"time"

	"github.com/TakeshiImakurusu/contract-management-system/model"
)

// Workflow errors. The original dashboard swallowed failed
// preconditions behind disabled buttons; here every guard failure is an
// explicit error and never mutates anything.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrDraftNotFound     = errors.New("draft not found")
	ErrDraftEmpty        = errors.New("draft has no lines")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Workflow drives an order (and its paired draft) through the fixed
// triage sequence:
//
//	received → triaged → validating → needs_fix | ready_for_approval
//	                                           → approved → posted
//
// needs_fix is reached from ready_for_approval or approved via
// send-back. The workflow is the only writer of order and draft
// statuses; handlers never mutate stores directly.
type Workflow struct {
	orders *OrderStore
	drafts *DraftStore
	now    func() time.Time
}

func NewWorkflow(orders *OrderStore, drafts *DraftStore) *Workflow {
	return &Workflow{orders: orders, drafts: drafts, now: time.Now}
}

// Assign sets the order's assignee, advancing received orders to
// triaged. Idempotent beyond that single edge.
func (w *Workflow) Assign(orderID, assignee string) error {
	if !w.orders.Assign(orderID, assignee) {
		return ErrOrderNotFound
	}
	slog.Info("order assigned", "order_id", orderID, "assignee", assignee)
	return nil
}

// Validate marks the order as validating. Validation itself is a
// manual step performed by the operator.
func (w *Workflow) Validate(orderID string) error {
	if !w.orders.SetStatus(orderID, model.OrderValidating) {
		return ErrOrderNotFound
	}
	slog.Info("order validation started", "order_id", orderID)
	return nil
}

// SubmitForApproval moves the order's draft to submitted and the order
// to ready_for_approval. Requires a draft in the draft state with at
// least one line.
func (w *Workflow) SubmitForApproval(orderID string) error {
	order := w.orders.Get(orderID)
	if order == nil {
		return ErrOrderNotFound
	}
	draft := w.drafts.Get(orderID)
	if draft == nil {
		return ErrDraftNotFound
	}
	if len(draft.Lines) == 0 {
		return ErrDraftEmpty
	}
	if draft.Status != model.DraftStateDraft {
		return ErrInvalidTransition
	}

	w.drafts.MarkSubmitted(orderID, w.now())
	w.orders.SetStatus(orderID, model.OrderReadyForApproval)
	slog.Info("draft submitted for approval", "order_id", orderID, "draft_id", draft.ID)
	return nil
}

// Approve moves a submitted draft to approved. Requires the order to be
// ready_for_approval.
func (w *Workflow) Approve(orderID string) error {
	order := w.orders.Get(orderID)
	if order == nil {
		return ErrOrderNotFound
	}
	draft := w.drafts.Get(orderID)
	if draft == nil {
		return ErrDraftNotFound
	}
	if order.Status != model.OrderReadyForApproval || draft.Status != model.DraftStateSubmitted {
		return ErrInvalidTransition
	}

	w.drafts.MarkApproved(orderID, w.now())
	w.orders.SetStatus(orderID, model.OrderApproved)
	slog.Info("draft approved", "order_id", orderID, "draft_id", draft.ID)
	return nil
}

// Post merges an approved draft into the contract ledger. Terminal:
// posted orders never transition again. Requires both the order and the
// draft to be approved.
func (w *Workflow) Post(orderID string) error {
	order := w.orders.Get(orderID)
	if order == nil {
		return ErrOrderNotFound
	}
	draft := w.drafts.Get(orderID)
	if draft == nil {
		return ErrDraftNotFound
	}
	if order.Status != model.OrderApproved || draft.Status != model.DraftStateApproved {
		return ErrInvalidTransition
	}

	w.drafts.MarkPosted(orderID, w.now())
	w.orders.SetStatus(orderID, model.OrderPosted)
	slog.Info("draft posted", "order_id", orderID, "draft_id", draft.ID)
	return nil
}

// SendBack returns an order awaiting or past approval to needs_fix and
// resets its draft to the draft state, clearing the workflow stamps.
func (w *Workflow) SendBack(orderID string) error {
	order := w.orders.Get(orderID)
	if order == nil {
		return ErrOrderNotFound
	}
	if order.Status != model.OrderReadyForApproval && order.Status != model.OrderApproved {
		return ErrInvalidTransition
	}

	// The original UI allowed send-back with no draft; only the order
	// status moves in that case.
	w.drafts.ResetToDraft(orderID, w.now())
	w.orders.SetStatus(orderID, model.OrderNeedsFix)
	slog.Info("order sent back", "order_id", orderID)
	return nil
}
