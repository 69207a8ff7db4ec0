package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/TakeshiImakurusu/contract-management-system/model"
	"github.com/google/uuid"
)

// DraftStore is an in-memory store of contract-update drafts, keyed by
// the owning order. Drafts are never deleted; a send-back only resets
// their state.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*model.Draft
}

func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*model.Draft)}
}

func (s *DraftStore) Get(orderID string) *model.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drafts[orderID]
}

func (s *DraftStore) put(d *model.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.OrderID] = d
}

// MarkSubmitted stamps the draft submitted, clearing any later stamps
// from a previous pass through the workflow.
func (s *DraftStore) MarkSubmitted(orderID string, t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[orderID]
	if !ok {
		return false
	}
	d.Status = model.DraftStateSubmitted
	d.SubmittedAt = &t
	d.ApprovedAt = nil
	d.PostedAt = nil
	d.UpdatedAt = t
	return true
}

func (s *DraftStore) MarkApproved(orderID string, t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[orderID]
	if !ok {
		return false
	}
	d.Status = model.DraftStateApproved
	d.ApprovedAt = &t
	d.UpdatedAt = t
	return true
}

func (s *DraftStore) MarkPosted(orderID string, t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[orderID]
	if !ok {
		return false
	}
	d.Status = model.DraftStatePosted
	d.PostedAt = &t
	d.UpdatedAt = t
	return true
}

// ResetToDraft clears the workflow stamps and returns the draft to the
// draft state. No-op when the order has no draft.
func (s *DraftStore) ResetToDraft(orderID string, t time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[orderID]
	if !ok {
		return false
	}
	d.Status = model.DraftStateDraft
	d.SubmittedAt = nil
	d.ApprovedAt = nil
	d.PostedAt = nil
	d.UpdatedAt = t
	return true
}

// fallbackCreator is recorded when an unassigned order's draft is
// saved, matching the dashboard's placeholder.
const fallbackCreator = "担当者"

// DraftBuilder derives contract-update drafts from an operator's diff
// line selection.
type DraftBuilder struct {
	orders *OrderStore
	drafts *DraftStore
	now    func() time.Time
}

func NewDraftBuilder(orders *OrderStore, drafts *DraftStore) *DraftBuilder {
	return &DraftBuilder{orders: orders, drafts: drafts, now: time.Now}
}

// SaveFromSelection creates or replaces the order's draft from the
// selected line keys, copying the matching order lines. CreatedAt and
// CreatedBy survive re-saves; the draft returns to the draft state with
// its workflow stamps cleared, so a fresh selection always restarts the
// approval loop. ContractID records the comparison target.
func (b *DraftBuilder) SaveFromSelection(orderID, contractID string, keys []model.LineKey) (*model.Draft, error) {
	order := b.orders.Get(orderID)
	if order == nil {
		return nil, ErrOrderNotFound
	}

	selected := make(map[model.LineKey]struct{}, len(keys))
	for _, key := range keys {
		selected[key] = struct{}{}
	}

	var lines []model.OrderLine
	for _, line := range order.Lines {
		if _, ok := selected[line.Key()]; ok {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, ErrDraftEmpty
	}

	now := b.now()
	draft := &model.Draft{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		ContractID: contractID,
		Lines:      lines,
		Status:     model.DraftStateDraft,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  order.Assigned,
	}
	if draft.CreatedBy == "" {
		draft.CreatedBy = fallbackCreator
	}

	if existing := b.drafts.Get(orderID); existing != nil {
		draft.ID = existing.ID
		draft.CreatedAt = existing.CreatedAt
		draft.CreatedBy = existing.CreatedBy
	}

	b.drafts.put(draft)
	slog.Info("draft saved",
		"order_id", orderID,
		"draft_id", draft.ID,
		"contract_id", contractID,
		"lines", len(lines),
	)
	return draft, nil
}

// DefaultSelection is the preselected line set when the comparison
// dialog opens: a saved draft's lines verbatim, otherwise every order
// line whose diff has at least one flagged field.
func DefaultSelection(rows []DiffRow, existing *model.Draft) []model.LineKey {
	var keys []model.LineKey
	if existing != nil && len(existing.Lines) > 0 {
		for _, line := range existing.Lines {
			keys = append(keys, line.Key())
		}
		return keys
	}
	for _, row := range rows {
		if row.OrderLine != nil && row.Differences.Any() {
			keys = append(keys, row.Key)
		}
	}
	return keys
}
