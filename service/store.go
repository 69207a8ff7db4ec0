package service

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/TakeshiImakurusu/contract-management-system/model"
)

// Tab groups order states the way the operator dashboard presents
// them: incoming, in-processing and confirmed.
type Tab string

const (
	TabOrders     Tab = "orders"
	TabProcessing Tab = "processing"
	TabConfirmed  Tab = "confirmed"
)

// tabStates maps each tab to the order states it shows.
var tabStates = map[Tab][]model.OrderStatus{
	TabOrders: {
		model.OrderReceived, model.OrderTriaged, model.OrderValidating,
		model.OrderNeedsFix, model.OrderReadyForApproval,
	},
	TabProcessing: {
		model.OrderValidating, model.OrderNeedsFix, model.OrderReadyForApproval,
	},
	TabConfirmed: {
		model.OrderApproved, model.OrderPosted,
	},
}

// ValidTab reports whether t names a known order tab.
func ValidTab(t Tab) bool {
	_, ok := tabStates[t]
	return ok
}

// OrderStore is an in-memory store for orders. Seed order is preserved
// so listings without an explicit sort stay stable.
// In production, this would be backed by the order intake database.
type OrderStore struct {
	mu     sync.RWMutex
	orders []*model.Order
	index  map[string]*model.Order
}

func NewOrderStore(seed []*model.Order) *OrderStore {
	s := &OrderStore{
		index: make(map[string]*model.Order, len(seed)),
	}
	for _, o := range seed {
		if _, dup := s.index[o.ID]; dup {
			slog.Warn("duplicate order in seed, skipping", "order_id", o.ID)
			continue
		}
		s.orders = append(s.orders, o)
		s.index[o.ID] = o
	}
	return s
}

func (s *OrderStore) Get(id string) *model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index[id]
}

func (s *OrderStore) List() []*model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// SetStatus updates an order's workflow state. Returns false when the
// order does not exist.
func (s *OrderStore) SetStatus(id string, status model.OrderStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.index[id]
	if !ok {
		return false
	}
	o.Status = status
	return true
}

// Assign sets the order's assignee and advances received orders to
// triaged. Assigning an already-triaged order only updates the
// assignee.
func (s *OrderStore) Assign(id, assignee string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.index[id]
	if !ok {
		return false
	}
	o.Assigned = assignee
	if o.Status == model.OrderReceived {
		o.Status = model.OrderTriaged
	}
	return true
}

// OrderFilter narrows and orders a listing the way the dashboard tabs
// do. Zero values mean "no restriction".
type OrderFilter struct {
	Tab      Tab
	Keyword  string
	KentemID string
	Status   model.OrderStatus
	// Scope restricts results to one tenant regardless of the other
	// fields; used for scoped operators.
	Scope string
}

// Filter returns orders matching f, sorted by shipping date with
// unshipped orders last, ties broken by receive time.
func (s *OrderStore) Filter(f OrderFilter) []*model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := tabStates[f.Tab]
	keyword := strings.ToLower(f.Keyword)
	kid := strings.ToLower(f.KentemID)

	var result []*model.Order
	for _, o := range s.orders {
		if f.Scope != "" && o.KentemID != f.Scope {
			continue
		}
		if states != nil && !statusIn(o.Status, states) {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(o.OrderNumber), keyword) &&
			!strings.Contains(strings.ToLower(o.CustomerName), keyword) {
			continue
		}
		if kid != "" && !strings.Contains(strings.ToLower(o.KentemID), kid) {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		result = append(result, o)
	}

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if (a.ShippingDate == "") != (b.ShippingDate == "") {
			return a.ShippingDate != ""
		}
		if a.ShippingDate != b.ShippingDate {
			return a.ShippingDate < b.ShippingDate
		}
		return a.ReceivedAt < b.ReceivedAt
	})
	return result
}

// TabCounts returns per-tab order counts plus the number of distinct
// tenants holding contracts, for the dashboard tab badges.
func (s *OrderStore) TabCounts(scope string) map[Tab]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[Tab]int, len(tabStates))
	for tab, states := range tabStates {
		n := 0
		for _, o := range s.orders {
			if scope != "" && o.KentemID != scope {
				continue
			}
			if statusIn(o.Status, states) {
				n++
			}
		}
		counts[tab] = n
	}
	return counts
}

func statusIn(status model.OrderStatus, states []model.OrderStatus) bool {
	for _, s := range states {
		if s == status {
			return true
		}
	}
	return false
}

// ContractStore is an in-memory, read-only store for contracts and
// their optional extras. Seed order is preserved: the first contract of
// a tenant is the default comparison target.
type ContractStore struct {
	mu        sync.RWMutex
	contracts []*model.Contract
	index     map[string]*model.Contract
	extras    map[string]*model.ContractExtras
}

func NewContractStore(seed []*model.Contract, extras map[string]*model.ContractExtras) *ContractStore {
	s := &ContractStore{
		index:  make(map[string]*model.Contract, len(seed)),
		extras: make(map[string]*model.ContractExtras, len(extras)),
	}
	for _, c := range seed {
		if _, dup := s.index[c.ID]; dup {
			slog.Warn("duplicate contract in seed, skipping", "contract_id", c.ID)
			continue
		}
		s.contracts = append(s.contracts, c)
		s.index[c.ID] = c
	}
	for id, e := range extras {
		if _, ok := s.index[id]; !ok {
			slog.Warn("extras for unknown contract, skipping", "contract_id", id)
			continue
		}
		s.extras[id] = e
	}
	return s
}

func (s *ContractStore) Get(id string) *model.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index[id]
}

func (s *ContractStore) List() []*model.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Contract, len(s.contracts))
	copy(out, s.contracts)
	return out
}

// ByKentemID returns the tenant's contracts in seed order.
func (s *ContractStore) ByKentemID(kentemID string) []*model.Contract {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Contract
	for _, c := range s.contracts {
		if c.KentemID == kentemID {
			result = append(result, c)
		}
	}
	return result
}

// Extras returns the enrichment record for a contract, or nil.
func (s *ContractStore) Extras(id string) *model.ContractExtras {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.extras[id]
}

// KentemIDCount returns the number of distinct tenants with at least
// one contract.
func (s *ContractStore) KentemIDCount(scope string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, c := range s.contracts {
		if scope != "" && c.KentemID != scope {
			continue
		}
		seen[c.KentemID] = struct{}{}
	}
	return len(seen)
}
