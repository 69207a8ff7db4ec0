package model

// OrderStatus is the triage state of an incoming purchase order.
type OrderStatus string

// Order workflow states
const (
	OrderReceived         OrderStatus = "received"
	OrderTriaged          OrderStatus = "triaged"
	OrderValidating       OrderStatus = "validating"
	OrderNeedsFix         OrderStatus = "needs_fix"
	OrderReadyForApproval OrderStatus = "ready_for_approval"
	OrderApproved         OrderStatus = "approved"
	OrderPosted           OrderStatus = "posted"
)

// Valid reports whether s is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderReceived, OrderTriaged, OrderValidating, OrderNeedsFix,
		OrderReadyForApproval, OrderApproved, OrderPosted:
		return true
	}
	return false
}

// OrderLine is a single product/plan position on an order.
// Dates are calendar dates in YYYY-MM-DD form; string comparison is
// therefore chronological.
type OrderLine struct {
	Product   string `json:"product" yaml:"product"`
	Plan      string `json:"plan" yaml:"plan"`
	Qty       int    `json:"qty" yaml:"qty"`
	UnitPrice int    `json:"unit_price" yaml:"unit_price"`
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
}

// Key returns the line's composite identity.
func (l OrderLine) Key() LineKey {
	return LineKey{Product: l.Product, Plan: l.Plan}
}

// Order represents an incoming purchase order to be triaged, validated
// and reconciled into a contract. Only Status and Assigned are mutable;
// everything else is fixed at receipt.
type Order struct {
	ID             string      `json:"id" yaml:"id"`
	OrderNumber    string      `json:"order_number" yaml:"order_number"`
	KentemID       string      `json:"kentem_id" yaml:"kentem_id"`
	CustomerName   string      `json:"customer_name" yaml:"customer_name"`
	ProductSummary string      `json:"product_summary" yaml:"product_summary"`
	ShippingDate   string      `json:"shipping_date,omitempty" yaml:"shipping_date"`
	ReceivedAt     string      `json:"received_at" yaml:"received_at"`
	Errors         int         `json:"errors" yaml:"errors"`
	Warns          int         `json:"warns" yaml:"warns"`
	Assigned       string      `json:"assigned,omitempty" yaml:"assigned"`
	Status         OrderStatus `json:"status" yaml:"status"`
	Total          int         `json:"total" yaml:"total"`
	Lines          []OrderLine `json:"lines" yaml:"lines"`
}

// LineByKey returns the order line with the given key, or nil.
func (o *Order) LineByKey(key LineKey) *OrderLine {
	for i := range o.Lines {
		if o.Lines[i].Key() == key {
			return &o.Lines[i]
		}
	}
	return nil
}
