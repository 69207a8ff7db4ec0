package model

// ContractStatus is the lifecycle state of a contract.
type ContractStatus string

// Contract states
const (
	ContractActive     ContractStatus = "active"
	ContractInactive   ContractStatus = "inactive"
	ContractPending    ContractStatus = "pending"
	ContractTerminated ContractStatus = "terminated"
)

// ContractLine is a single product/plan position on a contract. It has
// the same shape as OrderLine so the two sides can be diffed field by
// field.
type ContractLine struct {
	Product   string `json:"product" yaml:"product"`
	Plan      string `json:"plan" yaml:"plan"`
	Qty       int    `json:"qty" yaml:"qty"`
	UnitPrice int    `json:"unit_price" yaml:"unit_price"`
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
}

// Key returns the line's composite identity.
func (l ContractLine) Key() LineKey {
	return LineKey{Product: l.Product, Plan: l.Plan}
}

// Contract is the authoritative license agreement for a tenant.
// Contracts are read-only in this service; they only serve as the
// comparison target for incoming orders.
type Contract struct {
	ID             string         `json:"id" yaml:"id"`
	ContractNumber string         `json:"contract_number" yaml:"contract_number"`
	KentemID       string         `json:"kentem_id" yaml:"kentem_id"`
	CustomerName   string         `json:"customer_name" yaml:"customer_name"`
	ProductSummary string         `json:"product_summary" yaml:"product_summary"`
	Status         ContractStatus `json:"status" yaml:"status"`
	EffectiveFrom  string         `json:"effective_from" yaml:"effective_from"`
	EffectiveTo    string         `json:"effective_to" yaml:"effective_to"`
	Version        int            `json:"version" yaml:"version"`
	Total          int            `json:"total" yaml:"total"`
	Lines          []ContractLine `json:"lines" yaml:"lines"`
}

// LineByKey returns the contract line with the given key, or nil.
func (c *Contract) LineByKey(key LineKey) *ContractLine {
	for i := range c.Lines {
		if c.Lines[i].Key() == key {
			return &c.Lines[i]
		}
	}
	return nil
}

// ContractExtras carries optional enrichment of a contract: billing
// terms, contacts, addresses, renewal/cancellation/discount/SLA rules,
// free-form notes and attachments. Pure data, keyed by contract ID.
type ContractExtras struct {
	Billing     *BillingInfo  `json:"billing,omitempty" yaml:"billing"`
	Contacts    *ContactSet   `json:"contacts,omitempty" yaml:"contacts"`
	Addresses   *AddressInfo  `json:"addresses,omitempty" yaml:"addresses"`
	Rules       *RuleSet      `json:"rules,omitempty" yaml:"rules"`
	Notes       []string      `json:"notes,omitempty" yaml:"notes"`
	Attachments []*Attachment `json:"attachments,omitempty" yaml:"attachments"`
}

type BillingInfo struct {
	BillingAddress string `json:"billing_address,omitempty" yaml:"billing_address"`
	InvoiceCycle   string `json:"invoice_cycle,omitempty" yaml:"invoice_cycle"`
	PaymentMethod  string `json:"payment_method,omitempty" yaml:"payment_method"`
	PaymentTerms   string `json:"payment_terms,omitempty" yaml:"payment_terms"`
	TaxRate        string `json:"tax_rate,omitempty" yaml:"tax_rate"`
	Currency       string `json:"currency,omitempty" yaml:"currency"`
}

type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name"`
	Email string `json:"email,omitempty" yaml:"email"`
	Tel   string `json:"tel,omitempty" yaml:"tel"`
}

type ContactSet struct {
	Billing *Contact `json:"billing,omitempty" yaml:"billing"`
	Admin   *Contact `json:"admin,omitempty" yaml:"admin"`
	Tech    *Contact `json:"tech,omitempty" yaml:"tech"`
}

type AddressInfo struct {
	ServiceAddress  string `json:"service_address,omitempty" yaml:"service_address"`
	ShippingAddress string `json:"shipping_address,omitempty" yaml:"shipping_address"`
}

type RenewalRule struct {
	Type             string `json:"type,omitempty" yaml:"type"`
	NoticePeriodDays int    `json:"notice_period_days,omitempty" yaml:"notice_period_days"`
}

type CancellationRule struct {
	Policy string `json:"policy,omitempty" yaml:"policy"`
}

type DiscountRule struct {
	Rule  string `json:"rule" yaml:"rule"`
	Value string `json:"value" yaml:"value"`
}

type SLARule struct {
	Severity    string `json:"severity" yaml:"severity"`
	ResponseHrs int    `json:"response_hrs" yaml:"response_hrs"`
	RestoreHrs  int    `json:"restore_hrs" yaml:"restore_hrs"`
}

type RuleSet struct {
	Renewal      *RenewalRule      `json:"renewal,omitempty" yaml:"renewal"`
	Cancellation *CancellationRule `json:"cancellation,omitempty" yaml:"cancellation"`
	Discounts    []DiscountRule    `json:"discounts,omitempty" yaml:"discounts"`
	SLA          []SLARule         `json:"sla,omitempty" yaml:"sla"`
}

// Attachment is a document attached to a contract. Name doubles as the
// object key in the attachment store when one is configured.
type Attachment struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
	Size string `json:"size" yaml:"size"`
}
