package model

// LineKey identifies a line on either side of an order/contract
// comparison. Product and plan together form the identity; using a
// struct key instead of a concatenated string avoids separator
// collisions in product names.
type LineKey struct {
	Product string `json:"product" yaml:"product"`
	Plan    string `json:"plan" yaml:"plan"`
}

// Label is the human-readable form used for display and for ordering
// diff rows.
func (k LineKey) Label() string {
	product := k.Product
	if product == "" {
		product = "不明な製品"
	}
	plan := k.Plan
	if plan == "" {
		plan = "—"
	}
	return product + " / " + plan
}
