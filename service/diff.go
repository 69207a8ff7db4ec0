package service

import (
	"sort"

	"github.com/TakeshiImakurusu/contract-management-system/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DiffFlags marks which fields of a line pair differ. The flags are
// independent; period covers both the start and the end date.
type DiffFlags struct {
	Plan      bool `json:"plan"`
	Qty       bool `json:"qty"`
	UnitPrice bool `json:"unit_price"`
	Period    bool `json:"period"`
}

// Any reports whether at least one field differs.
func (f DiffFlags) Any() bool {
	return f.Plan || f.Qty || f.UnitPrice || f.Period
}

// DiffRow is one product/plan pairing's side-by-side comparison between
// an order line and a contract line. Either side may be nil: an
// order-only line proposes an addition, a contract-only line has no
// counterpart on the order.
type DiffRow struct {
	Key          model.LineKey       `json:"key"`
	Label        string              `json:"label"`
	OrderLine    *model.OrderLine    `json:"order_line,omitempty"`
	ContractLine *model.ContractLine `json:"contract_line,omitempty"`
	Differences  DiffFlags           `json:"differences"`
}

// Defaults an absent side compares against. A missing line therefore
// reads as "different" wherever the present side deviates from these.
const (
	absentPlan = "—"
	absentDate = ""
)

// CompareLines diffs an order against a contract line by line. Lines
// are matched on their product/plan key; the result covers the union of
// both sides, ordered by display label under Japanese collation. The
// function is pure: same inputs produce the same rows in the same
// order.
func CompareLines(order *model.Order, contract *model.Contract) []DiffRow {
	orderLines := make(map[model.LineKey]*model.OrderLine, len(order.Lines))
	contractLines := make(map[model.LineKey]*model.ContractLine, len(contract.Lines))

	// Keys in first-seen order so ties in collation stay stable.
	var keys []model.LineKey
	for i := range order.Lines {
		key := order.Lines[i].Key()
		if _, ok := orderLines[key]; !ok {
			orderLines[key] = &order.Lines[i]
			keys = append(keys, key)
		}
	}
	for i := range contract.Lines {
		key := contract.Lines[i].Key()
		if _, ok := contractLines[key]; !ok {
			contractLines[key] = &contract.Lines[i]
			if _, seen := orderLines[key]; !seen {
				keys = append(keys, key)
			}
		}
	}

	rows := make([]DiffRow, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, DiffRow{
			Key:          key,
			Label:        key.Label(),
			OrderLine:    orderLines[key],
			ContractLine: contractLines[key],
			Differences:  diffFlags(orderLines[key], contractLines[key]),
		})
	}

	collator := collate.New(language.Japanese)
	sort.SliceStable(rows, func(i, j int) bool {
		return collator.CompareString(rows[i].Label, rows[j].Label) < 0
	})
	return rows
}

func diffFlags(o *model.OrderLine, c *model.ContractLine) DiffFlags {
	oPlan, oQty, oPrice, oStart, oEnd := absentPlan, 0, 0, absentDate, absentDate
	if o != nil {
		oPlan, oQty, oPrice, oStart, oEnd = o.Plan, o.Qty, o.UnitPrice, o.StartDate, o.EndDate
	}
	cPlan, cQty, cPrice, cStart, cEnd := absentPlan, 0, 0, absentDate, absentDate
	if c != nil {
		cPlan, cQty, cPrice, cStart, cEnd = c.Plan, c.Qty, c.UnitPrice, c.StartDate, c.EndDate
	}

	return DiffFlags{
		Plan:      oPlan != cPlan,
		Qty:       oQty != cQty,
		UnitPrice: oPrice != cPrice,
		Period:    oStart != cStart || oEnd != cEnd,
	}
}
