package model

import "testing"

func TestOrderStatusValid(t *testing.T) {
	valid := []OrderStatus{
		OrderReceived, OrderTriaged, OrderValidating, OrderNeedsFix,
		OrderReadyForApproval, OrderApproved, OrderPosted,
	}
	for _, status := range valid {
		if !status.Valid() {
			t.Errorf("Expected status '%s' to be valid", status)
		}
	}

	if OrderStatus("shipped").Valid() {
		t.Error("Expected unknown status to be invalid")
	}
	if OrderStatus("").Valid() {
		t.Error("Expected empty status to be invalid")
	}
}

func TestOrderLineByKey(t *testing.T) {
	order := &Order{
		ID: "o1",
		Lines: []OrderLine{
			{Product: "SiTE-SCOPE", Plan: "annual", Qty: 10, UnitPrice: 32000},
		},
	}

	line := order.LineByKey(LineKey{Product: "SiTE-SCOPE", Plan: "annual"})
	if line == nil {
		t.Fatal("Expected to find line")
	}
	if line.UnitPrice != 32000 {
		t.Errorf("Expected unit price 32000, got %d", line.UnitPrice)
	}

	if order.LineByKey(LineKey{Product: "SiTE-SCOPE", Plan: "monthly"}) != nil {
		t.Error("Expected nil for different plan")
	}
}

func TestDraftHasLine(t *testing.T) {
	draft := &Draft{
		ID:      "draft-o1",
		OrderID: "o1",
		Lines: []OrderLine{
			{Product: "SiTE-SCOPE", Plan: "annual", Qty: 10},
		},
	}

	if !draft.HasLine(LineKey{Product: "SiTE-SCOPE", Plan: "annual"}) {
		t.Error("Expected draft to contain the line")
	}
	if draft.HasLine(LineKey{Product: "SiTECH 3D", Plan: "annual"}) {
		t.Error("Expected draft not to contain an absent line")
	}
}
