package model

import "testing"

func TestContractLineKey(t *testing.T) {
	line := ContractLine{Product: "SiTE-SCOPE", Plan: "annual", Qty: 10}
	key := line.Key()

	if key.Product != "SiTE-SCOPE" || key.Plan != "annual" {
		t.Errorf("Unexpected key %+v", key)
	}
}

func TestContractLineByKey(t *testing.T) {
	contract := &Contract{
		ID: "c1",
		Lines: []ContractLine{
			{Product: "SiTE-SCOPE", Plan: "annual", Qty: 10},
			{Product: "SiTE-SCOPE OP-A", Plan: "annual", Qty: 5},
		},
	}

	line := contract.LineByKey(LineKey{Product: "SiTE-SCOPE OP-A", Plan: "annual"})
	if line == nil {
		t.Fatal("Expected to find line")
	}
	if line.Qty != 5 {
		t.Errorf("Expected qty 5, got %d", line.Qty)
	}

	if contract.LineByKey(LineKey{Product: "SiTECH 3D", Plan: "annual"}) != nil {
		t.Error("Expected nil for missing line")
	}
}

func TestContractStatusConstants(t *testing.T) {
	statuses := []ContractStatus{ContractActive, ContractInactive, ContractPending, ContractTerminated}
	expected := []string{"active", "inactive", "pending", "terminated"}

	for i, status := range statuses {
		if string(status) != expected[i] {
			t.Errorf("Expected '%s', got '%s'", expected[i], status)
		}
	}
}

func TestLineKeyLabel(t *testing.T) {
	tests := []struct {
		name     string
		key      LineKey
		expected string
	}{
		{
			name:     "product and plan",
			key:      LineKey{Product: "SiTE-SCOPE", Plan: "annual"},
			expected: "SiTE-SCOPE / annual",
		},
		{
			name:     "missing product",
			key:      LineKey{Plan: "annual"},
			expected: "不明な製品 / annual",
		},
		{
			name:     "missing plan",
			key:      LineKey{Product: "SiTE-SCOPE"},
			expected: "SiTE-SCOPE / —",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Label(); got != tt.expected {
				t.Errorf("Expected label '%s', got '%s'", tt.expected, got)
			}
		})
	}
}
