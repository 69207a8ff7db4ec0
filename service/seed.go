package service

import (
	"fmt"
	"os"

	"github.com/TakeshiImakurusu/contract-management-system/model"
	"gopkg.in/yaml.v3"
)

// SeedData is the full in-memory dataset the service boots from. It
// stands in for the order intake and contract master upstreams.
type SeedData struct {
	Orders    []*model.Order                   `yaml:"orders"`
	Contracts []*model.Contract                `yaml:"contracts"`
	Extras    map[string]*model.ContractExtras `yaml:"extras"`
}

// LoadSeedFile reads a YAML seed file replacing the built-in dataset.
func LoadSeedFile(path string) (*SeedData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// DefaultSeed returns a fresh copy of the built-in dataset. Callers may
// mutate the result freely.
func DefaultSeed() *SeedData {
	return &SeedData{
		Orders:    seedOrders(),
		Contracts: seedContracts(),
		Extras:    seedExtras(),
	}
}

func seedOrders() []*model.Order {
	return []*model.Order{
		{
			ID:             "o1",
			OrderNumber:    "SO-2025-0919-0001",
			KentemID:       "K-000123",
			CustomerName:   "株式会社アーク",
			ProductSummary: "SiTE-SCOPE / annual × 10",
			ShippingDate:   "2025-09-22",
			ReceivedAt:     "2025-09-19T09:05:00+09:00",
			Errors:         1,
			Warns:          0,
			Status:         model.OrderReceived,
			Total:          320000,
			Lines: []model.OrderLine{
				{Product: "SiTE-SCOPE", Plan: "annual", Qty: 10, UnitPrice: 32000, StartDate: "2025-09-22", EndDate: "2026-09-21"},
			},
		},
		{
			ID:             "o8",
			OrderNumber:    "SO-2025-0919-0009",
			KentemID:       "K-000888",
			CustomerName:   "焼津建設",
			ProductSummary: "SiTE-SCOPE / annual × 2",
			ShippingDate:   "2025-09-19",
			ReceivedAt:     "2025-09-19T09:30:00+09:00",
			Errors:         0,
			Warns:          1,
			Status:         model.OrderReceived,
			Total:          60000,
			Lines: []model.OrderLine{
				{Product: "SiTE-SCOPE", Plan: "annual", Qty: 2, UnitPrice: 30000, StartDate: "2025-09-19", EndDate: "2026-09-18"},
			},
		},
		{
			ID:             "o2",
			OrderNumber:    "SO-2025-0919-0002",
			KentemID:       "K-000456",
			CustomerName:   "三島テック株式会社",
			ProductSummary: "SiTECH 3D / annual × 3",
			ShippingDate:   "2025-09-20",
			ReceivedAt:     "2025-09-19T09:10:00+09:00",
			Errors:         0,
			Warns:          2,
			Assigned:       "山田",
			Status:         model.OrderValidating,
			Total:          90000,
			Lines: []model.OrderLine{
				{Product: "SiTECH 3D", Plan: "annual", Qty: 3, UnitPrice: 30000, StartDate: "2025-09-20", EndDate: "2026-09-19"},
			},
		},
		{
			ID:             "o4",
			OrderNumber:    "SO-2025-0917-0003",
			KentemID:       "K-000777",
			CustomerName:   "富士ソリューションズ",
			ProductSummary: "SiTE-STRUCTURE / annual × 5",
			ShippingDate:   "2025-09-21",
			ReceivedAt:     "2025-09-17T11:02:00+09:00",
			Errors:         0,
			Warns:          0,
			Assigned:       "佐藤",
			Status:         model.OrderReadyForApproval,
			Total:          210000,
			Lines: []model.OrderLine{
				{Product: "SiTE-STRUCTURE", Plan: "annual", Qty: 5, UnitPrice: 42000, StartDate: "2025-09-21", EndDate: "2026-09-20"},
			},
		},
		{
			ID:             "o5",
			OrderNumber:    "SO-2025-0915-0005",
			KentemID:       "K-000999",
			CustomerName:   "沼津ビルド",
			ProductSummary: "SiTE-SCOPE OP / annual × 10",
			ShippingDate:   "2025-09-19",
			ReceivedAt:     "2025-09-15T10:00:00+09:00",
			Errors:         0,
			Warns:          0,
			Assigned:       "田中",
			Status:         model.OrderApproved,
			Total:          50000,
			Lines: []model.OrderLine{
				{Product: "SiTE-SCOPE OP", Plan: "annual", Qty: 10, UnitPrice: 5000, StartDate: "2025-09-19", EndDate: "2026-09-18"},
			},
		},
	}
}

func seedContracts() []*model.Contract {
	return []*model.Contract{
		{
			ID:             "c1",
			ContractNumber: "CT-2024-01001",
			KentemID:       "K-000123",
			CustomerName:   "株式会社アーク",
			ProductSummary: "SiTE-SCOPE / annual × 15",
			Status:         model.ContractActive,
			EffectiveFrom:  "2025-04-01",
			EffectiveTo:    "2026-03-31",
			Version:        3,
			Total:          450000,
			Lines: []model.ContractLine{
				{Product: "SiTE-SCOPE", Plan: "annual", Qty: 10, UnitPrice: 30000, StartDate: "2025-04-01", EndDate: "2026-03-31"},
				{Product: "SiTE-SCOPE OP-A", Plan: "annual", Qty: 5, UnitPrice: 5000, StartDate: "2025-04-01", EndDate: "2026-03-31"},
			},
		},
		{
			ID:             "c2",
			ContractNumber: "CT-2025-02099",
			KentemID:       "K-000456",
			CustomerName:   "三島テック株式会社",
			ProductSummary: "SiTECH 3D / annual × 3",
			Status:         model.ContractActive,
			EffectiveFrom:  "2025-08-01",
			EffectiveTo:    "2026-07-31",
			Version:        1,
			Total:          180000,
			Lines: []model.ContractLine{
				{Product: "SiTECH 3D", Plan: "annual", Qty: 3, UnitPrice: 60000, StartDate: "2025-08-01", EndDate: "2026-07-31"},
			},
		},
		{
			ID:             "c3",
			ContractNumber: "CT-2023-09005",
			KentemID:       "K-000777",
			CustomerName:   "富士ソリューションズ",
			ProductSummary: "SiTE-STRUCTURE / annual × 5",
			Status:         model.ContractActive,
			EffectiveFrom:  "2024-10-01",
			EffectiveTo:    "2025-09-30",
			Version:        4,
			Total:          210000,
			Lines: []model.ContractLine{
				{Product: "SiTE-STRUCTURE", Plan: "annual", Qty: 5, UnitPrice: 42000, StartDate: "2024-10-01", EndDate: "2025-09-30"},
			},
		},
	}
}

func seedExtras() map[string]*model.ContractExtras {
	return map[string]*model.ContractExtras{
		"c1": {
			Billing: &model.BillingInfo{
				BillingAddress: "〒420-0000 静岡県静岡市葵区〇〇1-2-3 アーク本社3F 経理部",
				InvoiceCycle:   "monthly",
				PaymentMethod:  "bank_transfer",
				PaymentTerms:   "Net30",
				TaxRate:        "10%",
				Currency:       "JPY",
			},
			Contacts: &model.ContactSet{
				Billing: &model.Contact{Name: "大橋 経理", Email: "keiri@example.com", Tel: "054-000-0000"},
				Admin:   &model.Contact{Name: "田島 総務", Email: "admin@example.com"},
				Tech:    &model.Contact{Name: "柏木 情シス", Email: "sys@example.com"},
			},
			Addresses: &model.AddressInfo{
				ServiceAddress:  "静岡県静岡市葵区〇〇1-2-3",
				ShippingAddress: "静岡県藤枝市…",
			},
			Rules: &model.RuleSet{
				Renewal:      &model.RenewalRule{Type: "auto", NoticePeriodDays: 30},
				Cancellation: &model.CancellationRule{Policy: "期間内解約は月割り。違約金: 残期間の30%"},
				Discounts:    []model.DiscountRule{{Rule: "Autumn2025", Value: "10%"}},
				SLA: []model.SLARule{
					{Severity: "P1", ResponseHrs: 1, RestoreHrs: 4},
					{Severity: "P2", ResponseHrs: 4, RestoreHrs: 16},
				},
			},
			Notes: []string{
				"現場ライセンスの追加予定(10月)",
				"請求書送付はPDF/メール優先",
			},
			Attachments: []*model.Attachment{
				{Name: "契約書_v3.pdf", Type: "pdf", Size: "214KB"},
				{Name: "見積書_2025-03.pdf", Type: "pdf", Size: "132KB"},
			},
		},
	}
}
