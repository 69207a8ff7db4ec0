package service

import (
	"sort"
	"strings"

	"github.com/TakeshiImakurusu/contract-management-system/model"
)

// ContractFamily buckets contracts into the three product families the
// tenant view groups by.
type ContractFamily string

const (
	FamilyDekispart ContractFamily = "デキスパート"
	FamilyInnosite  ContractFamily = "INNOSiTE"
	FamilyCloud     ContractFamily = "クラウド"
)

// Families in display order.
var Families = []ContractFamily{FamilyDekispart, FamilyInnosite, FamilyCloud}

// FamilyOf classifies a contract by its line product names. Anything
// that is neither デキスパート nor a SiTE/INNOSiTE product counts as
// cloud.
func FamilyOf(contract *model.Contract) ContractFamily {
	var names []string
	for _, line := range contract.Lines {
		names = append(names, line.Product)
	}
	joined := strings.ToLower(strings.Join(names, " "))
	if strings.Contains(joined, "デキス") || strings.Contains(joined, "dekis") {
		return FamilyDekispart
	}
	if strings.Contains(joined, "site") || strings.Contains(joined, "innosite") {
		return FamilyInnosite
	}
	return FamilyCloud
}

// FamilyContract is a contract annotated with its product family.
type FamilyContract struct {
	*model.Contract
	Family ContractFamily `json:"family"`
}

// TenantSummary aggregates one tenant's contracts for the tenant view:
// per-family counts and the nearest contract expiry.
type TenantSummary struct {
	KentemID     string                 `json:"kentem_id"`
	CustomerName string                 `json:"customer_name"`
	Contracts    []FamilyContract       `json:"contracts"`
	Families     map[ContractFamily]int `json:"families"`
	Nearest      string                 `json:"nearest"`
}

// TenantFilter narrows the tenant listing. Zero values mean "no
// restriction"; Scope pins the listing to one tenant.
type TenantFilter struct {
	Keyword  string
	KentemID string
	Scope    string
}

// BuildTenantSummaries groups contracts by tenant and sorts tenants by
// nearest contract expiry, soonest first. Grouping preserves contract
// seed order within a tenant.
func BuildTenantSummaries(contracts []*model.Contract, f TenantFilter) []TenantSummary {
	keyword := strings.ToLower(f.Keyword)
	kid := strings.ToLower(f.KentemID)

	byKentem := make(map[string]*TenantSummary)
	var order []string
	for _, contract := range contracts {
		if f.Scope != "" && contract.KentemID != f.Scope {
			continue
		}
		entry, ok := byKentem[contract.KentemID]
		if !ok {
			entry = &TenantSummary{
				KentemID:     contract.KentemID,
				CustomerName: contract.CustomerName,
				Families: map[ContractFamily]int{
					FamilyDekispart: 0,
					FamilyInnosite:  0,
					FamilyCloud:     0,
				},
				Nearest: contract.EffectiveTo,
			}
			byKentem[contract.KentemID] = entry
			order = append(order, contract.KentemID)
		}
		family := FamilyOf(contract)
		entry.Contracts = append(entry.Contracts, FamilyContract{Contract: contract, Family: family})
		entry.Families[family]++
		if contract.EffectiveTo < entry.Nearest {
			entry.Nearest = contract.EffectiveTo
		}
	}

	var list []TenantSummary
	for _, kentemID := range order {
		entry := byKentem[kentemID]
		if keyword != "" &&
			!strings.Contains(strings.ToLower(entry.CustomerName), keyword) &&
			!strings.Contains(strings.ToLower(entry.KentemID), keyword) {
			continue
		}
		if kid != "" && !strings.Contains(strings.ToLower(entry.KentemID), kid) {
			continue
		}
		list = append(list, *entry)
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Nearest < list[j].Nearest
	})
	return list
}
