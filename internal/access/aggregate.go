package access

import (
	"encoding/json"
	"sort"
)

// EffectivePermissions is the derived union of capabilities and company
// scopes across all of a user's grants. It is computed fresh for each
// authorization decision and never persisted.
type EffectivePermissions struct {
	Capabilities CapabilitySet
	Companies    CompanySet
}

// Aggregate merges all grants belonging to one user into a single
// effective permission set. The merge is a monotonic union: adding a
// grant can only add capabilities or companies, and grant order is
// irrelevant. Zero grants yields empty sets, so every later check denies.
func Aggregate(grants []PermissionGrant) EffectivePermissions {
	eff := EffectivePermissions{
		Capabilities: CapabilitySet{},
		Companies:    CompanySet{},
	}
	for _, grant := range grants {
		n := Normalize(grant)
		for capability := range n.Capabilities {
			eff.Capabilities[capability] = struct{}{}
		}
		for company := range n.Companies {
			eff.Companies[company] = struct{}{}
		}
	}
	return eff
}

// SortedCapabilities returns the capability strings in lexical order.
func (e EffectivePermissions) SortedCapabilities() []string {
	out := make([]string, 0, len(e.Capabilities))
	for capability := range e.Capabilities {
		out = append(out, capability)
	}
	sort.Strings(out)
	return out
}

// SortedCompanies returns the allowed company ids in ascending order.
func (e EffectivePermissions) SortedCompanies() []CompanyID {
	out := make([]CompanyID, 0, len(e.Companies))
	for id := range e.Companies {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type effectiveWire struct {
	Capabilities []string    `json:"capabilities"`
	Companies    []CompanyID `json:"companies"`
}

// MarshalJSON encodes the sets as sorted arrays so the output is stable
// for API responses and cache entries.
func (e EffectivePermissions) MarshalJSON() ([]byte, error) {
	return json.Marshal(effectiveWire{
		Capabilities: e.SortedCapabilities(),
		Companies:    e.SortedCompanies(),
	})
}

func (e *EffectivePermissions) UnmarshalJSON(data []byte) error {
	var wire effectiveWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	e.Capabilities = make(CapabilitySet, len(wire.Capabilities))
	for _, capability := range wire.Capabilities {
		e.Capabilities[capability] = struct{}{}
	}
	e.Companies = make(CompanySet, len(wire.Companies))
	for _, id := range wire.Companies {
		e.Companies[id] = struct{}{}
	}
	return nil
}
