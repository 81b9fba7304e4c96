// Package access resolves stored permission grants into effective
// capabilities and company scopes, and answers allow/deny questions for
// route guards, navigation rendering and row-level data filtering.
//
// Every function in this package is a pure operation over already-fetched
// data. Malformed or legacy grant payloads never fail: they degrade to the
// least-privileged interpretation.
package access

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// CompanyID identifies a tenant company.
type CompanyID int64

// UnmarshalJSON accepts both numeric ids and numeric strings; legacy grant
// rows store company ids either way.
func (c *CompanyID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return errBadCompanyID
	}
	*c = CompanyID(n)
	return nil
}

// CompanyList decodes the "companies" field of a grant. Entries that are
// not coercible to a numeric id are dropped rather than rejected, so a
// single bad entry cannot invalidate the rest of the grant.
type CompanyList []CompanyID

func (l *CompanyList) UnmarshalJSON(data []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, entry := range raw {
		var id CompanyID
		if err := id.UnmarshalJSON(entry); err != nil {
			continue
		}
		*l = append(*l, id)
	}
	return nil
}

// ActionMap maps an action name (view, create, edit, delete, ...) to
// whether it is granted.
type ActionMap map[string]bool

func (m *ActionMap) UnmarshalJSON(data []byte) error {
	*m = nil
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	out := make(ActionMap, len(raw))
	for action, v := range raw {
		out[action] = truthy(v)
	}
	*m = out
	return nil
}

type moduleKind uint8

const (
	moduleAbsent moduleKind = iota
	moduleObject
	moduleArray
	moduleScalar
)

// ModuleValue is one module column of a grant, decoded once at the JSON
// boundary into a tagged union. Stored rows are usually submodule→action
// maps, but legacy rows contain arrays, scalars or null, so the shape is
// resolved here and the rest of the system never re-inspects raw JSON.
type ModuleValue struct {
	kind       moduleKind
	submodules map[string]ActionMap
	length     int
	truthy     bool
}

// Submodules returns the submodule→action map, or nil when the stored
// value was not an object.
func (v ModuleValue) Submodules() map[string]ActionMap {
	if v.kind != moduleObject {
		return nil
	}
	return v.submodules
}

// Visible reports whether the module should surface any UI affordance at
// all. This is a coarse presence-of-structure test: an object with at
// least one submodule key counts as visible even if every contained
// action is false, matching how the console has always rendered its
// navigation.
func (v ModuleValue) Visible() bool {
	switch v.kind {
	case moduleObject:
		return len(v.submodules) > 0
	case moduleArray:
		return v.length > 0
	case moduleScalar:
		return v.truthy
	default:
		return false
	}
}

func (v *ModuleValue) UnmarshalJSON(data []byte) error {
	*v = ModuleValue{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		subs := make(map[string]ActionMap, len(raw))
		for name, inner := range raw {
			var actions ActionMap
			_ = actions.UnmarshalJSON(inner)
			subs[name] = actions
		}
		v.kind = moduleObject
		v.submodules = subs
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		v.kind = moduleArray
		v.length = len(raw)
	default:
		v.kind = moduleScalar
		v.truthy = truthy(data)
	}
	return nil
}

// truthy evaluates a raw JSON scalar the way the console's screens always
// have: false, null, 0, "" and absent values deny, everything else grants.
func truthy(data json.RawMessage) bool {
	s := strings.TrimSpace(string(data))
	switch s {
	case "", "null", "false", "0", `""`:
		return false
	case "true":
		return true
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n != 0
	}
	return true
}

// ModuleName is one of the fixed module columns of a grant.
type ModuleName string

const (
	ModulePartyType ModuleName = "party_type_module"
	ModuleProduct   ModuleName = "product_module"
	ModuleCompany   ModuleName = "company_module"
	ModuleHR        ModuleName = "hr_module"
	ModuleLoan      ModuleName = "loan_module"
	ModuleBooking   ModuleName = "booking_module"
	ModulePallot    ModuleName = "pallot_module"
	ModuleSR        ModuleName = "sr_module"
	ModuleDelivery  ModuleName = "delivery_module"
	ModuleAccounts  ModuleName = "accounts_module"
	ModuleInventory ModuleName = "inventory_module"
	ModuleSettings  ModuleName = "settings_module"
	ModuleLedger    ModuleName = "ledger_module"
)

// ModuleNames lists every grant module column in stable order.
var ModuleNames = []ModuleName{
	ModulePartyType,
	ModuleProduct,
	ModuleCompany,
	ModuleHR,
	ModuleLoan,
	ModuleBooking,
	ModulePallot,
	ModuleSR,
	ModuleDelivery,
	ModuleAccounts,
	ModuleInventory,
	ModuleSettings,
	ModuleLedger,
}

// PermissionGrant is one stored record tying a user to a company scope and
// a set of module/submodule/action flags. Field names mirror the grant
// store's wire format exactly and must not change.
type PermissionGrant struct {
	UserID    string      `json:"user_id"`
	Companies CompanyList `json:"companies"`

	PartyTypeModule ModuleValue `json:"party_type_module"`
	ProductModule   ModuleValue `json:"product_module"`
	CompanyModule   ModuleValue `json:"company_module"`
	HRModule        ModuleValue `json:"hr_module"`
	LoanModule      ModuleValue `json:"loan_module"`
	BookingModule   ModuleValue `json:"booking_module"`
	PallotModule    ModuleValue `json:"pallot_module"`
	SRModule        ModuleValue `json:"sr_module"`
	DeliveryModule  ModuleValue `json:"delivery_module"`
	AccountsModule  ModuleValue `json:"accounts_module"`
	InventoryModule ModuleValue `json:"inventory_module"`
	SettingsModule  ModuleValue `json:"settings_module"`
	LedgerModule    ModuleValue `json:"ledger_module"`
}

// Module returns the value stored under the named module column.
func (g PermissionGrant) Module(name ModuleName) ModuleValue {
	switch name {
	case ModulePartyType:
		return g.PartyTypeModule
	case ModuleProduct:
		return g.ProductModule
	case ModuleCompany:
		return g.CompanyModule
	case ModuleHR:
		return g.HRModule
	case ModuleLoan:
		return g.LoanModule
	case ModuleBooking:
		return g.BookingModule
	case ModulePallot:
		return g.PallotModule
	case ModuleSR:
		return g.SRModule
	case ModuleDelivery:
		return g.DeliveryModule
	case ModuleAccounts:
		return g.AccountsModule
	case ModuleInventory:
		return g.InventoryModule
	case ModuleSettings:
		return g.SettingsModule
	case ModuleLedger:
		return g.LedgerModule
	default:
		return ModuleValue{}
	}
}

// moduleValues iterates the module columns in ModuleNames order.
func (g PermissionGrant) moduleValues() []ModuleValue {
	out := make([]ModuleValue, 0, len(ModuleNames))
	for _, name := range ModuleNames {
		out = append(out, g.Module(name))
	}
	return out
}
