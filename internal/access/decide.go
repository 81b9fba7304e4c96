package access

// DenyReason identifies which gate rejected an access request. Callers use
// the distinction for messaging only, never for control flow.
type DenyReason string

const (
	ReasonMissingCapability DenyReason = "missing_capability"
	ReasonCompanyNotAllowed DenyReason = "company_not_allowed"
)

// Decision is the outcome of an access check.
type Decision struct {
	Allowed bool         `json:"allowed"`
	Reasons []DenyReason `json:"reasons,omitempty"`
	Missing []string     `json:"missing,omitempty"`
}

// Decide allows iff every required capability is present in the effective
// set and, when a target company is given, that company is in scope. An
// empty requirement with a nil target always allows; that is the contract
// for routes with no fine-grained requirement such as the dashboard.
// Decide is total: absent data yields Deny, never an error.
func Decide(effective EffectivePermissions, required []string, target *CompanyID) Decision {
	d := Decision{Allowed: true}
	for _, capability := range required {
		if !effective.Capabilities.Has(capability) {
			d.Missing = append(d.Missing, capability)
		}
	}
	if len(d.Missing) > 0 {
		d.Allowed = false
		d.Reasons = append(d.Reasons, ReasonMissingCapability)
	}
	if target != nil && !effective.Companies.Has(*target) {
		d.Allowed = false
		d.Reasons = append(d.Reasons, ReasonCompanyNotAllowed)
	}
	return d
}

// Denied reports whether the decision carries the given reason.
func (d Decision) Denied(reason DenyReason) bool {
	for _, r := range d.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}
