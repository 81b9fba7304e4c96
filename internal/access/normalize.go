package access

// CapabilitySet is a set of flat "{submodule}_{action}" capability strings.
type CapabilitySet map[string]struct{}

// Has reports whether the capability is present.
func (s CapabilitySet) Has(capability string) bool {
	_, ok := s[capability]
	return ok
}

// CompanySet is a set of allowed tenant company ids.
type CompanySet map[CompanyID]struct{}

// Has reports whether the company is in scope.
func (s CompanySet) Has(id CompanyID) bool {
	_, ok := s[id]
	return ok
}

// Capability formats the flat capability string for a submodule action.
// The module name is deliberately absent: "product_view" is the same
// capability no matter which module column granted it, which is how every
// screen of the console checks permissions.
func Capability(submodule, action string) string {
	return submodule + "_" + action
}

// Normalized is the flat form of a single grant.
type Normalized struct {
	Capabilities CapabilitySet
	Companies    CompanySet
}

// Normalize flattens one grant's module/submodule/action structure into
// capability strings and its company list into a company set. Malformed
// module values contribute nothing; Normalize never fails.
func Normalize(grant PermissionGrant) Normalized {
	n := Normalized{
		Capabilities: CapabilitySet{},
		Companies:    CompanySet{},
	}
	for _, value := range grant.moduleValues() {
		for submodule, actions := range value.Submodules() {
			for action, allowed := range actions {
				if allowed {
					n.Capabilities[Capability(submodule, action)] = struct{}{}
				}
			}
		}
	}
	for _, id := range grant.Companies {
		n.Companies[id] = struct{}{}
	}
	return n
}
