package access

// ModuleVisible reports whether a navigation group for the module should
// render, given that module's raw value from each of the user's grants.
// A module is visible if any grant makes it visible. This check runs
// before any route or action is known, so it is deliberately looser than
// Decide: presence of structure is enough, truthy leaves are not required.
func ModuleVisible(values ...ModuleValue) bool {
	for _, v := range values {
		if v.Visible() {
			return true
		}
	}
	return false
}

// VisibleModules computes the per-module visibility map across a user's
// grants, in the shape navigation rendering consumes.
func VisibleModules(grants []PermissionGrant) map[ModuleName]bool {
	out := make(map[ModuleName]bool, len(ModuleNames))
	for _, name := range ModuleNames {
		visible := false
		for _, grant := range grants {
			if grant.Module(name).Visible() {
				visible = true
				break
			}
		}
		out[name] = visible
	}
	return out
}
