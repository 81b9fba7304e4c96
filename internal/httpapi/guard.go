package httpapi

import (
	"errors"
	"net/http"

	"gudam.org/internal/access"
	"gudam.org/internal/audit"
	"gudam.org/internal/obs"
	"gudam.org/internal/session"
)

// Messages for the two user-visible failure states. They must stay
// distinguishable: one means "you lack permission", the other "we could
// not check".
const (
	msgNotAuthorized  = "you are not authorized to access this resource"
	msgCouldNotVerify = "could not verify access, try again"
)

// authz is the outcome of a successful guard pass, carried into handlers
// for row-level filtering.
type authz struct {
	UserID    string
	Superuser bool
	Effective access.EffectivePermissions
}

// Companies returns the effective company scope for row filtering.
func (z authz) Companies() access.CompanySet {
	return z.Effective.Companies
}

// authorize is the route guard: it resolves the caller's effective
// permissions and applies the access decision for the given requirement.
// On failure it writes the response and returns ok=false. Superusers and
// staff bypass the capability check entirely, as the console always has.
func (a *API) authorize(w http.ResponseWriter, r *http.Request, required []string, target *access.CompanyID) (authz, bool) {
	ctx := r.Context()
	userID, ok := session.UserIDFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return authz{}, false
	}
	if session.IsSuperuser(ctx) || session.HasRole(ctx, "admin") {
		return authz{UserID: userID, Superuser: true}, true
	}

	eff, err := a.resolver.Effective(ctx, userID)
	if err != nil {
		// Transport failure is full denial, but it must not read as a
		// permission problem to the user.
		if errors.Is(err, access.ErrUnavailable) {
			respondError(w, http.StatusServiceUnavailable, "could_not_verify", msgCouldNotVerify)
			return authz{}, false
		}
		respondError(w, http.StatusInternalServerError, "internal", "authorization error")
		return authz{}, false
	}

	decision := access.Decide(eff, required, target)
	obs.CountDecision(decision.Allowed, reasonStrings(decision.Reasons))
	if !decision.Allowed {
		_ = audit.LogEvent(ctx, "access.denied", map[string]any{
			"path":     r.URL.Path,
			"required": required,
			"missing":  decision.Missing,
			"reasons":  decision.Reasons,
		})
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error":   msgNotAuthorized,
			"code":    "not_authorized",
			"reasons": decision.Reasons,
		})
		return authz{}, false
	}
	return authz{UserID: userID, Effective: eff}, true
}

func reasonStrings(reasons []access.DenyReason) []string {
	out := make([]string, 0, len(reasons))
	for _, r := range reasons {
		out = append(out, string(r))
	}
	return out
}
