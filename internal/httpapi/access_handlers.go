package httpapi

import (
	"errors"
	"net/http"

	"gudam.org/internal/access"
	"gudam.org/internal/audit"
	"gudam.org/internal/obs"
	"gudam.org/internal/session"
)

// handleEffectivePermissions returns the caller's aggregated capabilities
// and company scope, the flat form every screen consumes.
func (a *API) handleEffectivePermissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}
	eff, err := a.resolver.Effective(r.Context(), userID)
	if err != nil {
		if errors.Is(err, access.ErrUnavailable) {
			respondError(w, http.StatusServiceUnavailable, "could_not_verify", msgCouldNotVerify)
			return
		}
		respondError(w, http.StatusInternalServerError, "internal", "authorization error")
		return
	}
	writeJSON(w, http.StatusOK, eff)
}

// handleRefreshPermissions drops the caller's cached aggregate so the next
// check re-reads the grant store. Administrative grant edits call this
// after saving.
func (a *API) handleRefreshPermissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	userID, ok := session.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}
	a.resolver.Invalidate(r.Context(), userID)
	_ = audit.LogEvent(r.Context(), "permissions.refreshed", nil)
	w.WriteHeader(http.StatusNoContent)
}

type accessCheckRequest struct {
	Required  []string          `json:"required"`
	CompanyID *access.CompanyID `json:"company_id"`
}

// handleAccessCheck is the route-guard endpoint: the console posts the
// requirement for a route before navigating to it.
func (a *API) handleAccessCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	ctx := r.Context()
	userID, ok := session.UserIDFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}
	var req accessCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if session.IsSuperuser(ctx) || session.HasRole(ctx, "admin") {
		writeJSON(w, http.StatusOK, access.Decision{Allowed: true})
		return
	}

	eff, err := a.resolver.Effective(ctx, userID)
	if err != nil {
		if errors.Is(err, access.ErrUnavailable) {
			respondError(w, http.StatusServiceUnavailable, "could_not_verify", msgCouldNotVerify)
			return
		}
		respondError(w, http.StatusInternalServerError, "internal", "authorization error")
		return
	}

	decision := access.Decide(eff, req.Required, req.CompanyID)
	obs.CountDecision(decision.Allowed, reasonStrings(decision.Reasons))
	if !decision.Allowed {
		_ = audit.LogEvent(ctx, "access.denied", map[string]any{
			"required": req.Required,
			"missing":  decision.Missing,
			"reasons":  decision.Reasons,
		})
	}
	writeJSON(w, http.StatusOK, decision)
}

// handleNavigation reports which navigation groups should render for the
// caller, one coarse visibility flag per module.
func (a *API) handleNavigation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	ctx := r.Context()
	userID, ok := session.UserIDFromContext(ctx)
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}

	modules := make(map[access.ModuleName]bool, len(access.ModuleNames))
	if session.IsSuperuser(ctx) || session.HasRole(ctx, "admin") {
		for _, name := range access.ModuleNames {
			modules[name] = true
		}
		writeJSON(w, http.StatusOK, map[string]any{"modules": modules})
		return
	}

	grants, err := a.resolver.Grants(ctx, userID)
	if err != nil {
		if errors.Is(err, access.ErrUnavailable) {
			respondError(w, http.StatusServiceUnavailable, "could_not_verify", msgCouldNotVerify)
			return
		}
		respondError(w, http.StatusInternalServerError, "internal", "authorization error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"modules": access.VisibleModules(grants)})
}
