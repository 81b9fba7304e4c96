package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"gudam.org/internal/session"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

var publicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/v1/info",
}

// withAuth verifies the bearer token on every non-public path and stores
// the authenticated identity in the request context. Token issuance and
// expiry live in the external identity service; this layer only consumes.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="gudam"`)
			respondError(w, http.StatusUnauthorized, "unauthenticated", err.Error())
			return
		}

		claims, err := session.Parse(token)
		if err != nil {
			if errors.Is(err, session.ErrInvalidToken) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="gudam"`)
				respondError(w, http.StatusUnauthorized, "unauthenticated", "invalid token")
				return
			}
			respondError(w, http.StatusInternalServerError, "internal", "authentication error")
			return
		}

		ctx := session.ContextWithUser(r.Context(), claims.Subject, claims.Roles, claims.Superuser)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	return false
}
