package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                        "/",
		"/metrics":                "/metrics",
		"/v1/bookings":            "/v1/bookings",
		"/v1/bookings/01ABCDEF":   "/v1/bookings/:id",
		"/v1/products/42":         "/v1/products/:id",
		"/v1/products/42/extra":   "/v1/products/42/extra",
		"/v1/navigation":          "/v1/navigation",
		"/v1/bookings?company=1":  "/v1/bookings",
		"/v1/permissions/me":      "/v1/permissions/me",
		"/v1/translations":        "/v1/translations",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
