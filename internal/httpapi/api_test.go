package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gudam.org/internal/access"
	"gudam.org/internal/catalog"
	"gudam.org/internal/session"
)

type stubGrantSource struct {
	grants map[string][]access.PermissionGrant
	err    error
}

func (s *stubGrantSource) FetchGrantsForUser(_ context.Context, userID string) ([]access.PermissionGrant, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.grants[userID], nil
}

type stubCatalog struct {
	bookings     []catalog.Booking
	products     []catalog.Product
	pallots      []catalog.Pallot
	parties      []catalog.Party
	reps         []catalog.SalesRep
	translations []catalog.Translation
	created      []*catalog.Booking
}

func (s *stubCatalog) ListBookings(context.Context) ([]catalog.Booking, error) {
	return s.bookings, nil
}

func (s *stubCatalog) CreateBooking(_ context.Context, b *catalog.Booking) error {
	b.ID = "b-new"
	b.Status = "pending"
	b.CreatedAt = time.Now().UTC()
	s.created = append(s.created, b)
	return nil
}

func (s *stubCatalog) ListProducts(context.Context) ([]catalog.Product, error) {
	return s.products, nil
}

func (s *stubCatalog) ListPallots(context.Context) ([]catalog.Pallot, error) {
	return s.pallots, nil
}

func (s *stubCatalog) ListParties(context.Context) ([]catalog.Party, error) {
	return s.parties, nil
}

func (s *stubCatalog) ListSalesReps(context.Context) ([]catalog.SalesRep, error) {
	return s.reps, nil
}

func (s *stubCatalog) ListTranslations(context.Context) ([]catalog.Translation, error) {
	return s.translations, nil
}

type apiClient struct {
	baseURL string
	client  *http.Client
	t       *testing.T
}

func newTestAPI(t *testing.T, source access.GrantSource, store catalog.Store) *apiClient {
	t.Helper()

	t.Setenv("GUDAM_SESSION_SECRET", "test-secret")
	session.ResetSecretForTests()
	t.Cleanup(session.ResetSecretForTests)

	resolver, err := access.NewResolver(source)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	api := New(ReadyProbe{}, "test", resolver, store)
	api.rateBurst = 100
	api.ratePerSec = 100

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	return &apiClient{baseURL: srv.URL, client: srv.Client(), t: t}
}

func (c *apiClient) token(userID string, roles []string, superuser bool) string {
	c.t.Helper()
	token, err := session.MintToken(userID, roles, superuser, time.Minute)
	if err != nil {
		c.t.Fatalf("MintToken: %v", err)
	}
	return token
}

func (c *apiClient) do(method, path string, body any, token string) *http.Response {
	c.t.Helper()
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		payload = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.t.Fatalf("do request: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func parseGrant(t *testing.T, raw string) access.PermissionGrant {
	t.Helper()
	var grant access.PermissionGrant
	if err := json.Unmarshal([]byte(raw), &grant); err != nil {
		t.Fatalf("unmarshal grant: %v", err)
	}
	return grant
}

func TestHealthzIsPublic(t *testing.T) {
	api := newTestAPI(t, &stubGrantSource{}, nil)
	resp := api.do(http.MethodGet, "/healthz", nil, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestMissingTokenIsUnauthenticated(t *testing.T) {
	api := newTestAPI(t, &stubGrantSource{}, nil)
	resp := api.do(http.MethodGet, "/v1/permissions/me", nil, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if resp.Header.Get("WWW-Authenticate") == "" {
		t.Fatalf("expected WWW-Authenticate header")
	}
}

func TestGarbageTokenIsUnauthenticated(t *testing.T) {
	api := newTestAPI(t, &stubGrantSource{}, nil)
	resp := api.do(http.MethodGet, "/v1/permissions/me", nil, "not-a-token")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestEffectivePermissionsEndpoint(t *testing.T) {
	source := &stubGrantSource{grants: map[string][]access.PermissionGrant{
		"u-1": {
			parseGrant(t, `{"companies":[1],"sr_module":{"sr":{"view":true}}}`),
			parseGrant(t, `{"companies":[2],"sr_module":{"sr":{"delete":true}}}`),
		},
	}}
	api := newTestAPI(t, source, nil)

	resp := api.do(http.MethodGet, "/v1/permissions/me", nil, api.token("u-1", nil, false))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Capabilities []string `json:"capabilities"`
		Companies    []int64  `json:"companies"`
	}
	decodeBody(t, resp, &body)
	if len(body.Capabilities) != 2 || body.Capabilities[0] != "sr_delete" || body.Capabilities[1] != "sr_view" {
		t.Fatalf("unexpected capabilities %v", body.Capabilities)
	}
	if len(body.Companies) != 2 || body.Companies[0] != 1 || body.Companies[1] != 2 {
		t.Fatalf("unexpected companies %v", body.Companies)
	}
}

func TestGrantStoreOutageIsNotADenial(t *testing.T) {
	source := &stubGrantSource{err: context.DeadlineExceeded}
	api := newTestAPI(t, source, nil)

	resp := api.do(http.MethodGet, "/v1/permissions/me", nil, api.token("u-1", nil, false))
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
	var body map[string]any
	decodeBody(t, resp, &body)
	if body["code"] != "could_not_verify" {
		t.Fatalf("outage must read as could_not_verify, got %v", body["code"])
	}
}
