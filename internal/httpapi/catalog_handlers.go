package httpapi

import (
	"net/http"

	"gudam.org/internal/access"
	"gudam.org/internal/audit"
	"gudam.org/internal/catalog"
	"gudam.org/internal/session"
)

// listVisible runs the shared list-screen flow: guard the route, load the
// rows, filter them down to the caller's company scope.
func listVisible[T access.CompanyScoped](a *API, w http.ResponseWriter, r *http.Request, required []string, load func() ([]T, error), opts ...access.FilterOption) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if a.store == nil {
		respondError(w, http.StatusServiceUnavailable, "unavailable", "catalog store unavailable")
		return
	}
	z, ok := a.authorize(w, r, required, nil)
	if !ok {
		return
	}
	rows, err := load()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load records")
		return
	}
	if !z.Superuser {
		rows = access.FilterVisible(rows, z.Companies(), opts...)
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rows, "count": len(rows)})
}

func (a *API) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		listVisible(a, w, r, []string{"booking_view"}, func() ([]catalog.Booking, error) {
			return a.store.ListBookings(r.Context())
		})
	case http.MethodPost:
		a.handleCreateBooking(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

type createBookingRequest struct {
	CompanyID *access.CompanyID `json:"company_id"`
	PartyName string            `json:"party_name"`
	Quantity  int64             `json:"quantity"`
}

func (a *API) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		respondError(w, http.StatusServiceUnavailable, "unavailable", "catalog store unavailable")
		return
	}
	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}
	if req.CompanyID == nil {
		respondError(w, http.StatusBadRequest, "bad_request", "company_id is required")
		return
	}
	// Creating a booking requires both the capability and scope on the
	// booking's target company.
	if _, ok := a.authorize(w, r, []string{"booking_create"}, req.CompanyID); !ok {
		return
	}

	booking := &catalog.Booking{
		CompanyID: req.CompanyID,
		PartyName: req.PartyName,
		Quantity:  req.Quantity,
	}
	if err := a.store.CreateBooking(r.Context(), booking); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	_ = audit.LogEvent(r.Context(), "booking.created", map[string]any{
		"booking_id": booking.ID,
		"company_id": booking.CompanyID,
	})
	writeJSON(w, http.StatusCreated, booking)
}

func (a *API) handleProducts(w http.ResponseWriter, r *http.Request) {
	listVisible(a, w, r, []string{"product_view"}, func() ([]catalog.Product, error) {
		return a.store.ListProducts(r.Context())
	})
}

func (a *API) handlePallots(w http.ResponseWriter, r *http.Request) {
	listVisible(a, w, r, []string{"pallot_view"}, func() ([]catalog.Pallot, error) {
		return a.store.ListPallots(r.Context())
	})
}

func (a *API) handleParties(w http.ResponseWriter, r *http.Request) {
	listVisible(a, w, r, []string{"party_view"}, func() ([]catalog.Party, error) {
		return a.store.ListParties(r.Context())
	})
}

func (a *API) handleSalesReps(w http.ResponseWriter, r *http.Request) {
	listVisible(a, w, r, []string{"sr_view"}, func() ([]catalog.SalesRep, error) {
		return a.store.ListSalesReps(r.Context())
	})
}

// handleTranslations serves global reference data. There is no capability
// or company gate beyond authentication: translations are unscoped by
// design and every signed-in user needs them.
func (a *API) handleTranslations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if a.store == nil {
		respondError(w, http.StatusServiceUnavailable, "unavailable", "catalog store unavailable")
		return
	}
	if _, ok := session.UserIDFromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "authentication required")
		return
	}
	items, err := a.store.ListTranslations(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal", "failed to load records")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}
