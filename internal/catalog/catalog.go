// Package catalog holds the company-scoped read models served by the
// console's list screens. Each record carries its owning company so the
// access layer can filter rows before anything reaches the client.
package catalog

import (
	"context"
	"errors"
	"time"

	"gudam.org/internal/access"
)

var (
	ErrNotFound     = errors.New("catalog: not found")
	ErrInvalidInput = errors.New("catalog: invalid input")
)

// Booking is one crop booking placed against a company warehouse.
type Booking struct {
	ID        string            `json:"id"`
	CompanyID *access.CompanyID `json:"company_id"`
	PartyName string            `json:"party_name"`
	Quantity  int64             `json:"quantity"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// Product is a catalog product owned by a company.
type Product struct {
	ID        string            `json:"id"`
	CompanyID *access.CompanyID `json:"company_id"`
	Name      string            `json:"name"`
	Category  string            `json:"category"`
	CreatedAt time.Time         `json:"created_at"`
}

// Pallot is a warehouse storage location.
type Pallot struct {
	ID        string            `json:"id"`
	CompanyID *access.CompanyID `json:"company_id"`
	Label     string            `json:"label"`
	Location  string            `json:"location"`
	CreatedAt time.Time         `json:"created_at"`
}

// Party is a trading counterpart (farmer, buyer, commission agent).
type Party struct {
	ID        string            `json:"id"`
	CompanyID *access.CompanyID `json:"company_id"`
	Name      string            `json:"name"`
	Phone     string            `json:"phone"`
	CreatedAt time.Time         `json:"created_at"`
}

// SalesRep is a field sales representative record.
type SalesRep struct {
	ID        string            `json:"id"`
	CompanyID *access.CompanyID `json:"company_id"`
	Name      string            `json:"name"`
	Area      string            `json:"area"`
	CreatedAt time.Time         `json:"created_at"`
}

// Translation is a UI string. Translations are global reference data and
// carry no company scope.
type Translation struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Language string `json:"language"`
	Value    string `json:"value"`
}

func scope(id *access.CompanyID) (access.CompanyID, bool) {
	if id == nil {
		return 0, false
	}
	return *id, true
}

func (b Booking) CompanyScope() (access.CompanyID, bool)  { return scope(b.CompanyID) }
func (p Product) CompanyScope() (access.CompanyID, bool)  { return scope(p.CompanyID) }
func (p Pallot) CompanyScope() (access.CompanyID, bool)   { return scope(p.CompanyID) }
func (p Party) CompanyScope() (access.CompanyID, bool)    { return scope(p.CompanyID) }
func (s SalesRep) CompanyScope() (access.CompanyID, bool) { return scope(s.CompanyID) }

// Store describes the persistence operations the list screens need.
type Store interface {
	ListBookings(ctx context.Context) ([]Booking, error)
	CreateBooking(ctx context.Context, b *Booking) error
	ListProducts(ctx context.Context) ([]Product, error)
	ListPallots(ctx context.Context) ([]Pallot, error)
	ListParties(ctx context.Context) ([]Party, error)
	ListSalesReps(ctx context.Context) ([]SalesRep, error)
	ListTranslations(ctx context.Context) ([]Translation, error)
}
