package pg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gudam.org/internal/access"
	"gudam.org/internal/catalog"
	"gudam.org/internal/ids"
)

var _ catalog.Store = (*Store)(nil)

func scanCompany(v sql.NullInt64) *access.CompanyID {
	if !v.Valid {
		return nil
	}
	id := access.CompanyID(v.Int64)
	return &id
}

func (s *Store) ListBookings(ctx context.Context) ([]catalog.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, company_id, party_name, quantity, status, created_at
		from bookings
		order by created_at desc, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Booking
	for rows.Next() {
		var (
			b       catalog.Booking
			company sql.NullInt64
		)
		if err := rows.Scan(&b.ID, &company, &b.PartyName, &b.Quantity, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.CompanyID = scanCompany(company)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) CreateBooking(ctx context.Context, b *catalog.Booking) error {
	if b.PartyName == "" || b.Quantity <= 0 {
		return fmt.Errorf("%w: party_name and positive quantity are required", catalog.ErrInvalidInput)
	}
	if b.ID == "" {
		b.ID = ids.New()
	}
	if b.Status == "" {
		b.Status = "pending"
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	var company any
	if b.CompanyID != nil {
		company = int64(*b.CompanyID)
	}
	_, err := s.db.ExecContext(ctx, `
		insert into bookings(id, company_id, party_name, quantity, status, created_at)
		values ($1, $2, $3, $4, $5, $6)
	`, b.ID, company, b.PartyName, b.Quantity, b.Status, b.CreatedAt)
	return err
}

func (s *Store) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, company_id, name, category, created_at
		from products
		order by name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		var (
			p       catalog.Product
			company sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &company, &p.Name, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CompanyID = scanCompany(company)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ListPallots(ctx context.Context) ([]catalog.Pallot, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, company_id, label, location, created_at
		from pallots
		order by label, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Pallot
	for rows.Next() {
		var (
			p       catalog.Pallot
			company sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &company, &p.Label, &p.Location, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CompanyID = scanCompany(company)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ListParties(ctx context.Context) ([]catalog.Party, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, company_id, name, phone, created_at
		from parties
		order by name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Party
	for rows.Next() {
		var (
			p       catalog.Party
			company sql.NullInt64
		)
		if err := rows.Scan(&p.ID, &company, &p.Name, &p.Phone, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.CompanyID = scanCompany(company)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) ListSalesReps(ctx context.Context) ([]catalog.SalesRep, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, company_id, name, area, created_at
		from sales_reps
		order by name, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.SalesRep
	for rows.Next() {
		var (
			r       catalog.SalesRep
			company sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &company, &r.Name, &r.Area, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.CompanyID = scanCompany(company)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) ListTranslations(ctx context.Context) ([]catalog.Translation, error) {
	rows, err := s.db.QueryContext(ctx, `
		select id, key, language, value
		from translations
		order by key, language
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Translation
	for rows.Next() {
		var tr catalog.Translation
		if err := rows.Scan(&tr.ID, &tr.Key, &tr.Language, &tr.Value); err != nil {
			return nil, err
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}
