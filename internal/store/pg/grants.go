package pg

import (
	"context"
	"encoding/json"
	"time"

	"gudam.org/internal/access"
	"gudam.org/internal/obs"
)

var _ access.GrantSource = (*Store)(nil)

// grantColumns matches the permission_grants table: one JSONB column per
// module, exactly the shape the administrative flow writes.
const grantQuery = `
	select user_id, companies,
	       party_type_module, product_module, company_module, hr_module,
	       loan_module, booking_module, pallot_module, sr_module,
	       delivery_module, accounts_module, inventory_module,
	       settings_module, ledger_module
	from permission_grants
	where user_id = $1
	order by created_at, id
`

// FetchGrantsForUser returns every stored grant for the user. Zero rows is
// a valid result; transport errors bubble up for the resolver to classify.
func (s *Store) FetchGrantsForUser(ctx context.Context, userID string) ([]access.PermissionGrant, error) {
	start := time.Now()
	grants, err := s.fetchGrants(ctx, userID)
	obs.ObserveGrantFetch(time.Since(start), err)
	return grants, err
}

func (s *Store) fetchGrants(ctx context.Context, userID string) ([]access.PermissionGrant, error) {
	rows, err := s.db.QueryContext(ctx, grantQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []access.PermissionGrant
	for rows.Next() {
		var (
			uid     string
			columns [14][]byte
		)
		dest := make([]any, 0, 15)
		dest = append(dest, &uid)
		for i := range columns {
			dest = append(dest, &columns[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		grant := access.PermissionGrant{UserID: uid}
		decodeColumn(columns[0], &grant.Companies)
		modules := []any{
			&grant.PartyTypeModule, &grant.ProductModule, &grant.CompanyModule,
			&grant.HRModule, &grant.LoanModule, &grant.BookingModule,
			&grant.PallotModule, &grant.SRModule, &grant.DeliveryModule,
			&grant.AccountsModule, &grant.InventoryModule,
			&grant.SettingsModule, &grant.LedgerModule,
		}
		for i, target := range modules {
			decodeColumn(columns[i+1], target)
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return grants, nil
}

// decodeColumn unmarshals one JSONB column. NULL columns and decode
// failures leave the zero value, which the access layer treats as "no
// access granted".
func decodeColumn(raw []byte, target any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, target)
}
