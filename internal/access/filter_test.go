package access

import "testing"

type testRow struct {
	ID      int
	Company *CompanyID
}

func (r testRow) CompanyScope() (CompanyID, bool) {
	if r.Company == nil {
		return 0, false
	}
	return *r.Company, true
}

func TestFilterVisibleFailClosed(t *testing.T) {
	rows := []testRow{
		{ID: 1, Company: companyRef(1)},
		{ID: 2, Company: companyRef(2)},
		{ID: 3, Company: nil},
	}
	allowed := CompanySet{1: {}}

	got := FilterVisible(rows, allowed)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only row 1, got %v", got)
	}
}

func TestFilterVisibleIncludeUnscoped(t *testing.T) {
	rows := []testRow{
		{ID: 1, Company: companyRef(1)},
		{ID: 2, Company: companyRef(2)},
		{ID: 3, Company: nil},
	}
	allowed := CompanySet{1: {}}

	got := FilterVisible(rows, allowed, IncludeUnscoped())
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 {
		t.Fatalf("expected rows [1 3], got %v", got)
	}
}

func TestFilterVisiblePreservesOrder(t *testing.T) {
	rows := []testRow{
		{ID: 5, Company: companyRef(2)},
		{ID: 4, Company: companyRef(1)},
		{ID: 6, Company: companyRef(2)},
	}
	allowed := CompanySet{2: {}}

	got := FilterVisible(rows, allowed)
	if len(got) != 2 || got[0].ID != 5 || got[1].ID != 6 {
		t.Fatalf("filter must be stable, got %v", got)
	}
}

func TestFilterVisibleEmptyAllowedDeniesAll(t *testing.T) {
	rows := []testRow{{ID: 1, Company: companyRef(1)}}
	if got := FilterVisible(rows, CompanySet{}); len(got) != 0 {
		t.Fatalf("empty company scope must hide every row, got %v", got)
	}
}
