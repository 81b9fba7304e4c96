package access

// CompanyScoped is implemented by rows that may carry a company
// association. The second return value is false for rows with no company.
type CompanyScoped interface {
	CompanyScope() (CompanyID, bool)
}

type filterConfig struct {
	includeUnscoped bool
}

// FilterOption configures FilterVisible.
type FilterOption func(*filterConfig)

// IncludeUnscoped keeps rows that have no company association. Only
// genuinely global reference data (translations, shared settings) should
// opt in; the default excludes such rows.
func IncludeUnscoped() FilterOption {
	return func(c *filterConfig) { c.includeUnscoped = true }
}

// FilterVisible returns the rows whose company is in the allowed set,
// preserving input order. Rows lacking a company association are excluded
// unless the caller opts in with IncludeUnscoped. No deduplication is
// performed; rows are assumed unique by entity id.
func FilterVisible[T CompanyScoped](rows []T, allowed CompanySet, opts ...FilterOption) []T {
	var cfg filterConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		company, scoped := row.CompanyScope()
		if !scoped {
			if cfg.includeUnscoped {
				out = append(out, row)
			}
			continue
		}
		if allowed.Has(company) {
			out = append(out, row)
		}
	}
	return out
}
