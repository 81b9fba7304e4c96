package access

import "errors"

var (
	// ErrUnavailable wraps grant store transport failures. Callers must
	// treat it as "could not verify access", never as implicit denial of
	// a specific capability and never as a reason to grant by default.
	ErrUnavailable = errors.New("access: grant store unavailable")

	errBadCompanyID = errors.New("access: company id is not numeric")
)
