package types

import "errors"

// Domain errors. ErrEmptyQuery is the only error the search pipeline
// surfaces to callers; collaborator failures are downgraded to fallbacks
// at the call site and an unknown part number is an absent result, not
// an error.
var (
	ErrEmptyQuery      = errors.New("query cannot be empty")
	ErrEmptyPartNumber = errors.New("part number cannot be empty")
	ErrNegativePrice   = errors.New("price must be >= 0")
	ErrNegativeStock   = errors.New("stock must be >= 0")
)
