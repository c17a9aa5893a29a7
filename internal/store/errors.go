package store

import "github.com/wonny/grq-validation/internal/contracts"

// ErrNotFound no rows for the requested score date or run
var ErrNotFound = contracts.ErrNotFound
