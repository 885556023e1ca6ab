package models

import "errors"

// ErrNotFound is wrapped by ledger readers when a single-row lookup misses.
var ErrNotFound = errors.New("not found")
