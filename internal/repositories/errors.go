package repositories

import "errors"

// ErrNotFound is wrapped by lookups that target a missing row.
var ErrNotFound = errors.New("record not found")
