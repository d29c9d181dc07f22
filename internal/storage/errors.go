package storage

import "errors"

// Errors returned by AccountStore implementations. Callers match them with
// errors.Is; the returned error carries the offending account id.
var (
	ErrDuplicateAccountID = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
)
