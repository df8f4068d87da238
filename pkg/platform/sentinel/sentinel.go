package sentinel

import "errors"

// Store-level facts. Stores return these (optionally wrapped) and services turn
// them into coded domain errors:
//   - ErrNotFound: no row for the key
//   - ErrAlreadyUsed: a unique key (address, message id) is taken
//   - ErrInvalidState: the row exists but a guarded update did not apply
//   - ErrUnavailable: backing service unreachable
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
