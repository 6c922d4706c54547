package service

import (
	"errors"
)

// ErrAccountNotFound is returned when a username or id does not resolve to a
// known account. Callers surface it as a user-facing message and never retry.
var ErrAccountNotFound = errors.New("account not found")
