package session

import "errors"

var (
	// ErrBadPayload indicates a malformed authentication response.
	ErrBadPayload = errors.New("unexpected authentication response")
	// ErrNotAdmin indicates a role-gated action attempted without privilege.
	ErrNotAdmin = errors.New("only admin accounts can add cars")
)
