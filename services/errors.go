package services

import "errors"

// Sentinel errors shared by all services. Handlers map these onto HTTP
// statuses; anything else is a 500.
var (
	// ErrNotFound: a referenced user/course/chapter/alert row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateAction: a one-shot action (alert response, agreement
	// signing) was already recorded for this user. Never a double grant.
	ErrDuplicateAction = errors.New("action already recorded")

	// ErrInvalidInput: the request is malformed at the service level
	// (negative amount, unknown report type, bad index).
	ErrInvalidInput = errors.New("invalid input")
)
