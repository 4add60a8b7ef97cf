package service

import "errors"

// Sentinel errors returned by the services and repositories. Callers
// match them with errors.Is; each site wraps them with context via
// fmt.Errorf("...: %w", ...).
var (
	// ErrInsufficientCredits indicates a debit larger than the balance
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrAlreadySettled indicates a state transition on a bet that has
	// already left its open state
	ErrAlreadySettled = errors.New("bet already settled")

	// ErrNotFound indicates a missing profile, bet, or settings record
	ErrNotFound = errors.New("not found")

	// ErrUnknownField indicates a config field name outside the schema
	ErrUnknownField = errors.New("unknown setting")

	// ErrInvalidValue indicates a value that failed parsing or validation
	ErrInvalidValue = errors.New("invalid value")
)
