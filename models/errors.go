package models

import "errors"

// Failure taxonomy shared by every domain operation. Callers match with
// errors.Is; detail is carried by wrapping with fmt.Errorf("%w: ...").
var (
	// ErrValidation covers out-of-range ratings, non-positive amounts or
	// prices, empty order item lists, mismatched item/quantity arity, and
	// unknown HR action names.
	ErrValidation = errors.New("validation failed")

	// ErrInsufficientFunds is returned when a withdrawal or an order total
	// exceeds the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnauthorized is returned when an inactive account attempts a gated
	// action, or an HR/closure action targets the wrong entity kind.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDuplicateRegistration is returned when a visitor applies twice.
	ErrDuplicateRegistration = errors.New("registration application already submitted")

	// ErrBlacklisted is returned when a blacklisted email applies to register.
	ErrBlacklisted = errors.New("email is blacklisted")

	// ErrNotFound is returned for updates against items the actor does not own.
	ErrNotFound = errors.New("not found")

	// ErrInvalidStateTransition is returned for cancelling a delivered order
	// or closing an account with non-terminal orders.
	ErrInvalidStateTransition = errors.New("invalid state transition")
)
