package atmgo

import (
	"errors"
)

var (
	// ErrInvalidAmount rejects any non-positive charge amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds rejects a withdrawal or transfer exceeding the
	// account balance.
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrUnknownBank means the account-number prefix does not name a known
	// institution.
	ErrUnknownBank = errors.New("unknown bank")

	// ErrAccountNotFound means the bank resolved but holds no such account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAuthenticationFailed covers both a wrong PIN and a nonexistent
	// account number; callers cannot tell the two apart.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrAccountNumGen means the random account-number generator exhausted
	// its collision-retry budget.
	ErrAccountNumGen = errors.New("could not generate a unique account number")

	// ErrPersistenceUnavailable means the snapshot could not be read or
	// written. On save, the in-memory mutation it followed still stands.
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
