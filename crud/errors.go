package crud

import "errors"

var (
	// ErrUserNotFound reports a lookup or deactivation of an unknown user id.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken reports a registration with an already-registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNoEligibleRecipient reports a deactivation with no other active
	// user left to take over the target's items.
	ErrNoEligibleRecipient = errors.New("no eligible recipient for items")
)
