package service

import "errors"

var (
	// ErrRegistrationUnavailable is returned by explicit operations that need
	// a push registration id before the installation was created.
	ErrRegistrationUnavailable = errors.New("registration unavailable")

	// ErrNoRegistration is returned when a create response carries no push
	// registration id.
	ErrNoRegistration = errors.New("backend returned no push registration id")
)
