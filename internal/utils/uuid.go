package utils

import "github.com/google/uuid"

// IDGenerator produces unique string identifiers.
type IDGenerator func() string

// NewID returns a time-ordered UUID v7, falling back to a random v4 if the
// v7 generator fails.
//
// Used for the universal installation id and for mobile-originated message
// ids.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// IsValidID reports whether id parses as a UUID.
func IsValidID(id string) bool {
	return uuid.Validate(id) == nil
}
