package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidGender          = errors.New("invalid gender")
	ErrInvalidBirthday        = errors.New("invalid birthday")
	ErrInvalidEmail           = errors.New("invalid email")
	ErrInvalidPhone           = errors.New("invalid phone number")
	ErrEmptyTag               = errors.New("tag cannot be empty")
	ErrInvalidCustomAttribute = errors.New("invalid custom attribute")
	ErrEmptyMOText            = errors.New("message text is required")
	ErrEmptyMOMessages        = errors.New("messages list cannot be empty")
	ErrInvalidInstallation    = errors.New("installation fields are managed by the client")
)
