package broadcast

import (
	"errors"
	"net/http"
)

// Error codes used when the failure did not come from the backend.
const (
	CodeUnknown  = "UNKNOWN"
	CodeNetwork  = "NETWORK_ERROR"
	CodeInternal = "INTERNAL_ERROR"
)

// MobileMessagingError is the structured error descriptor listeners receive.
type MobileMessagingError struct {
	Code    string
	Message string
	// Status is the HTTP status of the failed backend call, 0 when no
	// response was received.
	Status int

	err error
}

func (e *MobileMessagingError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

func (e *MobileMessagingError) Unwrap() error {
	return e.err
}

// FromError converts any error into a descriptor. Errors that expose
// StatusCode(), ErrorCode() or ErrorText() methods, like the adapter's
// backend error, contribute those values.
func FromError(err error) *MobileMessagingError {
	if err == nil {
		return nil
	}

	var mmErr *MobileMessagingError
	if errors.As(err, &mmErr) {
		return mmErr
	}

	out := &MobileMessagingError{Code: CodeUnknown, Message: err.Error(), err: err}

	var status interface{ StatusCode() int }
	if errors.As(err, &status) {
		out.Status = status.StatusCode()
		if out.Status == 0 {
			out.Code = CodeNetwork
		} else {
			out.Code = http.StatusText(out.Status)
		}
	}

	var code interface{ ErrorCode() string }
	if errors.As(err, &code) && code.ErrorCode() != "" {
		out.Code = code.ErrorCode()
	}

	var text interface{ ErrorText() string }
	if errors.As(err, &text) && text.ErrorText() != "" {
		out.Message = text.ErrorText()
	}

	return out
}
