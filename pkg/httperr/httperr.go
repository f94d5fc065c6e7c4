package httperr

import (
	"errors"
	"net/http"
)

// ErrNotFound marks lookups for records that do not exist. Stores return it
// (possibly wrapped) so the boundary can map it to 404.
var ErrNotFound = errors.New("not found")

// Error is the client-facing failure shape. Delegate messages pass through
// verbatim; the status code comes from the delegate's own classification.
type Error struct {
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func (e *Error) Error() string { return e.Message }

func New(code int, msg string) *Error {
	return &Error{Message: msg, StatusCode: code}
}

// Wrap turns any error into an *Error, keeping an existing classification
// if one is already attached.
func Wrap(err error, fallbackCode int) *Error {
	if err == nil {
		return nil
	}
	var he *Error
	if errors.As(err, &he) {
		return he
	}
	return &Error{Message: err.Error(), StatusCode: StatusOf(err, fallbackCode)}
}

// StatusOf is the single error-to-HTTP-status classification used at the API
// boundary. Unknown errors get fallbackCode.
func StatusOf(err error, fallbackCode int) int {
	var he *Error
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &he):
		return he.StatusCode
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return fallbackCode
	}
}
