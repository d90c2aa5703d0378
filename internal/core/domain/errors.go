package domain

import (
	"errors"
	"fmt"
)

// RequestError is a backend-reported failure: a response was received but its
// status was not 2xx. Message carries the backend's own error detail, falling
// back to a generic one when the body was unstructured.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend: %d: %s", e.StatusCode, e.Message)
}

// ErrorMessage returns the backend's detail when err wraps a RequestError
// with one, otherwise the supplied fallback.
func ErrorMessage(err error, fallback string) string {
	var re *RequestError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return fallback
}

var ErrSessionExpired = errors.New("session expired")
var ErrNotAuthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidCredentials = errors.New("invalid credentials")

var ErrNotFound = errors.New("record not found")
var ErrEmptyCart = errors.New("cart is empty")
var ErrDiscountNotFound = errors.New("discount code not found")
var ErrInvalidStep = errors.New("wizard step not reachable")
var ErrUnknownResource = errors.New("unknown resource")
