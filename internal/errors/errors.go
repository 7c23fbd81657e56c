package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user record is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrCaseNotFound is returned when a violation case is not found.
	ErrCaseNotFound = errors.New("case not found")
	// ErrQueryNotFound is returned when a support query is not found.
	ErrQueryNotFound = errors.New("query not found")
	// ErrPaymentNotFound is returned when a payment record is not found.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrPlateNotFound is returned when no user matches a number plate.
	ErrPlateNotFound = errors.New("no user registered with that number plate")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionInvalid is returned when an admin token is missing, unknown or expired.
	ErrSessionInvalid = errors.New("invalid or expired session token")
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidAmount is returned when a fine or payment amount is not positive.
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	// ErrCaseAlreadyPaid is returned when paying a case that is already settled.
	ErrCaseAlreadyPaid = errors.New("case is already paid")
)

// Envelope is the uniform response shape used by every route.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK builds a success envelope.
func OK(data interface{}, message string) Envelope {
	return Envelope{Success: true, Data: data, Message: message}
}

// Fail builds a failure envelope.
func Fail(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrCaseNotFound),
		errors.Is(err, ErrQueryNotFound),
		errors.Is(err, ErrPaymentNotFound),
		errors.Is(err, ErrPlateNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrSessionInvalid):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrCaseAlreadyPaid):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
