package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

// Kind tags the error categories the API distinguishes.
type Kind int

const (
	// KindValidation marks a malformed or incomplete entity payload.
	KindValidation Kind = iota
	// KindNotProvided marks a missing/empty entity payload.
	KindNotProvided
	// KindBadID marks a non-numeric path id parameter.
	KindBadID
	// KindNotFound marks a valid id that matched no stored row.
	KindNotFound
	// KindUnexpected marks any failure the API does not recognize.
	KindUnexpected
)

// Error is the single error currency of the API. Every failure that reaches
// a client is rendered from one of these, as {status, message, error?, detail?}.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the wire envelope. The wrapped error is flattened to its
// message so internals are visible in logs but not leaked as structure.
func (e *Error) MarshalJSON() ([]byte, error) {
	envelope := struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
		Err     string `json:"error,omitempty"`
		Detail  string `json:"detail,omitempty"`
	}{
		Status:  e.Status,
		Message: e.Message,
		Detail:  e.Detail,
	}
	if e.Err != nil {
		envelope.Err = e.Err.Error()
	}
	return json.Marshal(envelope)
}

// NewValidation builds a 400 validation error. Detail carries the message of
// the first field rule that failed.
func NewValidation(message, detail string) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: message,
		Detail:  detail,
	}
}

// NewNotProvided builds a 400 error for an absent entity payload.
func NewNotProvided(message string) *Error {
	return &Error{
		Kind:    KindNotProvided,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// NewBadID builds a 404 error for a malformed path id.
func NewBadID(message string) *Error {
	return &Error{
		Kind:    KindBadID,
		Status:  http.StatusNotFound,
		Message: message,
	}
}

// NewNotFound builds the domain "was not found" error. It intentionally maps
// to 400, not 404; only malformed path ids produce 404 in this API.
func NewNotFound(message string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// NewUnexpected builds a 500 error carrying the original failure for
// diagnostics. Callers only ever see the message.
func NewUnexpected(message string, err error) *Error {
	if message == "" {
		message = "Unexpected error"
	}
	return &Error{
		Kind:    KindUnexpected,
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// Parse returns err unchanged when it is already an API error, and wraps
// anything else as an unexpected error with the given default message.
func Parse(err error, defaultMessage string) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewUnexpected(defaultMessage, err)
}

// ParseID parses a path parameter into an integer id. A non-numeric value
// fails with a 404 carrying the supplied message.
func ParseID(param, message string) (int, error) {
	id, err := strconv.Atoi(param)
	if err != nil {
		return 0, NewBadID(message)
	}
	return id, nil
}
