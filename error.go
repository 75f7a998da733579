package scanhub

import (
	"errors"
	"fmt"
	"net/http"
)

// Application error codes.
const (
	EINTERNAL       = "internal"
	EINVALID        = "invalid"
	ENOTFOUND       = "not_found"
	ENETWORK        = "network"
	EFETCH          = "fetch"
	EPARSE          = "parse"
	ETIMEOUT        = "timeout"
	ECHALLENGE      = "challenge"
	EUNSUPPORTED    = "unsupported_source"
	EUNKNOWNSECTION = "unknown_section"
)

// Error represents an application-specific error. Err optionally carries
// the underlying cause so errors.Is keeps working through the wrapper.
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with the given code whose message is the
// formatted text followed by the cause.
func WrapError(code string, err error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return the error text.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ResponseError reports an upstream reply with a non-success status.
// The body is kept so callers can look for challenge-page markers.
type ResponseError struct {
	URL        string
	StatusCode int
	Body       string
	Header     http.Header
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("HTTP %d: %s for %s", e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not
// a ResponseError.
func StatusCode(err error) int {
	var e *ResponseError
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}

// IsChallenge reports whether err carries a bot-challenge page: either an
// ECHALLENGE error, or a ResponseError whose body d flags. A nil detector
// only recognizes ECHALLENGE.
func IsChallenge(d ChallengeDetector, err error) bool {
	if err == nil {
		return false
	}
	if ErrorCode(err) == ECHALLENGE {
		return true
	}
	var e *ResponseError
	if d != nil && errors.As(err, &e) {
		return d.Detect(e.Body, e.Header)
	}
	return false
}
