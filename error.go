package tgfeed

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
)

// Extraction and pagination error codes.
const (
	// EFEEDEND means pagination was already exhausted before the call.
	EFEEDEND = "feed_end"

	// EMISSINGMETADATA means a message lacks number, author or date.
	// Only that message is dropped.
	EMISSINGMETADATA = "missing_metadata"

	// EMALFORMEDMEDIA means one content item is incomplete.
	// Only that item is dropped.
	EMALFORMEDMEDIA = "malformed_media"

	// EUNKNOWNFIELD means a field was looked up that the selector
	// registry does not define. It is a configuration error.
	EUNKNOWNFIELD = "unknown_field"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("tgfeed error: code=%s message=%s", e.Code, e.Message)
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
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
