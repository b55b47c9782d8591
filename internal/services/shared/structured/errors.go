package structured

import (
	"errors"
)

// ErrorKind classifies dispatch failures.
type ErrorKind string

const (
	// ErrMalformedPayload means the payload is not JSON.
	ErrMalformedPayload ErrorKind = "malformed_payload"
	// ErrInvalidShape means the JSON matches no accepted shape for its family.
	ErrInvalidShape ErrorKind = "invalid_shape"
	// ErrResolutionFailed means an identifier lookup failed.
	ErrResolutionFailed ErrorKind = "resolution_failed"
)

// Error is a classified dispatch failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the dispatch error kind carried by err, or "" when err is
// not a dispatch failure.
func KindOf(err error) ErrorKind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return ""
}

func malformed() error {
	return &Error{Kind: ErrMalformedPayload, Message: "payload is not valid JSON"}
}

func invalidShape(message string) error {
	return &Error{Kind: ErrInvalidShape, Message: message}
}

func resolutionFailed(err error) error {
	return &Error{Kind: ErrResolutionFailed, Err: err}
}
