package casdoor

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrTransport is matched by every error raised while sending a request
	// or decoding its response body.
	ErrTransport = errors.New("casdoor transport failure")

	// ErrAPICall is matched by every error raised because Casdoor answered
	// with a status other than "ok".
	ErrAPICall = errors.New("casdoor api call failed")

	// ErrActionRequired is returned when a call is made with an empty action.
	ErrActionRequired = errors.New("action is required")
)

// TransportError reports a network, I/O or decoding failure. The request may
// or may not have reached Casdoor.
type TransportError struct {
	URL string
	Err error
}

// Error returns a string representation of the error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.URL, e.Err)
}

// Is allows the error to support equality to ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Unwrap exposes the underlying failure, including context.Canceled and
// context.DeadlineExceeded.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// APICallError reports a response envelope whose status was not "ok".
type APICallError struct {
	URL    string
	Status string
	Msg    string
}

// Error keeps the message format Casdoor SDKs have always used.
func (e *APICallError) Error() string {
	return fmt.Sprintf("Failed fetching %s : %s", e.URL, e.Msg)
}

// Is allows the error to support equality to ErrAPICall.
func (e *APICallError) Is(target error) bool {
	return target == ErrAPICall
}

// IsCanceled reports whether err was caused by the call's context being
// canceled or timing out.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
