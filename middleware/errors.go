package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrJWTMissing is returned when the JWT is missing.
	ErrJWTMissing = errors.New("jwt missing")

	// ErrJWTInvalid is returned when the JWT is invalid.
	ErrJWTInvalid = errors.New("jwt invalid")

	// ErrClaimsNotFound is returned when no claims are stored in the context.
	ErrClaimsNotFound = errors.New("claims not found in context")
)

// ErrorHandler is called when the middleware rejects a request. err can be
// checked with errors.Is against ErrJWTMissing and ErrJWTInvalid. Any other
// error means the token could not be extracted from the request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// ErrorStatus maps a middleware error to the HTTP status and message
// DefaultErrorHandler answers with.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrJWTMissing):
		return http.StatusBadRequest, "JWT is missing."
	case errors.Is(err, ErrJWTInvalid):
		return http.StatusUnauthorized, "JWT is invalid."
	default:
		return http.StatusInternalServerError, "Something went wrong while checking the JWT."
	}
}

// DefaultErrorHandler answers 400 for ErrJWTMissing, 401 for ErrJWTInvalid and
// 500 for everything else, with a JSON message body.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	status, message := ErrorStatus(err)

	body, _ := json.Marshal(ErrorBody{Message: message})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// ErrorBody is the JSON body of a rejected request.
type ErrorBody struct {
	Message string `json:"message"`
}

// invalidError wraps a validation error so that it matches ErrJWTInvalid
// while still unwrapping to the validator's error.
type invalidError struct {
	details error
}

// Is allows the error to support equality to ErrJWTInvalid.
func (e invalidError) Is(target error) bool {
	return target == ErrJWTInvalid
}

func (e invalidError) Error() string {
	return fmt.Sprintf("%s: %s", ErrJWTInvalid, e.details)
}

// Unwrap allows the error to support equality to the
// underlying error and not just ErrJWTInvalid.
func (e invalidError) Unwrap() error {
	return e.details
}

// InvalidError wraps err so that it matches ErrJWTInvalid. The framework
// adapters use it to report validation failures the same way CheckJWT does.
func InvalidError(err error) error {
	return invalidError{details: err}
}
