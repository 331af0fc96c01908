package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultErrorHandler(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing token",
			err:        ErrJWTMissing,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"message":"JWT is missing."}`,
		},
		{
			name:       "invalid token",
			err:        InvalidError(errors.New("token is expired")),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"JWT is invalid."}`,
		},
		{
			name:       "extraction failure",
			err:        fmt.Errorf("error extracting token: %w", ErrMalformedAuthHeader),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"Something went wrong while checking the JWT."}`,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			DefaultErrorHandler(recorder, httptest.NewRequest(http.MethodGet, "/", nil), testCase.err)

			assert.Equal(t, testCase.wantStatus, recorder.Code)
			assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))
			assert.Equal(t, testCase.wantBody, recorder.Body.String())
		})
	}
}

func Test_invalidError(t *testing.T) {
	details := errors.New("signature mismatch")
	err := InvalidError(details)

	assert.ErrorIs(t, err, ErrJWTInvalid)
	assert.ErrorIs(t, err, details)
	assert.NotErrorIs(t, err, ErrJWTMissing)
	assert.EqualError(t, err, "jwt invalid: signature mismatch")
}
