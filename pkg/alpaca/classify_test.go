package alpaca

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		httpError bool
		protocol  int
		invalid   bool
	}{
		{name: "OK with value", status: http.StatusOK, body: `{"Value": 1, "ErrorNumber": 0}`},
		{name: "No content style 2xx", status: http.StatusAccepted, body: `{"ErrorNumber": 0}`},
		{name: "Bad request", status: http.StatusBadRequest, body: "Bad parameter", httpError: true},
		{name: "Not found", status: http.StatusNotFound, body: "not found", httpError: true},
		{name: "Internal error", status: http.StatusInternalServerError, body: "boom", httpError: true},
		{name: "Unavailable", status: http.StatusServiceUnavailable, body: "", httpError: true},
		{name: "Redirect", status: http.StatusFound, body: "", httpError: true},
		{name: "Protocol error", status: http.StatusOK, body: `{"ErrorNumber": 1025, "ErrorMessage": "Invalid value"}`, protocol: 1025},
		{name: "Malformed JSON", status: http.StatusOK, body: `{"Value":`, invalid: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := classify(tc.status, []byte(tc.body))

			var httpErr *HTTPError
			var alpacaErr *AlpacaError
			switch {
			case tc.httpError:
				require.True(t, errors.As(err, &httpErr), "expected HTTPError, got %v", err)
				assert.Equal(t, tc.status, httpErr.StatusCode)
				assert.Equal(t, tc.body, httpErr.Message)
			case tc.protocol != 0:
				require.True(t, errors.As(err, &alpacaErr), "expected AlpacaError, got %v", err)
				assert.Equal(t, tc.protocol, alpacaErr.Number)
			case tc.invalid:
				require.Error(t, err)
				assert.False(t, errors.As(err, &httpErr))
				assert.False(t, errors.As(err, &alpacaErr))
			default:
				require.NoError(t, err)
				assert.NotNil(t, resp)
			}
		})
	}
}

func TestAlpacaErrorIs(t *testing.T) {
	err := &AlpacaError{Number: 0x407, Message: "Dome is not connected"}
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.NotErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "Error 1031: Dome is not connected", err.Error())
}

func TestResponseDecode(t *testing.T) {
	r := Response{Value: []byte("null")}
	assert.False(t, r.HasValue())
	assert.ErrorIs(t, r.Decode(new(int)), ErrNoValue)

	r = Response{Value: []byte("3")}
	var n int
	require.NoError(t, r.Decode(&n))
	assert.Equal(t, 3, n)
}
