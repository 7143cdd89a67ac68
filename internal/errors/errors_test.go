package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapHTTPErrorPlainText(t *testing.T) {
	err := MapHTTPError(http.StatusNotFound, []byte("could not find media with id abc and type youtube\n"))
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Equal(t, "could not find media with id abc and type youtube", err.Message)
	assert.False(t, err.IsRetryable())
}

func TestMapHTTPErrorJSON(t *testing.T) {
	err := MapHTTPError(http.StatusServiceUnavailable, []byte(`{"error":{"message":"player busy"}}`))
	assert.Equal(t, CodeUnavailable, err.Code)
	assert.Equal(t, "player busy", err.Message)
	assert.True(t, err.IsRetryable())

	err = MapHTTPError(http.StatusBadRequest, []byte(`{"message":"bad index"}`))
	assert.Equal(t, "bad index", err.Message)
}

func TestMapHTTPErrorDefaults(t *testing.T) {
	err := MapHTTPError(http.StatusTeapot, nil)
	assert.Equal(t, CodeUnknown, err.Code)
	assert.Equal(t, "HTTP 418 error", err.Message)
	assert.Equal(t, "Nothing to update", MapHTTPError(http.StatusNotModified, nil).Message)
}

func TestMapNetworkError(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{context.Canceled, CodeCanceled},
		{fmt.Errorf("get: %w", context.DeadlineExceeded), CodeTimeout},
		{fmt.Errorf("dial tcp 127.0.0.1:8000: connect: connection refused"), CodeConnection},
		{fmt.Errorf("lookup radio.invalid: no such host"), CodeDNS},
		{fmt.Errorf("x509: certificate signed by unknown authority"), CodeTLS},
		{fmt.Errorf("something odd"), CodeNetwork},
	}
	for _, tc := range cases {
		apiErr := MapNetworkError(tc.err)
		assert.Equal(t, tc.code, apiErr.Code, tc.err.Error())
		assert.Zero(t, apiErr.HTTPStatus)
		assert.ErrorIs(t, apiErr, tc.err)
	}
}

func TestAsAndStatusCode(t *testing.T) {
	base := New(http.StatusInternalServerError, CodeServer, "boom").WithRequest(http.MethodGet, "http://localhost/queue")
	wrapped := fmt.Errorf("list queue: %w", base)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, base, got)
	assert.Equal(t, http.StatusInternalServerError, StatusCode(wrapped))
	assert.Equal(t, 0, StatusCode(fmt.Errorf("plain")))
	assert.Equal(t, "prismriver: GET http://localhost/queue: 500 server_error: boom", base.Error())
	assert.Same(t, base, MapNetworkError(wrapped))
}
