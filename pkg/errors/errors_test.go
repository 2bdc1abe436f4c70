package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, "bad request"},
		{http.StatusUnauthorized, "unauthorized"},
		{http.StatusForbidden, "forbidden"},
		{http.StatusNotFound, "request address error"},
		{http.StatusRequestTimeout, "request timeout"},
		{http.StatusInternalServerError, "internal server error"},
		{http.StatusNotImplemented, "service not implemented"},
		{http.StatusBadGateway, "bad gateway"},
		{http.StatusServiceUnavailable, "service unavailable"},
		{http.StatusGatewayTimeout, "gateway timeout"},
		{http.StatusHTTPVersionNotSupported, "HTTP version not supported"},
		{http.StatusTeapot, MessageRequestFailed},
		{0, MessageNetworkError},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusMessage(tt.status))
		})
	}
}

func TestResolveMessage_BackendWins(t *testing.T) {
	assert.Equal(t, "warehouse code taken", ResolveMessage(http.StatusBadRequest, "warehouse code taken", "ignored"))
	assert.Equal(t, "from message", ResolveMessage(http.StatusBadRequest, "", "from message"))
	assert.Equal(t, "request address error", ResolveMessage(http.StatusNotFound, "", ""))
}

func TestAPIError_ErrorIsMessage(t *testing.T) {
	err := ErrApplication(500100, "stock is locked")

	assert.Equal(t, "stock is locked", err.Error())
	assert.Equal(t, KindApplication, err.Kind)
	assert.Equal(t, 500100, err.Code)
	assert.Contains(t, err.Detail(), "APPLICATION")
}

func TestAuthFailures(t *testing.T) {
	envelope := ErrEnvelopeUnauthorized()
	transport := ErrTransport(http.StatusUnauthorized, "token expired", nil)
	other := ErrTransport(http.StatusForbidden, "forbidden", nil)

	assert.True(t, IsAuthFailure(envelope))
	assert.True(t, errors.Is(envelope, ErrSessionExpired))
	assert.True(t, IsAuthFailure(transport))
	assert.True(t, errors.Is(transport, ErrSessionExpired))
	assert.False(t, IsAuthFailure(other))
	assert.True(t, IsKind(other, KindTransport))
}

func TestAsAPIError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("list warehouses: %w", ErrTransport(http.StatusBadGateway, "bad gateway", nil))

	apiErr, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "stock is locked", Message(fmt.Errorf("adjust: %w", ErrApplication(1, "stock is locked"))))
	assert.Equal(t, "request timeout", Message(context.DeadlineExceeded))
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
