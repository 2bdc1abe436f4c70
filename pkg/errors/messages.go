package errors

import "net/http"

// Fallback messages
const (
	MessageEnvelopeFallback = "Error"
	MessageRequestFailed    = "request failed"
	MessageNetworkError     = "network error, please try again later"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:              "bad request",
	http.StatusUnauthorized:            "unauthorized",
	http.StatusForbidden:               "forbidden",
	http.StatusNotFound:                "request address error",
	http.StatusRequestTimeout:          "request timeout",
	http.StatusInternalServerError:     "internal server error",
	http.StatusNotImplemented:          "service not implemented",
	http.StatusBadGateway:              "bad gateway",
	http.StatusServiceUnavailable:      "service unavailable",
	http.StatusGatewayTimeout:          "gateway timeout",
	http.StatusHTTPVersionNotSupported: "HTTP version not supported",
}

// StatusMessage returns the fixed explanation for an HTTP status, or the
// generic fallback when the status has none.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	if status == 0 {
		return MessageNetworkError
	}
	return MessageRequestFailed
}

// ResolveMessage picks the message for a failed exchange: backend msg, then
// backend message, then the status table.
func ResolveMessage(status int, backendMsg, backendMessage string) string {
	if backendMsg != "" {
		return backendMsg
	}
	if backendMessage != "" {
		return backendMessage
	}
	return StatusMessage(status)
}
