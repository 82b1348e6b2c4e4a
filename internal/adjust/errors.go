package adjust

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// APIError describes a failed report request.
type APIError struct {
	StatusCode int
	// Message is the classified cause for StatusCode.
	Message string
	// Detail is the message reported by the API, when it sent one.
	Detail string
	Err    error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("adjust api: status %d: %s", e.StatusCode, e.Message)
	if e.Detail != "" && e.Detail != e.Message {
		msg += " - " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error { return e.Err }

var statusMessages = map[int]string{
	http.StatusBadRequest:         "Bad request: the report query is malformed or uses unsupported parameters",
	http.StatusUnauthorized:       "Unauthorized: the Adjust API token is missing or invalid",
	http.StatusForbidden:          "Forbidden: the token has no access to the requested apps or data",
	http.StatusTooManyRequests:    "Too many requests: the Adjust API rate limit was exceeded, retry later",
	http.StatusServiceUnavailable: "Service unavailable: the Adjust API is temporarily down",
	http.StatusGatewayTimeout:     "Gateway timeout: the Adjust API did not answer in time",
}

const unknownError = "Unknown error"

// remoteMessagePaths are tried in order to find a message in an error body.
var remoteMessagePaths = []string{"error.message", "error", "message", "detail", "errors.0.message", "errors.0"}

func newStatusError(status int, body []byte) *APIError {
	detail := remoteMessage(body)
	msg, ok := statusMessages[status]
	if !ok {
		msg = detail
		if msg == "" {
			msg = unknownError
		}
	}
	return &APIError{StatusCode: status, Message: msg, Detail: detail}
}

func newTransportError(err error) *APIError {
	return &APIError{StatusCode: http.StatusInternalServerError, Message: unknownError, Err: err}
}

func newTooLargeError(limit int64) *APIError {
	return &APIError{
		StatusCode: http.StatusInternalServerError,
		Message:    fmt.Sprintf("Response too large: the Adjust API returned more than %d bytes, narrow the query", limit),
		Err:        ErrResponseTooLarge,
	}
}

func remoteMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if !gjson.ValidBytes(body) {
		return truncate(strings.TrimSpace(string(body)), 200)
	}
	for _, path := range remoteMessagePaths {
		res := gjson.GetBytes(body, path)
		if res.Type == gjson.String && strings.TrimSpace(res.Str) != "" {
			return strings.TrimSpace(res.Str)
		}
	}
	return ""
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
