package apiclient

import (
	"encoding/json"
	"errors"
	"strings"
)

var (
	// ErrUnauthorized means the bearer token was rejected. Callers prompt for a
	// fresh login instead of retrying.
	ErrUnauthorized = errors.New("session expired, please login again to continue")

	ErrSearchFailed  = errors.New("search failed")
	ErrBookingFailed = errors.New("booking failed, please retry")
	ErrPaymentFailed = errors.New("payment initialization failed")
	ErrAuthFailed    = errors.New("authentication failed")

	// ErrNetwork covers transport failures and the client timeout.
	ErrNetwork = errors.New("network error, please check your connection")
)

// APIError is a normalised failure of one upstream operation. Detail is the
// server's own message and is safe to show to the user as is.
type APIError struct {
	Op         string
	StatusCode int
	Detail     string
	Err        error
}

func (e *APIError) Error() string {
	msg := e.Op + ": " + e.Err.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Message is what the caller shows to the user.
func (e *APIError) Message() string {
	if errors.Is(e.Err, ErrUnauthorized) {
		return "Session expired. Please login again to continue."
	}
	if e.Detail != "" {
		return e.Detail
	}
	return e.Err.Error()
}

func NewAPIError(op string, status int, detail string, err error) *APIError {
	return &APIError{
		Op:         op,
		StatusCode: status,
		Detail:     detail,
		Err:        err,
	}
}

// extractDetail pulls a human readable message out of an error body. The API
// uses "detail" (a string or a list of {msg}) and sometimes "error" or
// "message".
func extractDetail(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if raw, ok := payload["detail"]; ok {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(raw, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}

	for _, key := range []string{"error", "message"} {
		if raw, ok := payload[key]; ok {
			var s string
			if err := json.Unmarshal(raw, &s); err == nil && s != "" {
				return s
			}
		}
	}
	return ""
}
