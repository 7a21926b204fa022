package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is returned for any upstream call that did not yield a usable 2xx body.
// StatusCode is zero for transport failures.
type Error struct {
	Endpoint   string
	StatusCode int
	Detail     string
	Err        error
}

// Error implements error.
func (e *Error) Error() string {
	switch {
	case e.StatusCode > 0 && e.Detail != "":
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Detail)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: status %d", e.Endpoint, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
	}
	return e.Endpoint + ": request failed"
}

// Unwrap exposes the transport or decode error.
func (e *Error) Unwrap() error { return e.Err }

// DetailOf returns the backend-provided message carried by err, if any.
func DetailOf(err error) string {
	var upErr *Error
	if errors.As(err, &upErr) {
		return upErr.Detail
	}
	return ""
}

// StatusOf returns the upstream HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var upErr *Error
	if errors.As(err, &upErr) {
		return upErr.StatusCode
	}
	return 0
}

// parseDetail reads the backend error body. It understands `{"detail": "..."}`,
// the validation form `{"detail": [{"msg": "..."}]}` and `{"message": "..."}`.
func parseDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Detail) > 0 {
		var text string
		if err := json.Unmarshal(payload.Detail, &text); err == nil {
			return strings.TrimSpace(text)
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if m := strings.TrimSpace(item.Msg); m != "" {
					msgs = append(msgs, m)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	return strings.TrimSpace(payload.Message)
}
