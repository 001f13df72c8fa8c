package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// coldStartStatus holds the gateway statuses a sleeping backend produces.
var coldStartStatus = map[int]struct{}{
	502: {}, 503: {}, 504: {}, 522: {}, 524: {},
}

// RequestError is returned for any non-2xx response.
type RequestError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("HTTP %d %s - %s", e.Status, e.StatusText, e.Body)
}

// IsUnauthorized reports whether err is an HTTP 401, meaning the session
// token is no longer valid and the session must be torn down.
func IsUnauthorized(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == 401
}

// IsUnavailable reports whether err looks like a cold-start condition:
// a gateway status from the cold-start set, or a transport-level failure
// that never produced a status at all.
func IsUnavailable(err error) bool {
	var re *RequestError
	if errors.As(err, &re) {
		_, ok := coldStartStatus[re.Status]
		return ok
	}
	var ue *url.Error
	return errors.As(err, &ue)
}

// UserMessage derives the text shown to the user for a failed call.
// For a RequestError it prefers the structured "detail" field when the body
// parses as JSON, falling back to the raw body (i.e. the error string with
// the "HTTP <code> <text> - " prefix stripped) and finally the status text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if !errors.As(err, &re) {
		return err.Error()
	}
	if msg := detailMessage(re.Body); msg != "" {
		return msg
	}
	if re.Body != "" {
		return re.Body
	}
	return re.StatusText
}

// detailMessage extracts FastAPI-style error details: either
// {"detail": "msg"} or {"detail": [{"msg": "..."} ...]}.
func detailMessage(body string) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal([]byte(body), &payload) != nil || len(payload.Detail) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(payload.Detail, &s) == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if json.Unmarshal(payload.Detail, &items) == nil && len(items) > 0 {
		return items[0].Msg
	}
	return ""
}
