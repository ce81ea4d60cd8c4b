package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Kind classifies a failed request.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindServer
	KindValidation
	KindSessionExpired
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	case KindSessionExpired:
		return "session_expired"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Fallback messages shown when the server gives nothing usable.
const (
	MsgTransport      = "Unable to reach the server. Check your connection and try again."
	MsgSessionExpired = "Your session has expired. Please sign in again."
	MsgCanceled       = "The request was canceled."
)

// Error is returned for every failed request.
type Error struct {
	Kind       Kind
	StatusCode int // 0 when no response was received
	Message    string

	// Fields holds per-field validation messages for KindValidation.
	Fields map[string][]string

	// Token is the access token the rejected request carried. It is never
	// part of Error().
	Token string

	Err error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

func IsSessionExpired(err error) bool { return KindOf(err) == KindSessionExpired }
func IsValidation(err error) bool     { return KindOf(err) == KindValidation }
func IsCanceled(err error) bool       { return KindOf(err) == KindCanceled }

// Message returns a user facing message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// messageKeys are the top level keys the backend uses for a single message.
var messageKeys = []string{"message", "detail", "error_description", "error"}

// parseErrorResponse turns a non-2xx response into an *Error.
func parseErrorResponse(status int, body []byte) *Error {
	e := &Error{StatusCode: status, Kind: kindForStatus(status)}

	if gjson.ValidBytes(body) {
		doc := gjson.ParseBytes(body)
		e.Message = firstMessage(doc)
		if doc.IsObject() && e.Kind != KindSessionExpired {
			e.Fields = fieldErrors(doc)
		}
	}

	if e.Message == "" {
		switch e.Kind {
		case KindSessionExpired:
			e.Message = MsgSessionExpired
		default:
			e.Message = fmt.Sprintf("Request failed: %s", http.StatusText(status))
		}
	}
	return e
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindSessionExpired
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

func firstMessage(doc gjson.Result) string {
	if doc.Type == gjson.String {
		return doc.String()
	}
	if doc.IsArray() {
		return doc.Get("0").String()
	}
	for _, key := range messageKeys {
		if v := doc.Get(key); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	if v := doc.Get("non_field_errors.0"); v.Exists() {
		return v.String()
	}

	// First field error, in key order for stable output.
	fields := fieldErrors(doc)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if msgs := fields[name]; len(msgs) > 0 {
			return name + ": " + msgs[0]
		}
	}
	return ""
}

func fieldErrors(doc gjson.Result) map[string][]string {
	var out map[string][]string
	doc.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if name == "non_field_errors" || !value.IsArray() {
			return true
		}
		var msgs []string
		for _, m := range value.Array() {
			if m.Type == gjson.String {
				msgs = append(msgs, strings.TrimSpace(m.String()))
			}
		}
		if len(msgs) > 0 {
			if out == nil {
				out = make(map[string][]string)
			}
			out[name] = msgs
		}
		return true
	})
	return out
}
