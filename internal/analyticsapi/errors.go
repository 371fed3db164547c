package analyticsapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed request. Callers are free to ignore it.
type Kind string

const (
	// KindTransport covers failures where no usable response arrived.
	KindTransport Kind = "transport"
	// KindStatus covers non-2xx responses.
	KindStatus Kind = "status"
	// KindDecode covers 2xx responses whose body is not JSON.
	KindDecode Kind = "decode"
)

var errInvalidJSON = errors.New("response body is not valid JSON")

// Error is returned by every failing operation.
type Error struct {
	Kind       Kind
	Operation  string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	case KindDecode:
		return fmt.Sprintf("%s: %v", e.Operation, e.Err)
	default:
		if e.Err != nil {
			return fmt.Sprintf("Network Error: %v", e.Err)
		}
		return "Network Error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Detail extracts the server-supplied "detail" string from a failed
// request body. It reports false when the body carries no such string.
func Detail(err error) (string, bool) {
	var apiErr *Error
	if !errors.As(err, &apiErr) || len(apiErr.Body) == 0 {
		return "", false
	}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(apiErr.Body, &envelope) != nil || len(envelope.Detail) == 0 {
		return "", false
	}
	var detail string
	if json.Unmarshal(envelope.Detail, &detail) != nil {
		return "", false
	}
	detail = strings.TrimSpace(detail)
	return detail, detail != ""
}

// Message is the user-facing failure text: the server detail when present,
// otherwise the error's own message.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if detail, ok := Detail(err); ok {
		return detail
	}
	return err.Error()
}
