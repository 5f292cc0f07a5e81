package inference

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"
)

// QueueFullCode is the error code the service sends with a 503 when the
// model's queue is saturated. Classification into KindBusy depends on it
// alone; if the service renames the code, 503s degrade to KindHTTP.
const QueueFullCode = "QUEUE_FULL"

// maxMessageLen bounds raw (non JSON) bodies copied into Error.Message.
const maxMessageLen = 512

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// classify turns an HTTP status and body into a response or a classified
// error. It is the only place that interprets status codes.
func classify(kind TaskKind, status int, body []byte) (Response, error) {
	switch status {
	case http.StatusOK:
		resp, err := decodeResponse(kind, body)
		if err != nil {
			return nil, &Error{Kind: KindInvalidResponse, StatusCode: status, Err: err}
		}
		return resp, nil
	case http.StatusTooManyRequests:
		return nil, &Error{Kind: KindTooManyRequests, StatusCode: status, Message: errorMessage(status, body, nil)}
	}

	parsed, ok := parseErrorBody(body)
	if status == http.StatusServiceUnavailable && ok && parsed.Code == QueueFullCode {
		return nil, &Error{Kind: KindBusy, StatusCode: status, Message: errorMessage(status, body, parsed), Code: parsed.Code}
	}

	e := &Error{Kind: KindHTTP, StatusCode: status, Message: errorMessage(status, body, parsed)}
	if parsed != nil {
		e.Code = parsed.Code
	}
	return nil, e
}

// transportError wraps a failure that happened before a status was obtained.
func transportError(err error) error {
	return &Error{Kind: KindTransport, Err: err}
}

// parseErrorBody decodes {"error": ..., "code": ...}. Some deployments emit raw
// line breaks inside the message string; those are replaced with spaces and
// the body is decoded once more.
func parseErrorBody(body []byte) (*errorBody, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var parsed errorBody
	if err := json.Unmarshal(trimmed, &parsed); err == nil {
		return &parsed, true
	}

	sanitized := bytes.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		return r
	}, trimmed)
	if err := json.Unmarshal(sanitized, &parsed); err == nil {
		return &parsed, true
	}
	return nil, false
}

// errorMessage prefers the server's error field, then the raw body, then the
// status text.
func errorMessage(status int, body []byte, parsed *errorBody) string {
	if parsed == nil {
		parsed, _ = parseErrorBody(body)
	}
	if parsed != nil && parsed.Error != "" {
		return strings.Join(strings.Fields(parsed.Error), " ")
	}

	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return http.StatusText(status)
	}
	if len(raw) > maxMessageLen {
		raw = raw[:maxMessageLen]
		for !utf8.ValidString(raw) {
			raw = raw[:len(raw)-1]
		}
	}
	return raw
}
