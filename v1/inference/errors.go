package inference

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure classes Execute reports.
type ErrorKind int

const (
	// KindTooManyRequests: HTTP 429. The caller sends faster than its rate
	// limit allows and should slow down.
	KindTooManyRequests ErrorKind = iota + 1

	// KindBusy: HTTP 503 with the queue full marker. The model is saturated;
	// retry later or pick another model.
	KindBusy

	// KindHTTP: any other non-success status.
	KindHTTP

	// KindTransport: no HTTP status was obtained (connection refused, reset,
	// cancelled, unreadable body).
	KindTransport

	// KindInvalidResponse: a success status with a body that does not match
	// the expected shape.
	KindInvalidResponse
)

func (k ErrorKind) String() string {
	switch k {
	case KindTooManyRequests:
		return "too_many_requests"
	case KindBusy:
		return "busy"
	case KindHTTP:
		return "http"
	case KindTransport:
		return "transport"
	case KindInvalidResponse:
		return "invalid_response"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching; every *Error matches the one of its Kind.
var (
	ErrTooManyRequests = errors.New("inference: too many requests")
	ErrBusy            = errors.New("inference: service busy")
	ErrHTTP            = errors.New("inference: http error")
	ErrTransport       = errors.New("inference: transport error")
	ErrInvalidResponse = errors.New("inference: invalid response")

	// ErrInvalidBaseURL is returned by the constructors for a base URL that is
	// not an absolute URL.
	ErrInvalidBaseURL = errors.New("inference: invalid base url")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTooManyRequests:
		return ErrTooManyRequests
	case KindBusy:
		return ErrBusy
	case KindHTTP:
		return ErrHTTP
	case KindTransport:
		return ErrTransport
	case KindInvalidResponse:
		return ErrInvalidResponse
	default:
		return nil
	}
}

// Error is the classified failure of an Execute call. Match on Kind (or use
// errors.Is with the sentinels); Message is for diagnostics only.
type Error struct {
	Kind ErrorKind

	// StatusCode is the HTTP status, 0 for transport failures.
	StatusCode int

	// Message is the best effort server message.
	Message string

	// Code is the machine readable error code of the server, if any.
	Code string

	// Err is the underlying cause for transport and decode failures.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTooManyRequests:
		return fmt.Sprintf("inference: too many requests (status %d)", e.StatusCode)
	case KindBusy:
		return fmt.Sprintf("inference: service busy (status %d): %s", e.StatusCode, e.Message)
	case KindHTTP:
		return fmt.Sprintf("inference: http %d: %s", e.StatusCode, e.Message)
	case KindTransport:
		return fmt.Sprintf("inference: transport error: %v", e.Err)
	case KindInvalidResponse:
		return fmt.Sprintf("inference: invalid response (status %d): %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("inference: error (status %d): %s", e.StatusCode, e.Message)
	}
}

// Unwrap returns the underlying cause, so errors.Is(err, context.Canceled)
// works for cancelled calls.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var inferenceErr *Error
	if errors.As(err, &inferenceErr) {
		return inferenceErr.Kind, true
	}
	return 0, false
}

// IsTooManyRequestsError checks if the error is a rate limit (429) error.
func IsTooManyRequestsError(err error) bool {
	return errors.Is(err, ErrTooManyRequests)
}

// IsBusyError checks if the error is a queue full (503) error.
func IsBusyError(err error) bool {
	return errors.Is(err, ErrBusy)
}

// IsHTTPError checks if the error is a generic HTTP status error.
func IsHTTPError(err error) bool {
	return errors.Is(err, ErrHTTP)
}

// IsTransportError checks if the error is a transport failure.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsInvalidResponseError checks if the error is an undecodable success response.
func IsInvalidResponseError(err error) bool {
	return errors.Is(err, ErrInvalidResponse)
}
