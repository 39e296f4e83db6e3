package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrGatewayUnreachable     = errors.New("could not establish the connection to the gateway")
	ErrGatewayRejected        = errors.New("gateway rejected the request")
	ErrGatewayInvalidResponse = errors.New("gateway returned malformed JSON")
)

// RejectedError carries the HTTP status and, when the body parsed as
// JSON, the gateway's own error payload.
type RejectedError struct {
	StatusCode int
	Body       map[string]any
	Raw        string
}

func (e *RejectedError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("gateway rejected the request (HTTP %d): %v", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("gateway rejected the request (HTTP %d)", e.StatusCode)
}

func (e *RejectedError) Unwrap() error {
	return ErrGatewayRejected
}
