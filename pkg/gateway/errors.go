package gateway

import (
	"errors"
	"fmt"
)

var ErrUnavailable = errors.New("recipe api unavailable")

// GatewayError is a network or server failure on a remote call. Message is
// what the user sees.
type GatewayError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// AsGatewayError unwraps err into a *GatewayError when it carries one.
func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
