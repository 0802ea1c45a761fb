package opendota

import "fmt"

// StatusError reports a non-2xx response from the OpenDota API. Body holds
// at most the first 200 bytes of the response for log context.
type StatusError struct {
	Method   string
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("opendota: %s %s returned %d: %s", e.Method, e.Endpoint, e.Code, e.Body)
}

// TransportError reports a network-level failure (DNS, connect, timeout)
// before any HTTP status was received.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("opendota: request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
