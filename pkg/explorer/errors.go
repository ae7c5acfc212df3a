package explorer

import "fmt"

// MissingTokenError is returned when execution is attempted without a token.
// No request is issued.
type MissingTokenError struct {
	EndpointID string
}

func (e *MissingTokenError) Error() string {
	if e.EndpointID == "" {
		return "no token provided"
	}
	return fmt.Sprintf("no token provided for endpoint %q", e.EndpointID)
}

// HTTPStatusError is returned when the API answers with a non-2xx status.
type HTTPStatusError struct {
	Status     int
	StatusText string
	// Body is the raw error payload.
	Body string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.Status, e.StatusText)
}

// NetworkError is returned when the request could not complete
// (DNS, connection refused, timeout, cancellation).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when a non-CSV response body is not valid JSON.
type DecodeError struct {
	Status      int
	ContentType string
	Err         error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %q response: %v", e.ContentType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
