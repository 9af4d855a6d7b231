package gateway

import "fmt"

// UnreachableError indicates the transport itself could not complete:
// network, DNS, or connection failure.
type UnreachableError struct {
	BaseURL string
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("Cannot reach backend API at %s.", e.BaseURL)
}

// HTTPError is a non-2xx response, carrying the human-readable message
// derived from the response body.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}
