package gocd

import "fmt"

// APIError represents a non-2xx response from the GoCD server. It is
// constructed once by the request wrapper and never mutated afterwards.
type APIError struct {
	StatusCode int
	StatusText string
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GoCD API error %d (%s) on %s", e.StatusCode, e.StatusText, e.Endpoint)
}

// NotFound reports whether the error is the 404 subset of APIError.
func (e *APIError) NotFound() bool {
	return e.StatusCode == 404
}

// ValidationError represents an upstream payload whose shape violates the
// API contract (e.g. a dashboard response without pipeline groups). It is a
// hard failure, never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
