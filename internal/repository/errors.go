package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// Custom error types
var (
	ErrConfiguration    = errors.New("OpenWeatherMap API key is not configured")
	ErrInvalidQuery     = errors.New("invalid location query")
	ErrLocationNotFound = errors.New("location not found")
)

// APIError reports a non-success HTTP status from the weather API.
type APIError struct {
	Endpoint   string
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d from /%s", e.StatusCode, e.Endpoint)
}

// Is lets a 404 match ErrLocationNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrLocationNotFound && e.StatusCode == http.StatusNotFound
}

// NetworkError reports a transport failure: DNS, refused connection, timeout.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error calling /%s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
