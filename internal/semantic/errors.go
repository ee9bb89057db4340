// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package semantic

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors returned by the Semantic Scholar client.
var (
	// ErrNetwork indicates the request never produced an HTTP response.
	ErrNetwork = errors.New("network error communicating with Semantic Scholar")

	// ErrAPI indicates a non-success HTTP status.
	ErrAPI = errors.New("Semantic Scholar API error")

	// ErrRateLimited indicates the API throttled the client (HTTP 429).
	ErrRateLimited = errors.New("Semantic Scholar rate limit exceeded")

	// ErrInvalidResponse indicates a body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from Semantic Scholar")
)

// APIError carries the status and (truncated) body of a failed API call.
// It matches ErrAPI, and also ErrRateLimited when the status is 429.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("Semantic Scholar API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("Semantic Scholar API returned HTTP %d: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is match the sentinel errors.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrAPI:
		return true
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsNotFound reports whether err is a 404 from the API, which is what
// Semantic Scholar returns for an arXiv id it does not know.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
