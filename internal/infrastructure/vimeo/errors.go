package vimeo

import (
	"errors"
	"fmt"
)

var ErrMissingToken = errors.New("vimeo access token is not configured")

// AuthError means Vimeo answered 401 for the configured token.
type AuthError struct {
	Body string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("vimeo: unauthorized (401): %s", e.Body)
}

// ProviderError is any other non-2xx answer.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("vimeo: unexpected status %d: %s", e.StatusCode, e.Body)
}
