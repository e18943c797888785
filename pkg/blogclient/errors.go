package blogclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrSignInRequired is returned by flows that need an authenticated session
// before any request is issued. Callers should route to the sign-in view.
var ErrSignInRequired = errors.New("sign in required")

// ErrCancelled is returned when the configured Confirmer declines a
// destructive action. No request is issued.
var ErrCancelled = errors.New("action cancelled")

// ErrBusy is returned when a flow is already in flight and the duplicate
// submission was dropped.
var ErrBusy = errors.New("request already in flight")

// ErrValidation wraps client-side validation failures that block a request
// from being issued.
var ErrValidation = errors.New("validation failed")

// APIError is a decoded error envelope from the server.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%d %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 or 403 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// decodeAPIError turns a non-2xx response body into an APIError. Bodies
// that are not the standard envelope still produce a usable error.
func decodeAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}
	apiErr.StatusCode = statusCode
	return apiErr
}
