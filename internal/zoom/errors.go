package zoom

import "fmt"

// codeTokenExpired is the Zoom error code paired with HTTP 401 when the
// access token has expired.
const codeTokenExpired = 124

// AuthError indicates the credential was rejected even after a refresh
// attempt, or the token endpoint itself refused the account identifiers.
// It is fatal: the run cannot safely proceed without a valid token.
type AuthError struct {
	Operation string
	Err       error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("zoom auth failed during %s: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("zoom auth failed during %s", e.Operation)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RequestError is any non-auth HTTP failure from the Zoom API. It carries
// the HTTP status and the Zoom error code/message when the body was
// parseable. The invoker never retries these; the caller decides whether to
// skip the affected window or file.
type RequestError struct {
	URL        string
	StatusCode int
	Code       int
	Message    string
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("zoom request failed for %s: %s", e.URL, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("zoom API error %d (code %d) for %s: %s", e.StatusCode, e.Code, e.URL, e.Message)
	}
	return fmt.Sprintf("zoom API error %d for %s", e.StatusCode, e.URL)
}
