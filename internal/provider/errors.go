package provider

import (
	"fmt"
	"time"
)

// NetworkError covers transport failures and unexpected HTTP statuses.
type NetworkError struct {
	Provider string
	Status   int // zero when the request never reached the server
	Err      error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("provider %s: unexpected status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("provider %s: request failed: %v", e.Provider, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError indicates the credential was rejected.
type AuthError struct {
	Provider string
	Status   int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("provider %s: authentication failed (status %d)", e.Provider, e.Status)
}

// TimeoutError indicates the per-call deadline expired and the in-flight
// call was aborted.
type TimeoutError struct {
	Provider string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider %s: call timed out after %s", e.Provider, e.Timeout)
}

// MalformedResponseError indicates the server answered with a body the
// wire shape does not describe.
type MalformedResponseError struct {
	Provider string
	Detail   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("provider %s: malformed response: %s", e.Provider, e.Detail)
}
