package skald

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidIDType is returned, before any network call happens, when
	// an id type outside memo_uuid/reference_id is supplied.
	ErrInvalidIDType = errors.New("skald: invalid id type")

	// ErrEmptyBody is returned when a streaming response carries no
	// readable body to decode.
	ErrEmptyBody = errors.New("skald: empty response body")
)

// APIError is a non-2xx response from the Skald API. Status and Body hold
// the upstream status code and verbatim response body text; callers branch
// on Status for their own retry decisions, the client never retries.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("skald: api returned status %d: %s", e.Status, e.Body)
}

// TransportError is a connection-level failure (DNS, TLS, refused or reset
// connections) raised before any HTTP status was received. The underlying
// cause is reachable through Unwrap.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "skald: transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
