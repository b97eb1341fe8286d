package ledger

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized marks any 401/403-equivalent response from the ledger
// service. Callers must treat it exactly like an expired session.
var ErrUnauthorized = errors.New("ledger: unauthorized")

// NetworkError wraps a transport failure or timeout. The user must retry
// manually; the client never retries on its own.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("ledger: network failure during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-success response from the ledger service. Message is
// the server-provided text, verbatim, when present.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ledger: server rejected request (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ledger: server rejected request (%d)", e.StatusCode)
}

// Is lets errors.Is(err, ErrUnauthorized) match auth failures so every
// workflow funnels them into the same forced-logout path.
func (e *ServerError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// MalformedResponseError is returned when a success response cannot be
// normalized into the domain model. It fails fast instead of propagating a
// zero value from a duck-typed payload.
type MalformedResponseError struct {
	Endpoint string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("ledger: malformed response from %s: %s", e.Endpoint, e.Reason)
}
