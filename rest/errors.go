package rest

import (
	"errors"
	"fmt"
)

// ErrSessionExpired marks a 401 from the backend. The session layer treats it
// as a teardown trigger; everything else surfaces it to the caller.
var ErrSessionExpired = errors.New("session expired")

// APIError is any non-2xx response other than 401, carrying the backend's
// human-readable message. The backend does not distinguish validation,
// authorization and stale-reference failures structurally, so neither do we.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}
