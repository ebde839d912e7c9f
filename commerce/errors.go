package commerce

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingCredentials = errors.New("commerce: missing API credentials")
	// ErrFetchFailed is the generic upstream failure: transport error or non-2xx status.
	ErrFetchFailed       = errors.New("commerce: upstream request failed")
	ErrNotFound          = errors.New("commerce: not found")
	ErrMalformedResponse = errors.New("commerce: malformed upstream response")
	ErrNoContent         = errors.New("commerce: empty response")
)

// Error is a non-2xx upstream response.
type Error struct {
	Op     string
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: upstream status %d: %s", e.Op, e.Status, e.Body)
}

// Is makes every status error match ErrFetchFailed, and 404s match ErrNotFound.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFetchFailed:
		return true
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}
