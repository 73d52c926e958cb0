// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
)

var (
	ErrFetch         = errors.New("failed to query the homework API")
	ErrResponseShape = errors.New("homework API response has unexpected shape")
	ErrStatusLookup  = errors.New("unknown homework status")
	ErrMissingKey    = errors.New("homework record is missing a required key")
	ErrConfigMissing = errors.New("required environment variables are missing")
	ErrNotify        = errors.New("failed to deliver telegram message")
)

// FetchError describes a failed request to the homework API: either a non-200 answer
// (StatusCode and Body set) or a transport/decoding failure (Err set).
type FetchError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", ErrFetch, e.Err)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrFetch, e.StatusCode, e.Body)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFetch) match any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}
