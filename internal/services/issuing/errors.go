package issuing

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned for lookups of cards or cardholders the
	// issuer does not know about.
	ErrNotFound = errors.New("card not found")

	// ErrInvalidSignature is returned when a webhook event fails
	// signature verification. No state changes when this is returned.
	ErrInvalidSignature = errors.New("invalid event signature")
)

// ValidationError reports bad caller input, such as a non-positive
// purchase amount.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid card request: " + e.Reason
}

// ProviderError reports a failed or rejected remote provider call.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
