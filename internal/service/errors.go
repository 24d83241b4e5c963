package service

import (
	"errors"
	"fmt"
)

// ErrHoldingsNotFound is returned when analysis is requested before any
// holdings have been synced for the user
var ErrHoldingsNotFound = errors.New("holdings not found, sync your portfolio first")

// ProviderError wraps a brokerage API failure. The request fails as a
// whole; no partial result is returned.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("brokerage provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a store failure. The enclosing transaction has
// already been rolled back, so the prior state is intact.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
