package leaderboard

import (
	"errors"
	"fmt"
)

// StoreError marks a failed read or write against the store. Callers may retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("leaderboard store %s: %s", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Retryable() bool {
	return true
}

func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

// IsRetryable reports whether the failure came from the store and may succeed on retry.
func IsRetryable(err error) bool {
	var se *StoreError
	return errors.As(err, &se) && se.Retryable()
}

func storeErr(op string, err error) error {
	if err == nil || IsStoreError(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
