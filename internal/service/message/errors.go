package message

import "fmt"

// ValidationError rejects bad input before it reaches the store. The
// reason is written for humans and goes straight into the 4xx body.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// StoreError wraps a persistence failure. The handler layer maps it to
// a 5xx; nothing in this service retries.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
