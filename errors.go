package lazycell

import "fmt"

// PoisonedError reports that a one-time initializer already failed. The
// cell or slot stays poisoned for the process lifetime; the initializer
// is not retried.
type PoisonedError struct {
	cause error
}

func (e *PoisonedError) Error() string {
	return fmt.Sprintf("lazycell: poisoned by earlier initialization failure: %v", e.cause)
}

// Unwrap returns the error from the failed attempt. For an initializer
// that panicked, this is a *PanicError.
func (e *PoisonedError) Unwrap() error { return e.cause }

// PanicError records a panic recovered from an initializer.
type PanicError struct {
	// Value is the value the initializer panicked with.
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("lazycell: initializer panicked: %v", e.Value)
}
