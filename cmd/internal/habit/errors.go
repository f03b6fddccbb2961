package habit

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for this package.
var (
	ErrNotFound     = errors.New("not_found")
	ErrInvalidInput = errors.New("invalid_input")
)

// OpError carries a stable Op + Kind for callers and tests.
type OpError struct {
	Op   string
	Kind error
	Msg  string
}

func (e OpError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Kind, e.Msg)
}

func (e OpError) Unwrap() error { return e.Kind }

// IsNotFound reports whether err represents a missing or foreign-owned resource.
// The two cases are indistinguishable on purpose.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvalidInput reports whether err represents rejected input.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
