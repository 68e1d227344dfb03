package climate

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMode   = errors.New("unsupported hvac mode")
	ErrInvalidPreset = errors.New("unsupported preset mode")
)

// ValidationError reports a rejected setter argument. It unwraps to
// ErrInvalidMode or ErrInvalidPreset.
type ValidationError struct {
	Field   string
	Value   string
	Allowed []string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: got %q for %s, must be one of %v", e.Err, e.Value, e.Field, e.Allowed)
}

func (e *ValidationError) Unwrap() error { return e.Err }
