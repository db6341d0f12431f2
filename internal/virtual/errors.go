package virtual

import (
	"errors"
	"fmt"
)

// ErrInvalidIndexTag is reported when a measured element carries no usable index tag
var ErrInvalidIndexTag = errors.New("element has no valid index tag")

// ConfigurationError is returned at construction when an axis is misconfigured
type ConfigurationError struct {
	Axis   Axis
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s axis configuration: %s", e.Axis, e.Reason)
}
