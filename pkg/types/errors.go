package types

import (
	"errors"
	"fmt"
)

// Error kinds. Every entity error wraps exactly one of these, so callers can
// branch with errors.Is without knowing the specific cause.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Entity validation errors.
var (
	ErrEmptyName   = fmt.Errorf("%w: name must be a non-empty string", ErrValidation)
	ErrEmptyPhone  = fmt.Errorf("%w: phone must be a non-empty string", ErrValidation)
	ErrPhoneFormat = fmt.Errorf("%w: phone must be a numeric string 10 digits long", ErrValidation)
)

// Lookup errors.
var (
	ErrPhoneNotFound  = fmt.Errorf("%w: phone was not found", ErrNotFound)
	ErrRecordNotFound = fmt.Errorf("%w: record was not found", ErrNotFound)
)
