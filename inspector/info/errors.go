package info

import "errors"

// ErrFunctionNotFound is returned when no function encloses the requested line
var ErrFunctionNotFound = errors.New("function not found")
