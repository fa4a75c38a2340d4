package main

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no item with the requested id exists.
var ErrNotFound = errors.New("item not found")

// ValidationError reports a rejected draft. The collection is left untouched
// and the caller keeps the entered data.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s is invalid", e.Field)
}
