package tuning

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned when a tuning name uses characters outside [A-H#b].
	ErrInvalidName = errors.New("invalid tuning name")

	// ErrNoSuchString is returned for a string index outside the tuning.
	ErrNoSuchString = errors.New("no such string")
)

// NameError carries the rejected tuning name.
type NameError struct {
	Name string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%v %q", ErrInvalidName, e.Name)
}

func (e *NameError) Unwrap() error { return ErrInvalidName }

// StringError reports a string index the tuning does not have.
type StringError struct {
	String int
	Count  int
	Tuning string
}

func (e *StringError) Error() string {
	return fmt.Sprintf("%v: no string %d on %d-string tuning %q", ErrNoSuchString, e.String, e.Count, e.Tuning)
}

func (e *StringError) Unwrap() error { return ErrNoSuchString }
