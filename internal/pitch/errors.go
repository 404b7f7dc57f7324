package pitch

import (
	"errors"
	"fmt"
)

// ErrUnknownNote is returned for names outside both alphabets.
var ErrUnknownNote = errors.New("unknown note")

// NoteError carries the rejected note name.
type NoteError struct {
	Name string
}

func (e *NoteError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownNote, e.Name)
}

func (e *NoteError) Unwrap() error {
	return ErrUnknownNote
}
