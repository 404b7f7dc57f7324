package chord

import (
	"errors"
	"fmt"
)

// ErrUnparseableSymbol is returned when no tonic and character can be
// recognised at the start of a chord symbol.
var ErrUnparseableSymbol = errors.New("unparseable chord symbol")

// SymbolError carries the rejected input.
type SymbolError struct {
	Symbol string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("%v %q", ErrUnparseableSymbol, e.Symbol)
}

func (e *SymbolError) Unwrap() error { return ErrUnparseableSymbol }
