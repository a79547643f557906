package ldraw

import "errors"

// Resolution errors. Both are recoverable at the reference that raised
// them; only I/O failures from the file provider abort an import.
var (
	ErrPartNotFound    = errors.New("part file not found")
	ErrCyclicReference = errors.New("cyclic part reference")
)
