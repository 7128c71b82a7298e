package assembler

import "errors"

// Sentinel kinds for assembly errors. These allow errors.Is from callers.
var (
	// ErrMalformedInput means the character record or a talent definition
	// lacks required structure.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnresolvedReference means a check names an attribute the character
	// does not have.
	ErrUnresolvedReference = errors.New("unresolved attribute reference")
)
