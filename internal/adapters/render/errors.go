package render

import "errors"

var (
	// ErrUnknownFormat means no renderer exists for the requested format.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrUnknownLanguage means the requested language is not supported.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrWrite means the output could not be written.
	ErrWrite = errors.New("write output")
)
