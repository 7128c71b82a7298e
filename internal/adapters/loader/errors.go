package loader

import "errors"

var (
	// ErrReadInput means a source file could not be opened or read.
	ErrReadInput = errors.New("read input")

	// ErrDecodeInput means a source document is not valid JSON or YAML.
	ErrDecodeInput = errors.New("decode input")
)
