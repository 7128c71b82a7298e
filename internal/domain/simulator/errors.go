package simulator

import "errors"

// Sentinel kinds for simulation errors.
var (
	ErrInvalidTrialCount = errors.New("trial count must be positive")
	ErrInvalidPolicy     = errors.New("unknown missing-skill policy")
)
