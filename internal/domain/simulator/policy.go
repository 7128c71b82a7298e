package simulator

import (
	"fmt"
	"strings"
)

// MissingSkillPolicy decides what happens to talents without a skill level.
type MissingSkillPolicy int

const (
	// MissingAsZero simulates unlearned talents at skill level 0.
	MissingAsZero MissingSkillPolicy = iota
	// MissingSkip leaves unlearned talents out of the results.
	MissingSkip
)

func (p MissingSkillPolicy) String() string {
	switch p {
	case MissingAsZero:
		return "zero"
	case MissingSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseMissingSkillPolicy accepts "zero" or "skip" (case-insensitive).
func ParseMissingSkillPolicy(s string) (MissingSkillPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero":
		return MissingAsZero, nil
	case "skip":
		return MissingSkip, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}
