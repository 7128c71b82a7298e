package sampler

// Sequence replays a fixed list of rolls, wrapping around at the end.
type Sequence struct {
	rolls []Roll
	next  int
}

// NewSequence returns a Sequence over rolls. rolls must not be empty.
func NewSequence(rolls ...Roll) *Sequence {
	if len(rolls) == 0 {
		panic("sampler: NewSequence needs at least one roll")
	}
	return &Sequence{rolls: rolls}
}

// Draw returns the next roll of the sequence.
func (s *Sequence) Draw() Roll {
	r := s.rolls[s.next]
	s.next = (s.next + 1) % len(s.rolls)
	return r
}

// Permutations lists every ordered triple of distinct faces in lexicographic
// order. Replaying all of them once yields the exact check distribution.
func Permutations() []Roll {
	out := make([]Roll, 0, Faces*(Faces-1)*(Faces-2))
	for a := 1; a <= Faces; a++ {
		for b := 1; b <= Faces; b++ {
			if b == a {
				continue
			}
			for c := 1; c <= Faces; c++ {
				if c == a || c == b {
					continue
				}
				out = append(out, Roll{a, b, c})
			}
		}
	}
	return out
}
