// Package sampler draws the three dice of a talent check.
//
// The three faces of one trial are pairwise distinct: they are taken without
// replacement from a single pool of twenty faces. Randomness is injected
// through Source so runs can be replayed from a seed.
package sampler

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

const (
	// Faces is the number of faces in the shared pool.
	Faces = 20
	// Draws is the number of dice per trial, one per check.
	Draws = 3
)

// Roll holds the faces of one trial in check order.
type Roll [Draws]int

// Valid reports whether every face is in [1, Faces] and no face repeats.
func (r Roll) Valid() bool {
	for i, v := range r {
		if v < 1 || v > Faces {
			return false
		}
		for _, w := range r[:i] {
			if v == w {
				return false
			}
		}
	}
	return true
}

// Sampler yields one Roll per call. Implementations are not required to be
// safe for concurrent use; each worker owns its own.
type Sampler interface {
	Draw() Roll
}

// Source is the randomness provider. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a uniform int in [0, n). n > 0.
	IntN(n int) int
}

// Factory returns the sampler for a random stream.
type Factory func(stream int) Sampler

// FaceSampler draws without replacement using a partial Fisher-Yates shuffle
// over a persistent face pool.
type FaceSampler struct {
	src   Source
	faces [Faces]int
}

// New returns a FaceSampler reading from src.
func New(src Source) *FaceSampler {
	s := &FaceSampler{src: src}
	for i := range s.faces {
		s.faces[i] = i + 1
	}
	return s
}

// Draw returns three distinct faces.
func (s *FaceSampler) Draw() Roll {
	var r Roll
	for i := 0; i < Draws; i++ {
		j := i + s.src.IntN(Faces-i)
		s.faces[i], s.faces[j] = s.faces[j], s.faces[i]
		r[i] = s.faces[i]
	}
	return r
}

// NewSeeded returns a sampler over a PCG stream derived from seed and stream.
// Equal arguments always produce the same sequence of rolls.
func NewSeeded(seed uint64, stream int) *FaceSampler {
	return New(rand.New(rand.NewPCG(seed, mix(uint64(stream))))) //nolint:gosec // reproducible simulation, not crypto
}

// Seeded returns a Factory handing out NewSeeded streams for seed.
func Seeded(seed uint64) Factory {
	return func(stream int) Sampler {
		return NewSeeded(seed, stream)
	}
}

// NewSeed generates a fresh seed using crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// mix is the splitmix64 finalizer; it spreads adjacent stream numbers apart.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
