package model

import (
	"sort"
)

// Tally counts trial outcomes by needed-points value.
type Tally map[int]int

// Add records one outcome.
func (t Tally) Add(outcome int) {
	t[outcome]++
}

// Merge adds every count of other into t.
func (t Tally) Merge(other Tally) {
	for outcome, n := range other {
		t[outcome] += n
	}
}

// Total returns the number of recorded outcomes.
func (t Tally) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Normalize divides every count by trials. trials must be positive.
func (t Tally) Normalize(trials int) Distribution {
	d := make(Distribution, len(t))
	for outcome, n := range t {
		d[outcome] = float64(n) / float64(trials)
	}
	return d
}

// Distribution maps a needed-points value to its empirical probability.
type Distribution map[int]float64

// Outcomes returns the observed needed-points values in ascending order.
func (d Distribution) Outcomes() []int {
	keys := make([]int, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Sum returns the total probability mass.
func (d Distribution) Sum() float64 {
	sum := 0.0
	for _, k := range d.Outcomes() {
		sum += d[k]
	}
	return sum
}

// AtMost returns P(needed <= limit).
func (d Distribution) AtMost(limit int) float64 {
	p := 0.0
	for _, k := range d.Outcomes() {
		if k > limit {
			break
		}
		p += d[k]
	}
	return p
}

// Success returns the probability that the current skill level covers the
// overflow, i.e. no further points are needed.
func (d Distribution) Success() float64 {
	return d.AtMost(0)
}

// TalentResult is the simulation output for one assembled talent.
type TalentResult struct {
	Talent       AssembledTalent
	Stream       int
	Trials       int
	Tally        Tally
	Distribution Distribution
}

// Results is the outcome of one simulation run. Talents keeps assembly order.
type Results struct {
	RunID   string
	Seed    uint64
	Trials  int
	Talents []TalentResult
	Skipped []AssembledTalent
}

// ByName keys the distributions by talent name. When names repeat, the later
// row wins.
func (r *Results) ByName() map[string]Distribution {
	out := make(map[string]Distribution, len(r.Talents))
	for _, tr := range r.Talents {
		out[tr.Talent.Name] = tr.Distribution
	}
	return out
}
