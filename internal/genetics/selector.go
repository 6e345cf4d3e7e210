// Package genetics implements random genome generation, crossover, mutation
// and splicing over dna genes. Every random decision goes through a
// Selector, so a scripted Selector makes every operation deterministic.
package genetics

import "math/rand/v2"

// Selector supplies every random decision the engine makes. The engine
// calls it strictly in the documented order for each operation.
type Selector interface {
	// Weighted picks an index with probability proportional to weights[i].
	Weighted(weights []float64) int
	// Choose picks uniformly among n alternatives. The engine only asks
	// when n >= 2.
	Choose(n int) int
	// Range picks uniformly from lo..hi inclusive.
	Range(lo, hi int) int

	// Terminate decides whether random tree generation stops at depth.
	Terminate(depth int, p float64) bool
	// PickPrimary decides whether crossover takes the primary parent's gene.
	PickPrimary(p float64) bool
	// UseRestOfPrimary decides whether the longer primary's tail is kept.
	UseRestOfPrimary(p float64) bool
	// UseRestOfSecondary decides whether the longer secondary's tail is kept.
	UseRestOfSecondary(p float64) bool
}

// choose consults sel only when there is a real choice to make.
func choose(sel Selector, n int) int {
	if n <= 1 {
		return 0
	}
	return sel.Choose(n)
}

// RandomSelector draws every decision from a seeded PCG source.
type RandomSelector struct {
	rng *rand.Rand
}

// NewRandomSelector returns a selector whose draws are reproducible for a
// given seed.
func NewRandomSelector(seed uint64) *RandomSelector {
	return &RandomSelector{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *RandomSelector) Weighted(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}
	x := r.rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if x < w {
			return i
		}
		x -= w
	}
	// Rounding can leave x a hair above the last bucket.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}

func (r *RandomSelector) Choose(n int) int {
	if n <= 1 {
		return 0
	}
	return r.rng.IntN(n)
}

func (r *RandomSelector) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.IntN(hi-lo+1)
}

func (r *RandomSelector) Terminate(_ int, p float64) bool { return r.bernoulli(p) }
func (r *RandomSelector) PickPrimary(p float64) bool { return r.bernoulli(p) }
func (r *RandomSelector) UseRestOfPrimary(p float64) bool { return r.bernoulli(p) }
func (r *RandomSelector) UseRestOfSecondary(p float64) bool { return r.bernoulli(p) }

func (r *RandomSelector) bernoulli(p float64) bool {
	return r.rng.Float64() < p
}
