package agents

import (
	"errors"
	"fmt"
	"math"
)

// ErrMalformedDistribution is returned for distributions that cannot cover [0, 1).
var ErrMalformedDistribution = errors.New("malformed distribution")

// Weighted pairs a category with its relative weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Distribution is a categorical distribution with normalized cumulative weights.
// Entries keep their declared order.
type Distribution[T any] struct {
	values     []T
	cumulative []float64
}

// NewDistribution normalizes the weights so they sum to 1.
func NewDistribution[T any](entries ...Weighted[T]) (Distribution[T], error) {
	if len(entries) == 0 {
		return Distribution[T]{}, fmt.Errorf("%w: no entries", ErrMalformedDistribution)
	}

	total := 0.0
	for i, e := range entries {
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return Distribution[T]{}, fmt.Errorf("%w: entry %d has weight %v", ErrMalformedDistribution, i, e.Weight)
		}
		total += e.Weight
	}
	if total <= 0 {
		return Distribution[T]{}, fmt.Errorf("%w: weights sum to zero", ErrMalformedDistribution)
	}

	d := Distribution[T]{
		values:     make([]T, len(entries)),
		cumulative: make([]float64, len(entries)),
	}
	stack := 0.0
	for i, e := range entries {
		stack += e.Weight / total
		d.values[i] = e.Value
		d.cumulative[i] = stack
	}
	// Last entry catches whatever float error left uncovered.
	d.cumulative[len(d.cumulative)-1] = 1
	return d, nil
}

// MustDistribution is like NewDistribution but panics on error. Used for
// package-level constant distributions.
func MustDistribution[T any](entries ...Weighted[T]) Distribution[T] {
	d, err := NewDistribution(entries...)
	if err != nil {
		panic(err)
	}
	return d
}

// Draw returns the first category whose cumulative weight reaches u.
// u is expected in [0, 1); anything above maps to the last category.
func (d Distribution[T]) Draw(u float64) T {
	for i, c := range d.cumulative {
		if c >= u {
			return d.values[i]
		}
	}
	return d.values[len(d.values)-1]
}

// Probability returns the normalized weight of the i-th entry.
func (d Distribution[T]) Probability(i int) float64 {
	if i == 0 {
		return d.cumulative[0]
	}
	return d.cumulative[i] - d.cumulative[i-1]
}

// Len returns the number of categories.
func (d Distribution[T]) Len() int {
	return len(d.values)
}
