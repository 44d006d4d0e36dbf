package synthesis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidGrid is returned when a grid would be empty or have a
// non-increasing range.
var ErrInvalidGrid = errors.New("invalid sample grid")

// SampleGrid is an ordered, evenly spaced set of domain points covering the
// half-open interval [lower, upper). It never changes after construction.
type SampleGrid struct {
	points []float64
	lower  float64
	upper  float64
}

// NewSampleGrid builds n evenly spaced points over [lower, upper)
func NewSampleGrid(lower, upper float64, n int) (SampleGrid, error) {
	if n < 1 {
		return SampleGrid{}, fmt.Errorf("%w: %d points", ErrInvalidGrid, n)
	}
	if !(upper > lower) {
		return SampleGrid{}, fmt.Errorf("%w: range [%v, %v)", ErrInvalidGrid, lower, upper)
	}

	// Span is inclusive, so lay out n+1 points and drop the upper bound
	points := floats.Span(make([]float64, n+1), lower, upper)[:n]

	return SampleGrid{
		points: points,
		lower:  lower,
		upper:  upper,
	}, nil
}

// Len returns the number of points
func (g SampleGrid) Len() int {
	return len(g.points)
}

// At returns the i-th domain point
func (g SampleGrid) At(i int) float64 {
	return g.points[i]
}

// Points returns a copy of the domain points
func (g SampleGrid) Points() []float64 {
	out := make([]float64, len(g.points))
	copy(out, g.points)
	return out
}

// Spacing returns the distance between neighbouring points
func (g SampleGrid) Spacing() float64 {
	if len(g.points) == 0 {
		return 0
	}
	return (g.upper - g.lower) / float64(len(g.points))
}

// Lower returns the inclusive lower bound
func (g SampleGrid) Lower() float64 { return g.lower }

// Upper returns the exclusive upper bound
func (g SampleGrid) Upper() float64 { return g.upper }
