package synthesis

import (
	"math"
)

// SumOfSines evaluates sum_f sin(f*x) for every position x. Frequencies are
// plain multipliers on the domain value; a zero frequency contributes nothing.
func SumOfSines(frequencies []float64, positions []float64) []float64 {
	out := make([]float64, len(positions))
	for _, f := range frequencies {
		if f == 0 {
			continue
		}
		for i, x := range positions {
			out[i] += math.Sin(f * x)
		}
	}
	return out
}
