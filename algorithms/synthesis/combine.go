package synthesis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Combine returns the pointwise sum of the given waveforms as a new Waveform.
// All waveforms must come from the same grid; a length mismatch is a caller
// bug and panics.
func Combine(waves ...Waveform) Waveform {
	if len(waves) == 0 {
		return Waveform{}
	}

	n := len(waves[0])
	for i, w := range waves[1:] {
		if len(w) != n {
			panic(fmt.Sprintf("synthesis: waveform %d has length %d, want %d", i+1, len(w), n))
		}
	}

	sum := make(Waveform, n)
	for _, w := range waves {
		floats.Add(sum, w)
	}
	return sum
}
