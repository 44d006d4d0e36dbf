package spectral

import (
	"math"
	"sort"
)

// Peak represents a detected spectral peak
type Peak struct {
	Frequency float64 // Peak frequency, same unit as the frequency axis
	Magnitude float64 // Peak magnitude
	Index     int     // Index into the analysed arrays
}

// PeakDetector finds local maxima in a magnitude spectrum
type PeakDetector struct {
	minPeakHeight   float64
	minPeakDistance float64 // Minimum distance between peaks on the frequency axis
	maxPeaks        int     // 0 keeps every peak
}

// NewPeakDetector creates a new peak detector
func NewPeakDetector(minPeakHeight, minPeakDistance float64, maxPeaks int) *PeakDetector {
	return &PeakDetector{
		minPeakHeight:   minPeakHeight,
		minPeakDistance: minPeakDistance,
		maxPeaks:        maxPeaks,
	}
}

// Detect returns peaks sorted by magnitude, highest first. freqs and mags
// are parallel arrays; the frequency axis need not be uniform.
func (pd *PeakDetector) Detect(freqs, mags []float64) []Peak {
	n := min(len(freqs), len(mags))
	if n < 3 {
		return []Peak{}
	}

	// Local maxima; the right neighbour may tie so flat-topped peaks count once
	var candidates []Peak
	for i := 1; i < n-1; i++ {
		if mags[i] > mags[i-1] && mags[i] >= mags[i+1] && mags[i] >= pd.minPeakHeight {
			candidates = append(candidates, Peak{
				Frequency: freqs[i],
				Magnitude: mags[i],
				Index:     i,
			})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Magnitude > candidates[j].Magnitude
	})

	// Greedy: a peak survives only if no stronger one is too close
	peaks := make([]Peak, 0, len(candidates))
	for _, c := range candidates {
		tooClose := false
		for _, p := range peaks {
			if math.Abs(c.Frequency-p.Frequency) < pd.minPeakDistance {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		peaks = append(peaks, c)
		if pd.maxPeaks > 0 && len(peaks) == pd.maxPeaks {
			break
		}
	}

	return peaks
}

// DominantPeak returns the single strongest peak, if any
func (pd *PeakDetector) DominantPeak(freqs, mags []float64) (Peak, bool) {
	peaks := pd.Detect(freqs, mags)
	if len(peaks) == 0 {
		return Peak{}, false
	}
	return peaks[0], true
}
