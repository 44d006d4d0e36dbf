package common

// RotateLeft circularly shifts data left by k positions in place, so that
// data[i] takes the value previously at data[(i+k) mod n]. Negative k
// rotates right.
func RotateLeft(data []float64, k int) {
	n := len(data)
	if n == 0 {
		return
	}
	k %= n
	if k < 0 {
		k += n
	}
	if k == 0 {
		return
	}

	// Three reversals rotate without a scratch buffer
	reverse(data[:k])
	reverse(data[k:])
	reverse(data)
}

func reverse(data []float64) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}

// Tail returns the last k elements of data (the whole slice if k >= len)
func Tail(data []float64, k int) []float64 {
	if k >= len(data) {
		return data
	}
	if k <= 0 {
		return data[len(data):]
	}
	return data[len(data)-k:]
}
