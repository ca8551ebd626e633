package utils

import "math"

// NormalizeL2 normalizes the slice in place to unit L2 norm.
// If the norm is zero, the slice is unchanged.
func NormalizeL2(x []float32) {
	var sum float32
	for _, v := range x {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range x {
		x[i] *= norm
	}
}

// Sigmoid maps a raw cross-encoder logit to (0, 1).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// MeanPool averages hidden states over the positions marked in mask.
// hidden is laid out as [tokens][dims] flattened row-major; the result has
// length dims. Positions with mask 0 (padding) are ignored. If the mask is
// all zeros, the result is a zero vector.
func MeanPool(hidden []float32, mask []int64, dims int) []float32 {
	pooled := make([]float32, dims)
	var count float32
	for pos, m := range mask {
		if m == 0 {
			continue
		}
		base := pos * dims
		if base+dims > len(hidden) {
			break
		}
		for d := 0; d < dims; d++ {
			pooled[d] += hidden[base+d]
		}
		count++
	}
	if count == 0 {
		return pooled
	}
	for d := range pooled {
		pooled[d] /= count
	}
	return pooled
}

// ArgMax returns the index of the largest value in x, or -1 for an empty slice.
func ArgMax(x []float32) int {
	if len(x) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(x); i++ {
		if x[i] > x[best] {
			best = i
		}
	}
	return best
}
