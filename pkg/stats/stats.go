package stats

import (
	"cmp"
	"math"
	"sort"
)

// Mean computes the average of a slice.
func Mean(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(n)
}

// Variance computes the population variance of a slice.
func Variance(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	mean := Mean(x)
	v := 0.0
	for _, xi := range x {
		d := xi - mean
		v += d * d
	}
	return v / float64(n)
}

// Std computes the population standard deviation of a slice.
func Std(x []float64) float64 {
	return math.Sqrt(Variance(x))
}

// Median returns the median value of the slice (allocates a copy).
// For an even count it averages the two middle values.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	cp := make([]float64, n)
	copy(cp, x)
	sort.Float64s(cp)
	mid := n >> 1 // bitwise division by 2
	if n&1 == 0 { // even
		return (cp[mid-1] + cp[mid]) * 0.5
	}
	return cp[mid]
}

// Mode returns the most frequent value in the slice.
// Ties go to the smallest value so the result does not depend on input order.
func Mode[T cmp.Ordered](x []T) T {
	var mode T
	if len(x) == 0 {
		return mode
	}
	counts := make(map[T]int)
	for _, v := range x {
		counts[v]++
	}
	maxCount := 0
	for v, c := range counts {
		if c > maxCount || (c == maxCount && v < mode) {
			maxCount = c
			mode = v
		}
	}
	return mode
}

// Observed drops NaN entries from x.
func Observed(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
