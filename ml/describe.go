// ml/describe.go
package ml

import (
	"math"
	"sort"
)

// IntOrFloat64 constrains the numeric types accepted by the summary helpers.
type IntOrFloat64 interface {
	int | int64 | float64
}

// Percentile calculates the p-th percentile (0-100) of data using linear
// interpolation between closest ranks. data does not need to be sorted.
// Returns NaN for empty input.
func Percentile[T IntOrFloat64](data []T, p float64) float64 {
	n := len(data)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	for i, v := range data {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)

	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if upperIdx >= n {
		return sorted[n-1]
	}
	if lowerIdx == upperIdx {
		return sorted[lowerIdx]
	}
	lowerVal := sorted[lowerIdx]
	upperVal := sorted[upperIdx]
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}

// Mean calculates the arithmetic mean of data. Returns 0 for empty input.
func Mean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}
	return sum / float64(len(numbers))
}

// StdDev calculates the population standard deviation of data.
// Returns 0 for inputs with fewer than two values.
func StdDev[T IntOrFloat64](numbers []T) float64 {
	n := len(numbers)
	if n < 2 {
		return 0.0
	}
	mean := Mean(numbers)
	ss := 0.0
	for _, number := range numbers {
		d := float64(number) - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}
