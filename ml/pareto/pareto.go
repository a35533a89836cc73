package pareto

import (
	"context"
	"fmt"
	"runtime"

	"github.com/datalab-go/datalab/ml"
	"github.com/datalab-go/datalab/ml/parallel"
)

// Dominates reports whether a dominates b: a >= b in every objective and
// a > b in at least one. Both slices must have the same length; the relation
// is irreflexive, so equal vectors never dominate each other.
func Dominates(a, b []float64) bool {
	strict := false
	for k := range a {
		if a[k] < b[k] {
			return false
		}
		if a[k] > b[k] {
			strict = true
		}
	}
	return strict
}

// Front returns the indices, ascending, of the non-dominated rows of scores.
// scores must be a non-empty rectangular table of finite values (one row per
// candidate, one column per objective); violations surface as ml.ErrEmptyTable,
// ml.ErrRaggedTable or ml.ErrNonFinite. The input is not modified.
func Front(scores [][]float64) ([]int, error) {
	mask, err := FrontMask(scores)
	if err != nil {
		return nil, err
	}
	return maskToIndices(mask), nil
}

// FrontMask is the boolean-mask form of Front: mask[i] is true iff candidate
// i is non-dominated. Same validation and conventions as Front.
func FrontMask(scores [][]float64) ([]bool, error) {
	if _, err := ml.ValidateTable(scores); err != nil {
		return nil, fmt.Errorf("pareto: %w", err)
	}
	n := len(scores)
	mask := make([]bool, n)
	for i := 0; i < n; i++ {
		mask[i] = onFront(scores, i)
	}
	return mask, nil
}

// FrontParallel computes the same index set as Front, partitioning the outer
// loop over at most workers goroutines. workers <= 0 selects GOMAXPROCS.
// Each candidate's membership depends only on the immutable input table, so
// no locking is involved. ctx cancels between candidate evaluations.
func FrontParallel(ctx context.Context, scores [][]float64, workers int) ([]int, error) {
	if _, err := ml.ValidateTable(scores); err != nil {
		return nil, fmt.Errorf("pareto: %w", err)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	n := len(scores)
	mask := make([]bool, n)
	err := parallel.ForEach(ctx, n, workers, func(_ context.Context, i int) error {
		mask[i] = onFront(scores, i)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return maskToIndices(mask), nil
}

// onFront reports whether candidate i has no dominator, stopping at the
// first one found.
func onFront(scores [][]float64, i int) bool {
	for j := range scores {
		if j == i {
			continue
		}
		if Dominates(scores[j], scores[i]) {
			return false
		}
	}
	return true
}

func maskToIndices(mask []bool) []int {
	out := make([]int, 0, len(mask))
	for i, on := range mask {
		if on {
			out = append(out, i)
		}
	}
	return out
}
