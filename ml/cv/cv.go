// Package cv provides resampling helpers: shuffled train/test splits and
// stratified k-fold cross validation over binary labels.
package cv

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	// ErrBadFoldCount indicates k < 2 or k exceeding the smaller class.
	ErrBadFoldCount = errors.New("cv: fold count must be >= 2 and <= the size of the smaller class")

	// ErrBadFraction indicates a test fraction outside (0, 1).
	ErrBadFraction = errors.New("cv: test fraction must be in (0, 1)")

	// ErrEmptyInput indicates no observations.
	ErrEmptyInput = errors.New("cv: empty input")
)

// Split is one train/test partition of observation indices.
type Split struct {
	Train []int
	Test  []int
}

// TrainTestSplit shuffles indices 0..n-1 and reserves testFraction of them
// (rounded down, at least one) for the test side.
func TrainTestSplit(n int, testFraction float64, rng *rand.Rand) (Split, error) {
	if n <= 1 {
		return Split{}, fmt.Errorf("%w: need at least 2 observations, got %d", ErrEmptyInput, n)
	}
	if testFraction <= 0 || testFraction >= 1 {
		return Split{}, fmt.Errorf("%w: got %v", ErrBadFraction, testFraction)
	}
	idx := rng.Perm(n)
	testSize := int(float64(n) * testFraction)
	if testSize == 0 {
		testSize = 1
	}
	return Split{Train: idx[testSize:], Test: idx[:testSize]}, nil
}

// StratifiedKFold partitions indices 0..len(labels)-1 into k folds whose
// class proportions track the full set: each class is shuffled separately
// and dealt round-robin, so fold class counts differ by at most one.
// Each returned Split tests on one fold and trains on the rest.
func StratifiedKFold(labels []bool, k int, rng *rand.Rand) ([]Split, error) {
	if len(labels) == 0 {
		return nil, ErrEmptyInput
	}

	var pos, neg []int
	for i, l := range labels {
		if l {
			pos = append(pos, i)
		} else {
			neg = append(neg, i)
		}
	}
	smaller := len(pos)
	if len(neg) < smaller {
		smaller = len(neg)
	}
	if k < 2 || k > smaller {
		return nil, fmt.Errorf("%w: k=%d with class sizes %d/%d",
			ErrBadFoldCount, k, len(pos), len(neg))
	}

	rng.Shuffle(len(pos), func(i, j int) { pos[i], pos[j] = pos[j], pos[i] })
	rng.Shuffle(len(neg), func(i, j int) { neg[i], neg[j] = neg[j], neg[i] })

	folds := make([][]int, k)
	for i, idx := range pos {
		folds[i%k] = append(folds[i%k], idx)
	}
	for i, idx := range neg {
		folds[i%k] = append(folds[i%k], idx)
	}

	splits := make([]Split, k)
	for f := 0; f < k; f++ {
		for g := 0; g < k; g++ {
			if g == f {
				splits[f].Test = append(splits[f].Test, folds[g]...)
			} else {
				splits[f].Train = append(splits[f].Train, folds[g]...)
			}
		}
	}
	return splits, nil
}
