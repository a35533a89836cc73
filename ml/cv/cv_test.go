package cv

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainTestSplit_PartitionsAllIndices(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	split, err := TrainTestSplit(100, 0.25, rng)
	require.NoError(t, err)

	assert.Len(t, split.Test, 25)
	assert.Len(t, split.Train, 75)

	seen := make(map[int]bool)
	for _, i := range append(append([]int{}, split.Train...), split.Test...) {
		assert.False(t, seen[i], "index %d appears twice", i)
		seen[i] = true
	}
	assert.Len(t, seen, 100)
}

func TestTrainTestSplit_SmallFractionKeepsOneTestRow(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	split, err := TrainTestSplit(10, 0.01, rng)
	require.NoError(t, err)
	assert.Len(t, split.Test, 1)
}

func TestTrainTestSplit_Deterministic(t *testing.T) {
	a, err := TrainTestSplit(50, 0.2, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := TrainTestSplit(50, 0.2, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTrainTestSplit_Errors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := TrainTestSplit(1, 0.2, rng)
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, err = TrainTestSplit(10, 0, rng)
	assert.ErrorIs(t, err, ErrBadFraction)
	_, err = TrainTestSplit(10, 1, rng)
	assert.ErrorIs(t, err, ErrBadFraction)
}

func makeLabels(pos, neg int) []bool {
	labels := make([]bool, 0, pos+neg)
	for i := 0; i < pos; i++ {
		labels = append(labels, true)
	}
	for i := 0; i < neg; i++ {
		labels = append(labels, false)
	}
	return labels
}

func TestStratifiedKFold_CoversEveryIndexExactlyOnce(t *testing.T) {
	labels := makeLabels(30, 70)
	splits, err := StratifiedKFold(labels, 5, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	require.Len(t, splits, 5)

	testSeen := make(map[int]int)
	for _, s := range splits {
		assert.Len(t, s.Test, 20)
		assert.Len(t, s.Train, 80)
		for _, i := range s.Test {
			testSeen[i]++
		}
	}
	require.Len(t, testSeen, 100)
	for i, c := range testSeen {
		assert.Equal(t, 1, c, "index %d tested %d times", i, c)
	}
}

func TestStratifiedKFold_PreservesClassRatio(t *testing.T) {
	labels := makeLabels(40, 60)
	splits, err := StratifiedKFold(labels, 4, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	for f, s := range splits {
		pos := 0
		for _, i := range s.Test {
			if labels[i] {
				pos++
			}
		}
		// 40 positives over 4 folds: exactly 10 per fold.
		assert.Equal(t, 10, pos, "fold %d", f)
	}
}

func TestStratifiedKFold_UnevenClassesDifferByAtMostOne(t *testing.T) {
	labels := makeLabels(17, 33)
	splits, err := StratifiedKFold(labels, 5, rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	minPos, maxPos := 1<<30, -1
	for _, s := range splits {
		pos := 0
		for _, i := range s.Test {
			if labels[i] {
				pos++
			}
		}
		if pos < minPos {
			minPos = pos
		}
		if pos > maxPos {
			maxPos = pos
		}
	}
	assert.LessOrEqual(t, maxPos-minPos, 1)
}

func TestStratifiedKFold_Errors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := StratifiedKFold(nil, 2, rng)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = StratifiedKFold(makeLabels(5, 5), 1, rng)
	assert.ErrorIs(t, err, ErrBadFoldCount)

	// k larger than the smaller class would leave folds with no positives.
	_, err = StratifiedKFold(makeLabels(2, 50), 3, rng)
	assert.ErrorIs(t, err, ErrBadFoldCount)
}
