package linear

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// blobs builds two well-separated Gaussian clusters: class false around
// (-2,-2), class true around (2,2).
func blobs(n int, seed int64) (*mat.Dense, []bool) {
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(n, 2, nil)
	y := make([]bool, n)
	for i := 0; i < n; i++ {
		center := -2.0
		if i%2 == 0 {
			center = 2.0
			y[i] = true
		}
		X.Set(i, 0, rng.NormFloat64()*0.5+center)
		X.Set(i, 1, rng.NormFloat64()*0.5+center)
	}
	return X, y
}

func TestLogisticRegression_SeparatesBlobs(t *testing.T) {
	X, y := blobs(200, 42)
	var m LogisticRegression
	require.NoError(t, m.Fit(X, y))

	pred, err := m.Predict(X)
	require.NoError(t, err)

	correct := 0
	for i := range pred {
		if pred[i] == y[i] {
			correct++
		}
	}
	assert.GreaterOrEqual(t, correct, 195, "training accuracy on separable blobs")
}

func TestLogisticRegression_ProbabilitiesOrdered(t *testing.T) {
	X, y := blobs(200, 1)
	var m LogisticRegression
	require.NoError(t, m.Fit(X, y))

	probe := mat.NewDense(3, 2, []float64{
		-3, -3,
		0, 0,
		3, 3,
	})
	p, err := m.PredictProba(probe)
	require.NoError(t, err)
	assert.Less(t, p[0], 0.1)
	assert.Greater(t, p[2], 0.9)
	assert.Less(t, p[0], p[1])
	assert.Less(t, p[1], p[2])
}

func TestLogisticRegression_ProbabilitiesInUnitInterval(t *testing.T) {
	X, y := blobs(100, 3)
	var m LogisticRegression
	require.NoError(t, m.Fit(X, y))

	p, err := m.PredictProba(X)
	require.NoError(t, err)
	for i, v := range p {
		assert.GreaterOrEqual(t, v, 0.0, "row %d", i)
		assert.LessOrEqual(t, v, 1.0, "row %d", i)
	}
}

func TestLogisticRegression_L2ShrinksWeights(t *testing.T) {
	X, y := blobs(200, 5)

	var plain LogisticRegression
	require.NoError(t, plain.Fit(X, y))

	ridge := LogisticRegression{L2: 1.0}
	require.NoError(t, ridge.Fit(X, y))

	normOf := func(w []float64) float64 {
		s := 0.0
		for _, v := range w[1:] { // intercept unpenalized
			s += v * v
		}
		return s
	}
	assert.Less(t, normOf(ridge.Weights()), normOf(plain.Weights()))
}

func TestLogisticRegression_Deterministic(t *testing.T) {
	X, y := blobs(100, 9)
	var a, b LogisticRegression
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))
	assert.Equal(t, a.Weights(), b.Weights())
}

func TestLogisticRegression_Errors(t *testing.T) {
	var m LogisticRegression

	_, err := m.Predict(mat.NewDense(1, 2, []float64{1, 2}))
	assert.ErrorIs(t, err, ErrNotFitted)

	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	assert.ErrorIs(t, m.Fit(X, []bool{true}), ErrDimensionMismatch)
	assert.ErrorIs(t, m.Fit(X, []bool{true, true}), ErrSingleClass)
	assert.ErrorIs(t, m.Fit(X, []bool{false, false}), ErrSingleClass)

	require.NoError(t, m.Fit(X, []bool{true, false}))
	_, err = m.Predict(mat.NewDense(1, 3, []float64{1, 2, 3}))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestLogisticRegression_WeightsCopied(t *testing.T) {
	X, y := blobs(50, 2)
	var m LogisticRegression
	require.NoError(t, m.Fit(X, y))

	w := m.Weights()
	w[0] = 999
	assert.NotEqual(t, 999.0, m.Weights()[0])
}
