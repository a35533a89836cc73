package linear

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is a binary classifier trained by full-batch gradient
// descent on the L2-regularized cross-entropy loss. The intercept is always
// fitted and never penalized. Zero-valued fields pick up defaults at Fit.
type LogisticRegression struct {
	LearningRate float64 // step size (default 0.1)
	L2           float64 // ridge penalty on non-intercept weights (default 0)
	MaxIter      int     // gradient steps (default 1000)
	Tol          float64 // stop when the gradient's max-norm drops below (default 1e-6)

	weights []float64 // intercept first, then one weight per feature
	iters   int
}

const (
	defaultLearningRate = 0.1
	defaultMaxIter      = 1000
	defaultTol          = 1e-6
)

// Fit trains on design matrix X (one row per observation) and binary labels y.
func (m *LogisticRegression) Fit(X *mat.Dense, y []bool) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return ErrEmptyInput
	}
	if len(y) != rows {
		return fmt.Errorf("%w: %d rows, %d labels", ErrDimensionMismatch, rows, len(y))
	}
	pos := 0
	for _, l := range y {
		if l {
			pos++
		}
	}
	if pos == 0 || pos == rows {
		return ErrSingleClass
	}

	lr := m.LearningRate
	if lr == 0 {
		lr = defaultLearningRate
	}
	maxIter := m.MaxIter
	if maxIter == 0 {
		maxIter = defaultMaxIter
	}
	tol := m.Tol
	if tol == 0 {
		tol = defaultTol
	}

	target := make([]float64, rows)
	for i, l := range y {
		if l {
			target[i] = 1
		}
	}

	w := make([]float64, cols+1) // [intercept, w1..wd]
	grad := make([]float64, cols+1)
	p := make([]float64, rows)

	for m.iters = 0; m.iters < maxIter; m.iters++ {
		// p = sigmoid(b + X w)
		for i := 0; i < rows; i++ {
			z := w[0]
			for j := 0; j < cols; j++ {
				z += X.At(i, j) * w[j+1]
			}
			p[i] = sigmoid(z)
		}

		// grad = X^T (p - y) / n, plus ridge on non-intercept weights
		for k := range grad {
			grad[k] = 0
		}
		for i := 0; i < rows; i++ {
			r := p[i] - target[i]
			grad[0] += r
			for j := 0; j < cols; j++ {
				grad[j+1] += r * X.At(i, j)
			}
		}
		floats.Scale(1/float64(rows), grad)
		if m.L2 > 0 {
			for j := 1; j <= cols; j++ {
				grad[j] += m.L2 * w[j]
			}
		}

		if floats.Norm(grad, math.Inf(1)) < tol {
			break
		}
		floats.AddScaled(w, -lr, grad)
	}

	m.weights = w
	return nil
}

// PredictProba returns P(y=1) for each row of X.
func (m *LogisticRegression) PredictProba(X *mat.Dense) ([]float64, error) {
	if m.weights == nil {
		return nil, ErrNotFitted
	}
	rows, cols := X.Dims()
	if cols != len(m.weights)-1 {
		return nil, fmt.Errorf("%w: got %d columns, fitted on %d", ErrDimensionMismatch, cols, len(m.weights)-1)
	}
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		z := m.weights[0]
		for j := 0; j < cols; j++ {
			z += X.At(i, j) * m.weights[j+1]
		}
		out[i] = sigmoid(z)
	}
	return out, nil
}

// Predict classifies each row of X at the 0.5 probability threshold.
func (m *LogisticRegression) Predict(X *mat.Dense) ([]bool, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]bool, len(proba))
	for i, p := range proba {
		out[i] = p >= 0.5
	}
	return out, nil
}

// Weights returns a copy of the fitted coefficients, intercept first.
func (m *LogisticRegression) Weights() []float64 {
	if m.weights == nil {
		return nil
	}
	return append([]float64(nil), m.weights...)
}

// Iterations reports the gradient steps taken by the last Fit.
func (m *LogisticRegression) Iterations() int { return m.iters }

func sigmoid(z float64) float64 {
	// split to keep exp from overflowing for large |z|
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
