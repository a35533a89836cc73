// Package linear provides feature standardization and logistic regression
// trained by batch gradient descent on gonum matrices.
package linear

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNotFitted indicates Transform/Predict before Fit.
	ErrNotFitted = errors.New("linear: model is not fitted")

	// ErrDimensionMismatch indicates input whose column count differs from
	// the fitted shape.
	ErrDimensionMismatch = errors.New("linear: column count does not match fitted data")

	// ErrEmptyInput indicates a matrix with no rows.
	ErrEmptyInput = errors.New("linear: empty input")

	// ErrSingleClass indicates training labels of only one class.
	ErrSingleClass = errors.New("linear: training labels contain a single class")
)

// StandardScaler centers each column to zero mean and scales to unit
// standard deviation. Zero-variance columns are centered only.
type StandardScaler struct {
	mean []float64
	std  []float64
}

// Fit learns per-column mean and standard deviation from X.
func (s *StandardScaler) Fit(X *mat.Dense) error {
	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return ErrEmptyInput
	}
	s.mean = make([]float64, cols)
	s.std = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, X)
		s.mean[j], s.std[j] = stat.MeanStdDev(col, nil)
		if s.std[j] == 0 {
			s.std[j] = 1 // centered only
		}
	}
	return nil
}

// Transform returns a standardized copy of X using the fitted parameters.
func (s *StandardScaler) Transform(X *mat.Dense) (*mat.Dense, error) {
	if s.mean == nil {
		return nil, ErrNotFitted
	}
	rows, cols := X.Dims()
	if cols != len(s.mean) {
		return nil, fmt.Errorf("%w: got %d columns, fitted on %d", ErrDimensionMismatch, cols, len(s.mean))
	}
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, (X.At(i, j)-s.mean[j])/s.std[j])
		}
	}
	return out, nil
}

// FitTransform fits the scaler on X and returns the standardized copy.
func (s *StandardScaler) FitTransform(X *mat.Dense) (*mat.Dense, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// Mean returns the fitted per-column means (nil before Fit).
func (s *StandardScaler) Mean() []float64 { return s.mean }

// Std returns the fitted per-column standard deviations (nil before Fit).
func (s *StandardScaler) Std() []float64 { return s.std }
