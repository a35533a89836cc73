package ml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTable_Rectangular(t *testing.T) {
	cols, err := ValidateTable([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, cols)
}

func TestValidateTable_Empty(t *testing.T) {
	_, err := ValidateTable(nil)
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = ValidateTable([][]float64{})
	assert.ErrorIs(t, err, ErrEmptyTable)

	_, err = ValidateTable([][]float64{{}})
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestValidateTable_Ragged(t *testing.T) {
	_, err := ValidateTable([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrRaggedTable)
	assert.Contains(t, err.Error(), "row 1")
}

func TestValidateTable_NonFinite(t *testing.T) {
	for name, bad := range map[string]float64{
		"nan":      math.NaN(),
		"pos-inf":  math.Inf(1),
		"neg-inf":  math.Inf(-1),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateTable([][]float64{{1, 2}, {bad, 4}})
			assert.ErrorIs(t, err, ErrNonFinite)
		})
	}
}

func TestValidateVector(t *testing.T) {
	require.NoError(t, ValidateVector([]float64{1, 2, 3}))
	assert.ErrorIs(t, ValidateVector(nil), ErrEmptyTable)
	assert.ErrorIs(t, ValidateVector([]float64{1, math.NaN()}), ErrNonFinite)
}

func TestPercentile_Interpolation(t *testing.T) {
	data := []float64{10, 20, 30, 40}
	assert.InDelta(t, 10.0, Percentile(data, 0), 1e-12)
	assert.InDelta(t, 25.0, Percentile(data, 50), 1e-12)
	assert.InDelta(t, 40.0, Percentile(data, 100), 1e-12)
	assert.InDelta(t, 37.0, Percentile(data, 90), 1e-12)
}

func TestPercentile_UnsortedInput(t *testing.T) {
	assert.InDelta(t, 25.0, Percentile([]int{40, 10, 30, 20}, 50), 1e-12)
}

func TestMeanStdDev(t *testing.T) {
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
	assert.InDelta(t, 0.0, Mean([]float64{}), 1e-12)
	// population stddev of {2,4,4,4,5,5,7,9} is exactly 2
	assert.InDelta(t, 2.0, StdDev([]int{2, 4, 4, 4, 5, 5, 7, 9}), 1e-12)
	assert.InDelta(t, 0.0, StdDev([]float64{5}), 1e-12)
}
