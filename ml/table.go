package ml

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyTable indicates a table with zero rows or zero columns.
	ErrEmptyTable = errors.New("ml: table must have at least one row and one column")

	// ErrRaggedTable indicates rows of inconsistent length.
	ErrRaggedTable = errors.New("ml: all table rows must have the same length")

	// ErrNonFinite indicates a NaN or infinite entry.
	ErrNonFinite = errors.New("ml: table entries must be finite")
)

// ValidateTable checks that table is a non-empty rectangular matrix of finite
// float64 values and returns its column count. The three failure modes are
// distinguishable with errors.Is: ErrEmptyTable, ErrRaggedTable, ErrNonFinite.
// Wrapped errors carry the offending row/column for diagnostics.
func ValidateTable(table [][]float64) (cols int, err error) {
	if len(table) == 0 {
		return 0, ErrEmptyTable
	}
	cols = len(table[0])
	if cols == 0 {
		return 0, fmt.Errorf("%w: row 0 has no columns", ErrEmptyTable)
	}
	for i, row := range table {
		if len(row) != cols {
			return 0, fmt.Errorf("%w: row %d has %d columns, row 0 has %d",
				ErrRaggedTable, i, len(row), cols)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("%w: entry (%d,%d) = %v", ErrNonFinite, i, j, v)
			}
		}
	}
	return cols, nil
}

// ValidateVector checks that data is non-empty and finite.
// Returns ErrEmptyTable or ErrNonFinite (wrapped with the offending index).
func ValidateVector(data []float64) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty vector", ErrEmptyTable)
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: entry %d = %v", ErrNonFinite, i, v)
		}
	}
	return nil
}
