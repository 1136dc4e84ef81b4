package errors

import (
	"math"
)

// CheckRows reports the first row of a sample table holding a NaN. Infinite
// values are ordered like any other float and pass.
func CheckRows(operation string, rows [][]float64) error {
	for i, row := range rows {
		for _, v := range row {
			if math.IsNaN(v) {
				return NewNumericalInstabilityError(operation, row, i)
			}
		}
	}
	return nil
}

// CheckMatrix checks all values in a matrix for numerical instability.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		var unstable []float64
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstable = append(unstable, v)
			}
		}
		if len(unstable) > 0 {
			return NewNumericalInstabilityError(operation, unstable, i)
		}
	}
	return nil
}
