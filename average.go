package hsflow

// Neighbour weights of the discrete Laplacian approximation:
//
//	1/12 --- 1/6 --- 1/12
//	 |        |       |
//	1/6  ---  *  --- 1/6
//	 |        |       |
//	1/12 --- 1/6 --- 1/12
//
// Neighbours outside the grid are dropped and the remaining weights are not
// renormalised, so border blocks sum to less than one.
const (
	axisWeight     = 1.0 / 6.0
	diagonalWeight = 1.0 / 12.0
)

type offset struct{ dr, dc int }

var (
	axisNeighbours     = [4]offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonalNeighbours = [4]offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// AverageField returns the weighted neighbour average of every vector of the
// field. The input is left untouched.
func AverageField(field *MotionField) *MotionField {
	rows, cols := field.Dims()
	avg := NewMotionField(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			avg.Set(i, j, neighbourAverage(field, i, j, rows, cols))
		}
	}
	return avg
}

// neighbourAverage computes the weighted average around block (i, j).
func neighbourAverage(field *MotionField, i, j, rows, cols int) Vector {
	var v, h float64
	for _, o := range axisNeighbours {
		r, c := i+o.dr, j+o.dc
		if r >= 0 && r < rows && c >= 0 && c < cols {
			v += field.V.At(r, c) * axisWeight
			h += field.H.At(r, c) * axisWeight
		}
	}
	for _, o := range diagonalNeighbours {
		r, c := i+o.dr, j+o.dc
		if r >= 0 && r < rows && c >= 0 && c < cols {
			v += field.V.At(r, c) * diagonalWeight
			h += field.H.At(r, c) * diagonalWeight
		}
	}
	return Vector{V: v, H: h}
}
