package hsflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// frameFromRows builds a frame from a row-major 2-D slice of luma samples.
func frameFromRows(t testing.TB, rows [][]float64) *Frame {
	t.Helper()
	height, width := len(rows), len(rows[0])
	luma := make([]float64, 0, width*height)
	for _, row := range rows {
		require.Len(t, row, width)
		luma = append(luma, row...)
	}
	f, err := NewFrame(width, height, luma)
	require.NoError(t, err)
	return f
}

// gridFromRows builds an intensity grid from a 2-D slice.
func gridFromRows(rows [][]float64) *IntensityGrid {
	g := newIntensityGrid(len(rows), len(rows[0]))
	for i, row := range rows {
		for j, v := range row {
			g.Set(i, j, v)
		}
	}
	return g
}

// uniformField returns a field with every vector set to v.
func uniformField(rows, cols int, v Vector) *MotionField {
	f := NewMotionField(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			f.Set(i, j, v)
		}
	}
	return f
}
