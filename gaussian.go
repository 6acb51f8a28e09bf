package hsflow

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// truncate is the number of standard deviations covered by the kernel.
const truncate = 4.0

// gaussianKernel returns a normalised 1-D Gaussian kernel of length 2*radius+1.
func gaussianKernel(sigma float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	for i := -radius; i <= radius; i++ {
		x := float64(i)
		kernel[i+radius] = math.Exp(-0.5 * x * x / (sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)

	return kernel
}

// reflect maps an out of range index back into [0, n) by mirroring about the
// edge, the edge sample itself being repeated: (d c b a | a b c d | d c b a).
func reflect(i, n int) int {
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}

// Smooth applies a separable Gaussian blur of standard deviation sigma to the
// grid and returns the result as a new grid. A zero sigma returns an unchanged
// copy.
func Smooth(grid *IntensityGrid, sigma float64) *IntensityGrid {
	if sigma <= 0 {
		return grid.Clone()
	}
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2
	rows, cols := grid.Dims()

	// Vertical pass.
	tmp := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum float64
			for k, w := range kernel {
				sum += w * grid.At(reflect(i+k-radius, rows), j)
			}
			tmp.Set(i, j, sum)
		}
	}

	// Horizontal pass.
	out := newIntensityGrid(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum float64
			for k, w := range kernel {
				sum += w * tmp.At(i, reflect(j+k-radius, cols))
			}
			out.Set(i, j, sum)
		}
	}
	return out
}
