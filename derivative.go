package hsflow

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DerivativeField holds the horizontal, vertical and temporal intensity
// gradients of a block grid pair.
type DerivativeField struct {
	Ix *mat.Dense
	Iy *mat.Dense
	It *mat.Dense
}

// IsFinite reports whether every gradient is a finite number.
func (d *DerivativeField) IsFinite() bool {
	return allFinite(d.Ix) && allFinite(d.Iy) && allFinite(d.It)
}

// ComputeDerivatives estimates the gradients on the 2x2 block neighbourhood
// {i, i+1} x {j, j+1} of every block, averaging the forward differences of
// both grids:
//
//	Ix: (i  ,j) <--- (i  ,j+1)      Iy: (i  ,j)     (i  ,j+1)
//	    (i+1,j) <--- (i+1,j+1)             ^             ^
//	                                    (i+1,j)     (i+1,j+1)
//
// It is the mean of ref - cur over the same four blocks. The stencil is not
// defined on the last block row and column, which are left at zero.
func ComputeDerivatives(cur, ref *IntensityGrid) (*DerivativeField, error) {
	rows, cols := cur.Dims()
	if rr, rc := ref.Dims(); rr != rows || rc != cols {
		return nil, fmt.Errorf("%w: grid shapes differ: %dx%d vs %dx%d",
			ErrInvalidConfiguration, rows, cols, rr, rc)
	}
	d := &DerivativeField{
		Ix: mat.NewDense(rows, cols, nil),
		Iy: mat.NewDense(rows, cols, nil),
		It: mat.NewDense(rows, cols, nil),
	}
	inside := func(r, c int) bool {
		return r >= 0 && r < rows && c >= 0 && c < cols
	}

	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			var sum float64
			var count int
			for _, r := range [2]int{i, i + 1} {
				c := j + 1
				if inside(r, c) && c > 0 {
					sum += cur.At(r, c) - cur.At(r, c-1)
					sum += ref.At(r, c) - ref.At(r, c-1)
					count += 2
				}
			}
			if count > 0 {
				d.Ix.Set(i, j, sum/float64(count))
			}

			sum, count = 0, 0
			for _, c := range [2]int{j, j + 1} {
				r := i + 1
				if inside(r, c) && r > 0 {
					sum += cur.At(r, c) - cur.At(r-1, c)
					sum += ref.At(r, c) - ref.At(r-1, c)
					count += 2
				}
			}
			if count > 0 {
				d.Iy.Set(i, j, sum/float64(count))
			}

			sum, count = 0, 0
			for r := i; r < i+2; r++ {
				for c := j; c < j+2; c++ {
					if inside(r, c) {
						sum += ref.At(r, c) - cur.At(r, c)
						count++
					}
				}
			}
			if count > 0 {
				d.It.Set(i, j, sum/float64(count))
			}
		}
	}
	return d, nil
}
