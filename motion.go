package hsflow

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Vector is a displacement with a vertical and a horizontal component.
type Vector struct {
	V float64
	H float64
}

// MotionField stores one displacement vector per block as two planes.
type MotionField struct {
	V *mat.Dense // vertical component
	H *mat.Dense // horizontal component
}

// FieldStats summarises the vector magnitudes of a motion field.
type FieldStats struct {
	Mean   float64
	StdDev float64
	Max    float64
}

// NewMotionField returns a zero field of rows x cols blocks.
func NewMotionField(rows, cols int) *MotionField {
	return &MotionField{
		V: mat.NewDense(rows, cols, nil),
		H: mat.NewDense(rows, cols, nil),
	}
}

// Dims returns the number of block rows and columns.
func (f *MotionField) Dims() (rows, cols int) {
	return f.V.Dims()
}

// At returns the vector of block (r, c).
func (f *MotionField) At(r, c int) Vector {
	return Vector{V: f.V.At(r, c), H: f.H.At(r, c)}
}

// Set stores v at block (r, c).
func (f *MotionField) Set(r, c int, v Vector) {
	f.V.Set(r, c, v.V)
	f.H.Set(r, c, v.H)
}

// Clone returns a deep copy of the field.
func (f *MotionField) Clone() *MotionField {
	return &MotionField{
		V: mat.DenseCopyOf(f.V),
		H: mat.DenseCopyOf(f.H),
	}
}

// Scale returns a new field with every component multiplied by k.
func (f *MotionField) Scale(k float64) *MotionField {
	rows, cols := f.Dims()
	out := NewMotionField(rows, cols)
	out.V.Scale(k, f.V)
	out.H.Scale(k, f.H)
	return out
}

// Vectors returns the vectors in row-major block order.
func (f *MotionField) Vectors() []Vector {
	rows, cols := f.Dims()
	vecs := make([]Vector, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			vecs = append(vecs, f.At(r, c))
		}
	}
	return vecs
}

// Magnitude returns the euclidean length of every vector.
func (f *MotionField) Magnitude() *mat.Dense {
	rows, cols := f.Dims()
	mag := mat.NewDense(rows, cols, nil)
	mag.Apply(func(r, c int, _ float64) float64 {
		return math.Hypot(f.V.At(r, c), f.H.At(r, c))
	}, mag)
	return mag
}

// Stats returns the mean, standard deviation and maximum of the magnitudes.
func (f *MotionField) Stats() FieldStats {
	data := f.Magnitude().RawMatrix().Data
	mean, std := stat.MeanStdDev(data, nil)
	if len(data) < 2 {
		std = 0
	}
	return FieldStats{Mean: mean, StdDev: std, Max: floats.Max(data)}
}

// IsFinite reports whether no component is NaN or infinite.
func (f *MotionField) IsFinite() bool {
	return allFinite(f.V) && allFinite(f.H)
}

func allFinite(m *mat.Dense) bool {
	data := m.RawMatrix().Data
	if floats.HasNaN(data) {
		return false
	}
	for _, v := range data {
		if math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
