package hsflow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMotion_VectorsAreRowMajor(t *testing.T) {
	f := NewMotionField(2, 3)
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			f.Set(r, c, Vector{V: float64(r), H: float64(c)})
		}
	}
	want := []Vector{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}
	assert.Equal(t, want, f.Vectors())
}

func TestMotion_ScaleReturnsNewField(t *testing.T) {
	f := uniformField(2, 2, Vector{V: -1.5, H: 0.25})
	scaled := f.Scale(8)

	for _, v := range scaled.Vectors() {
		assert.Equal(t, Vector{V: -12, H: 2}, v)
	}
	assert.Equal(t, Vector{V: -1.5, H: 0.25}, f.At(1, 1))
}

func TestMotion_CloneIsDeep(t *testing.T) {
	f := uniformField(2, 2, Vector{V: 1, H: 1})
	c := f.Clone()
	c.Set(0, 0, Vector{V: 9, H: 9})

	assert.Equal(t, Vector{V: 1, H: 1}, f.At(0, 0))
}

func TestMotion_MagnitudeAndStats(t *testing.T) {
	f := NewMotionField(1, 2)
	f.Set(0, 0, Vector{V: 3, H: 4})

	mag := f.Magnitude()
	assert.Equal(t, 5.0, mag.At(0, 0))
	assert.Equal(t, 0.0, mag.At(0, 1))

	stats := f.Stats()
	assert.InDelta(t, 2.5, stats.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(12.5), stats.StdDev, 1e-12)
	assert.Equal(t, 5.0, stats.Max)

	single := uniformField(1, 1, Vector{V: 6, H: 8})
	assert.Equal(t, FieldStats{Mean: 10, StdDev: 0, Max: 10}, single.Stats())
}

func TestMotion_IsFinite(t *testing.T) {
	f := NewMotionField(2, 2)
	assert.True(t, f.IsFinite())

	f.Set(1, 0, Vector{V: math.NaN()})
	assert.False(t, f.IsFinite())

	f.Set(1, 0, Vector{H: math.Inf(-1)})
	assert.False(t, f.IsFinite())
}
