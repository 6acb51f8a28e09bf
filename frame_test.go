package hsflow

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_New(t *testing.T) {
	luma := []float64{1, 2, 3, 4, 5, 6}
	f, err := NewFrame(3, 2, luma)
	require.NoError(t, err)

	assert.Equal(t, 3, f.Width())
	assert.Equal(t, 2, f.Height())
	assert.Equal(t, 6.0, f.At(2, 1))
	assert.Equal(t, 2.0, f.At(1, 0))

	// The frame owns a copy of the samples.
	luma[0] = 100
	assert.Equal(t, 1.0, f.At(0, 0))
}

func TestFrame_NewErrors(t *testing.T) {
	_, err := NewFrame(0, 2, nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewFrame(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestFrame_FromGray(t *testing.T) {
	img := image.NewGray(image.Rect(2, 3, 5, 5))
	for y := 3; y < 5; y++ {
		for x := 2; x < 5; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(10*y + x)})
		}
	}
	f, err := FrameFromImage(img)
	require.NoError(t, err)

	assert.Equal(t, 3, f.Width())
	assert.Equal(t, 2, f.Height())
	assert.Equal(t, 32.0, f.At(0, 0))
	assert.Equal(t, 44.0, f.At(2, 1))
}

func TestFrame_FromYCbCr(t *testing.T) {
	ratios := []image.YCbCrSubsampleRatio{
		image.YCbCrSubsampleRatio444,
		image.YCbCrSubsampleRatio422,
		image.YCbCrSubsampleRatio420,
	}
	for _, sr := range ratios {
		t.Run(sr.String(), func(t *testing.T) {
			img := image.NewYCbCr(image.Rect(0, 0, 4, 4), sr)
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					img.Y[img.YOffset(x, y)] = uint8(16*y + x)
				}
			}
			for i := range img.Cb {
				img.Cb[i], img.Cr[i] = 200, 40
			}
			f, err := FrameFromImage(img)
			require.NoError(t, err)

			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					assert.Equal(t, float64(16*y+x), f.At(x, y))
				}
			}
		})
	}
}

func TestFrame_FromNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	img.Set(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(0, 1, color.NRGBA{A: 255})
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})

	f, err := FrameFromImage(img)
	require.NoError(t, err)

	assert.Equal(t, 100.0, f.At(0, 0))
	assert.Equal(t, 255.0, f.At(1, 0))
	assert.Equal(t, 0.0, f.At(0, 1))
	// Red only contributes its luma weight.
	assert.InDelta(t, 0.299*255, f.At(1, 1), 1)
}

func TestFrame_FromEmptyImage(t *testing.T) {
	_, err := FrameFromImage(image.NewGray(image.Rect(0, 0, 0, 4)))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
