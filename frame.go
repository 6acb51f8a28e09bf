package hsflow

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Frame is a full resolution luma plane. Samples are stored row by row.
// A Frame is never modified after it has been created.
type Frame struct {
	width  int
	height int
	luma   []float64
}

// NewFrame creates a frame of the given size from a row-major luma plane.
// The samples are copied, so the caller may reuse the slice.
func NewFrame(width, height int, luma []float64) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: frame size must be positive, got %dx%d", ErrInvalidConfiguration, width, height)
	}
	if len(luma) != width*height {
		return nil, fmt.Errorf("%w: expected %d luma samples, got %d", ErrInvalidConfiguration, width*height, len(luma))
	}
	pix := make([]float64, len(luma))
	copy(pix, luma)

	return &Frame{width: width, height: height, luma: pix}, nil
}

// Width returns the number of luma samples per row.
func (f *Frame) Width() int { return f.width }

// Height returns the number of rows.
func (f *Frame) Height() int { return f.height }

// At returns the luma sample at column x and row y.
func (f *Frame) At(x, y int) float64 {
	return f.luma[y*f.width+x]
}

// row returns the luma samples of row y.
func (f *Frame) row(y int) []float64 {
	return f.luma[y*f.width : (y+1)*f.width]
}

// validate rejects frames that were not built by NewFrame or FrameFromImage.
func (f *Frame) validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidConfiguration)
	}
	if f.width <= 0 || f.height <= 0 || len(f.luma) != f.width*f.height {
		return fmt.Errorf("%w: empty or uninitialised %dx%d frame", ErrInvalidConfiguration, f.width, f.height)
	}
	return nil
}

// FrameFromImage extracts the luma plane of an in-memory image.
// YCbCr images contribute their Y plane unchanged, gray images their gray
// levels, everything else is converted to grayscale first.
func FrameFromImage(img image.Image) (*Frame, error) {
	bounds := img.Bounds()
	dx, dy := bounds.Dx(), bounds.Dy()
	if dx <= 0 || dy <= 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidConfiguration)
	}
	luma := make([]float64, dx*dy)

	switch src := img.(type) {
	case *image.YCbCr:
		for y := 0; y < dy; y++ {
			for x := 0; x < dx; x++ {
				luma[y*dx+x] = float64(src.Y[src.YOffset(bounds.Min.X+x, bounds.Min.Y+y)])
			}
		}
	case *image.Gray:
		for y := 0; y < dy; y++ {
			si := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < dx; x++ {
				luma[y*dx+x] = float64(src.Pix[si+x])
			}
		}
	default:
		// imaging.Grayscale returns an NRGBA image with min-point at (0, 0)
		// where R, G and B all hold the luma value.
		gray := imaging.Grayscale(img)
		for y := 0; y < dy; y++ {
			si := gray.PixOffset(0, y)
			for x := 0; x < dx; x++ {
				luma[y*dx+x] = float64(gray.Pix[si+x*4])
			}
		}
	}

	return &Frame{width: dx, height: dy, luma: luma}, nil
}
