package hsflow

import (
	"fmt"

	"github.com/esimov/hsflow/utils"
	"gonum.org/v1/gonum/mat"
)

// IntensityGrid holds one intensity value per block, indexed by block row and
// block column.
type IntensityGrid struct {
	*mat.Dense
}

// newIntensityGrid allocates a zeroed grid.
func newIntensityGrid(rows, cols int) *IntensityGrid {
	return &IntensityGrid{mat.NewDense(rows, cols, nil)}
}

// Clone returns a deep copy of the grid.
func (g *IntensityGrid) Clone() *IntensityGrid {
	return &IntensityGrid{mat.DenseCopyOf(g.Dense)}
}

// BuildIntensityGrid averages the luma samples of every blockSize x blockSize
// block of the frame. Blocks on the last row and column that do not fully fit
// inside the frame are averaged over the pixels they actually cover.
func BuildIntensityGrid(frame *Frame, blockSize int) (*IntensityGrid, error) {
	if err := frame.validate(); err != nil {
		return nil, err
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidConfiguration, blockSize)
	}
	rows := utils.CeilDiv(frame.height, blockSize)
	cols := utils.CeilDiv(frame.width, blockSize)
	grid := newIntensityGrid(rows, cols)

	for i := 0; i < rows; i++ {
		y0 := i * blockSize
		y1 := utils.Min(y0+blockSize, frame.height)
		for j := 0; j < cols; j++ {
			x0 := j * blockSize
			x1 := utils.Min(x0+blockSize, frame.width)

			var sum float64
			for y := y0; y < y1; y++ {
				for _, v := range frame.row(y)[x0:x1] {
					sum += v
				}
			}
			grid.Set(i, j, sum/float64((y1-y0)*(x1-x0)))
		}
	}
	return grid, nil
}

// BlockFrameModel is the block resolution view of a current and a reference
// frame. It is shared by every block based motion estimator.
type BlockFrameModel struct {
	BlockSize int
	Rows      int
	Cols      int
	Cur       *IntensityGrid
	Ref       *IntensityGrid
}

// NewBlockFrameModel builds the intensity grids of both frames.
// The frames must have identical resolution.
func NewBlockFrameModel(cur, ref *Frame, blockSize int) (*BlockFrameModel, error) {
	if cur == nil || ref == nil {
		return nil, fmt.Errorf("%w: both frames are required", ErrInvalidConfiguration)
	}
	if err := cur.validate(); err != nil {
		return nil, err
	}
	if err := ref.validate(); err != nil {
		return nil, err
	}
	if cur.width != ref.width || cur.height != ref.height {
		return nil, fmt.Errorf("%w: frame sizes differ: %dx%d vs %dx%d",
			ErrInvalidConfiguration, cur.width, cur.height, ref.width, ref.height)
	}
	curI, err := BuildIntensityGrid(cur, blockSize)
	if err != nil {
		return nil, err
	}
	refI, err := BuildIntensityGrid(ref, blockSize)
	if err != nil {
		return nil, err
	}
	rows, cols := curI.Dims()

	return &BlockFrameModel{
		BlockSize: blockSize,
		Rows:      rows,
		Cols:      cols,
		Cur:       curI,
		Ref:       refI,
	}, nil
}

// MotionField returns a zero motion field with the shape of the block grid.
func (m *BlockFrameModel) MotionField() *MotionField {
	return NewMotionField(m.Rows, m.Cols)
}
