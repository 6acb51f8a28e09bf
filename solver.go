package hsflow

import (
	"context"
	"fmt"
	"time"

	"github.com/esimov/hsflow/utils"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Option customises a Solver.
type Option func(*Solver)

// WithObserver registers fn to be called after every completed sweep with a
// copy of the field in block units.
func WithObserver(fn func(iteration int, field *MotionField)) Option {
	return func(s *Solver) {
		s.observer = fn
	}
}

// Solver refines a block motion field with the Horn & Schunck fixed point
// iteration. The derivatives and the per-block denominator are computed once
// by NewSolver; every estimation allocates its own fields, so a Solver can be
// shared between goroutines.
type Solver struct {
	cfg      Config
	model    *BlockFrameModel
	deriv    *DerivativeField
	denom    *mat.Dense
	observer func(int, *MotionField)
}

// NewSolver validates the configuration, blurs the intensity grids of the
// model by cfg.Sigma and computes the derivative field.
func NewSolver(model *BlockFrameModel, cfg Config, opts ...Option) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if model == nil {
		return nil, fmt.Errorf("%w: nil block model", ErrInvalidConfiguration)
	}
	if model.BlockSize != cfg.BlockSize {
		return nil, fmt.Errorf("%w: model block size %d does not match configured %d",
			ErrInvalidConfiguration, model.BlockSize, cfg.BlockSize)
	}

	cur := Smooth(model.Cur, cfg.Sigma)
	ref := Smooth(model.Ref, cfg.Sigma)
	deriv, err := ComputeDerivatives(cur, ref)
	if err != nil {
		return nil, err
	}
	if cfg.CheckFinite && !deriv.IsFinite() {
		return nil, fmt.Errorf("%w: derivative field", ErrNumericalDegeneracy)
	}

	// denom = alpha^2 + Ix^2 + Iy^2
	var iy2 mat.Dense
	iy2.MulElem(deriv.Iy, deriv.Iy)
	denom := mat.NewDense(model.Rows, model.Cols, nil)
	denom.MulElem(deriv.Ix, deriv.Ix)
	denom.Add(denom, &iy2)
	alpha2 := cfg.Alpha * cfg.Alpha
	denom.Apply(func(_, _ int, v float64) float64 {
		return alpha2 + v
	}, denom)

	s := &Solver{
		cfg:   cfg,
		model: model,
		deriv: deriv,
		denom: denom,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the configuration the solver was built with.
func (s *Solver) Config() Config { return s.cfg }

// Derivatives returns the derivative field. It must not be modified.
func (s *Solver) Derivatives() *DerivativeField { return s.deriv }

// Step performs a single sweep on field and returns the updated field.
func (s *Solver) Step(field *MotionField) (*MotionField, error) {
	return s.Iterate(context.Background(), field, 1)
}

// Iterate runs n Jacobi sweeps starting from seed, which is not modified.
// A nil seed starts from the zero field. The result is in block units.
//
// The context is checked before every sweep. When it is done, the field of
// the last completed sweep is returned together with the context error.
func (s *Solver) Iterate(ctx context.Context, seed *MotionField, n int) (*MotionField, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative sweep count %d", ErrInvalidConfiguration, n)
	}
	if seed == nil {
		seed = s.model.MotionField()
	}
	if rows, cols := seed.Dims(); rows != s.model.Rows || cols != s.model.Cols {
		return nil, fmt.Errorf("%w: field is %dx%d, grid is %dx%d",
			ErrInvalidConfiguration, rows, cols, s.model.Rows, s.model.Cols)
	}

	prev := seed.Clone()
	next := s.model.MotionField()
	for k := 1; k <= n; k++ {
		if err := ctx.Err(); err != nil {
			return prev, err
		}
		if err := s.sweep(prev, next); err != nil {
			return prev, err
		}
		prev, next = next, prev

		if s.observer != nil {
			s.observer(k, prev.Clone())
		}
	}
	return prev, nil
}

// Estimate runs cfg.MaxIterations sweeps from the zero field and returns the
// motion field in pixel units.
func (s *Solver) Estimate(ctx context.Context) (*MotionField, error) {
	start := time.Now()

	field, err := s.Iterate(ctx, nil, s.cfg.MaxIterations)
	if err != nil {
		return nil, err
	}
	out := field.Scale(float64(s.cfg.BlockSize))
	if s.cfg.CheckFinite && !out.IsFinite() {
		return nil, fmt.Errorf("%w: motion field", ErrNumericalDegeneracy)
	}

	Logf("hsflow: %d iterations over %dx%d blocks in %s",
		s.cfg.MaxIterations, s.model.Rows, s.model.Cols, utils.FormatTime(time.Since(start)))
	return out, nil
}

// sweep writes the update of every block of prev into next. The block rows
// are split into bands processed concurrently; each block only reads prev.
func (s *Solver) sweep(prev, next *MotionField) error {
	rows := s.model.Rows
	workers := utils.Min(s.cfg.workers(), rows)
	band := utils.CeilDiv(rows, workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for r0 := 0; r0 < rows; r0 += band {
		r0 := r0
		r1 := utils.Min(r0+band, rows)
		g.Go(func() error {
			s.updateRows(prev, next, r0, r1)
			return nil
		})
	}
	return g.Wait()
}

// updateRows applies
//
//	v' = ~v - Iy (Ix ~u + Iy ~v + It) / (alpha^2 + Ix^2 + Iy^2)
//	u' = ~u - Ix (Ix ~u + Iy ~v + It) / (alpha^2 + Ix^2 + Iy^2)
//
// to the block rows [r0, r1), where ~u and ~v are the neighbour averages of
// the horizontal and vertical components.
func (s *Solver) updateRows(prev, next *MotionField, r0, r1 int) {
	rows, cols := s.model.Rows, s.model.Cols
	for i := r0; i < r1; i++ {
		for j := 0; j < cols; j++ {
			avg := neighbourAverage(prev, i, j, rows, cols)
			ix, iy, it := s.deriv.Ix.At(i, j), s.deriv.Iy.At(i, j), s.deriv.It.At(i, j)
			denom := s.denom.At(i, j)

			resid := ix*avg.H + iy*avg.V + it
			next.V.Set(i, j, avg.V-iy*resid/denom)
			next.H.Set(i, j, avg.H-ix*resid/denom)
		}
	}
}

// Estimate computes the motion field between the current and the reference
// frame with the given configuration.
func Estimate(ctx context.Context, cur, ref *Frame, cfg Config, opts ...Option) (*MotionField, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := NewBlockFrameModel(cur, ref, cfg.BlockSize)
	if err != nil {
		return nil, err
	}
	s, err := NewSolver(model, cfg, opts...)
	if err != nil {
		return nil, err
	}
	return s.Estimate(ctx)
}
