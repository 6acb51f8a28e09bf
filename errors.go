package hsflow

import "errors"

var (
	// ErrInvalidConfiguration is returned before any computation starts when the
	// block size, alpha, sigma or iteration count is out of range, or when the
	// two frames do not share the same resolution.
	ErrInvalidConfiguration = errors.New("hsflow: invalid configuration")

	// ErrNumericalDegeneracy is returned only when Config.CheckFinite is set and a
	// NaN or Inf value shows up in the derivative or motion fields.
	ErrNumericalDegeneracy = errors.New("hsflow: non-finite value in field")
)
