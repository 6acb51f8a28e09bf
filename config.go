package hsflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/esimov/hsflow/utils"
)

// maxWorkers sets the maximum number of concurrently running sweep workers.
const maxWorkers = 20

// Config holds the estimation parameters.
type Config struct {
	// BlockSize is the edge length in pixels of the square blocks the frames are
	// decomposed into.
	BlockSize int `json:"block_size"`
	// Alpha weights the smoothness term. It must be strictly positive.
	Alpha float64 `json:"alpha"`
	// Sigma is the standard deviation of the Gaussian applied to the intensity
	// grids before differentiation. Zero disables the blur.
	Sigma float64 `json:"sigma"`
	// MaxIterations is the exact number of Jacobi sweeps.
	MaxIterations int `json:"max_iterations"`
	// Workers bounds the goroutines used inside one sweep. Zero selects
	// runtime.NumCPU(); any value is capped at maxWorkers.
	Workers int `json:"workers,omitempty"`
	// CheckFinite enables the NaN/Inf scan of the derivative and motion fields.
	CheckFinite bool `json:"check_finite,omitempty"`
}

// DefaultConfig returns the configuration used when nothing else is specified.
func DefaultConfig() Config {
	return Config{
		BlockSize:     8,
		Alpha:         1,
		Sigma:         0,
		MaxIterations: 100,
	}
}

// Validate reports an ErrInvalidConfiguration for every out of range parameter.
func (c Config) Validate() error {
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidConfiguration, c.BlockSize)
	}
	if !(c.Alpha > 0) {
		return fmt.Errorf("%w: alpha must be positive, got %v", ErrInvalidConfiguration, c.Alpha)
	}
	if !(c.Sigma >= 0) {
		return fmt.Errorf("%w: sigma must not be negative, got %v", ErrInvalidConfiguration, c.Sigma)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: iteration count must be positive, got %d", ErrInvalidConfiguration, c.MaxIterations)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidConfiguration, c.Workers)
	}
	return nil
}

// workers returns the effective number of sweep workers.
func (c Config) workers() int {
	n := c.Workers
	if n == 0 {
		n = runtime.NumCPU()
	}
	return utils.Clamp(n, 1, maxWorkers)
}

// LoadConfig reads a JSON configuration file. Fields missing from the file keep
// their DefaultConfig values. The result is validated before it is returned.
func LoadConfig(path string) (Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 << 20
	if fileInfo.Size() > maxFileSize {
		return Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
