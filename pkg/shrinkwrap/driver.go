package shrinkwrap

import (
	"shrinkwrap/internal/models"
	"shrinkwrap/pkg/observer"
	"shrinkwrap/pkg/reduce"
)

// Status is the driver's return code, matching the original C/CUDA
// interface's integer status rather than a Go error.
type Status int

const (
	// StatusOK indicates a successful reconstruction. Exhausting the
	// cycle budget without reaching the target error is not itself an
	// error; callers inspect Result.Converged to distinguish the two.
	StatusOK Status = 0
	// StatusInvalidArgument indicates a null buffer or non-positive
	// dimension.
	StatusInvalidArgument Status = 1
)

// Reconstruct is the engine's single public entry point: given a
// row-major W*H intensity image and a parameter set, it returns the
// recovered real object image plus the cycle count and final error needed
// to judge convergence. obs may be nil, in which case a NoopObserver is
// used. intensity must be non-negative (a measured diffraction intensity
// can't be otherwise) and carry some signal; an all-zero or negative
// buffer is rejected as StatusInvalidArgument.
func Reconstruct(intensity []float32, width, height int, params Params, obs observer.Observer) (models.Result, Status) {
	if intensity == nil || width <= 0 || height <= 0 || len(intensity) != width*height {
		return models.Result{}, StatusInvalidArgument
	}
	if reduce.MinOf(intensity) < 0 || reduce.MaxOf(intensity) <= 0 {
		return models.Result{}, StatusInvalidArgument
	}

	intensity64 := make([]float64, len(intensity))
	for i, v := range intensity {
		intensity64[i] = float64(v)
	}

	c, err := newController(width, height, intensity64, params.Defaulted(), obs)
	if err != nil {
		return models.Result{}, StatusInvalidArgument
	}

	out := c.run()

	image32 := make([]float32, len(out.image))
	for i, v := range out.image {
		image32[i] = float32(v)
	}

	return models.Result{
		Image:      image32,
		CyclesRun:  out.cyclesRun,
		FinalError: out.finalError,
		Converged:  out.converged,
	}, StatusOK
}
