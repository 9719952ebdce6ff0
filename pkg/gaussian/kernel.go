// Package gaussian builds normalized discrete Gaussian kernels and applies
// them as a separable blur over 2D real-valued grids, grounded on the
// kernel construction and edge-extension boundary handling described for
// the Shrink-Wrap support-mask blur.
package gaussian

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"shrinkwrap/internal/numerics"
)

// KernelLength returns the length 2n+1 of the kernel BuildKernel would
// produce for the given sigma, without allocating or writing anything.
// Callers size a reusable output buffer with this before calling
// BuildKernel in write mode.
func KernelLength(sigma float64) int {
	if sigma <= 0 {
		return 1
	}
	n := int(math.Ceil(numerics.KernelHalfWidthFactor*sigma - 0.5))
	if n < 0 {
		n = 0
	}
	return 2*n + 1
}

// BuildKernel fills dst with the normalized 1D Gaussian kernel for the
// given standard deviation and returns the kernel length. If dst is
// shorter than the required length, dst is left untouched and the
// required length is returned anyway; this is the builder's query mode,
// letting a caller size a buffer before committing to write into it.
func BuildKernel(dst []float64, sigma float64) int {
	want := KernelLength(sigma)
	if len(dst) < want {
		return want
	}

	if sigma <= 0 {
		dst[0] = 1.0
		return 1
	}

	n := (want - 1) / 2
	norm := 1.0 / (math.Sqrt(2*math.Pi) * sigma)
	for i := -n; i <= n; i++ {
		x := float64(i)
		dst[i+n] = norm * math.Exp(-(x*x)/(2*sigma*sigma))
	}

	sum := floats.Sum(dst[:want])
	floats.Scale(1/sum, dst[:want])

	return want
}

// Kernel allocates and returns a normalized Gaussian kernel of the length
// KernelLength(sigma) would report, a convenience wrapper over BuildKernel
// for callers that do not need to reuse a buffer across calls.
func Kernel(sigma float64) []float64 {
	dst := make([]float64, KernelLength(sigma))
	BuildKernel(dst, sigma)
	return dst
}
