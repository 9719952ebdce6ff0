// Package numerics centralizes the small set of empirical constants shared
// between the Gaussian kernel builder and the Shrink-Wrap controller, so
// that a single source of truth backs both the implementation and its
// tests.
package numerics

// KernelHalfWidthFactor approximates the inverse complementary error
// function at single-precision tolerance. It converts a Gaussian standard
// deviation into the half-width of a truncated discrete kernel that still
// captures the mass needed for single-precision accuracy.
const KernelHalfWidthFactor = 2.884402748387961466

// Canonical defaults for the Shrink-Wrap driver parameters (§4.6/§6).
// Any parameter supplied at or below its sentinel takes the value here.
const (
	DefaultNCycles                   = 20
	DefaultTargetError               = 1e-5
	DefaultHioBeta                   = 0.9
	DefaultIntensityCutOffAutoCorrel = 0.04
	DefaultIntensityCutOff           = 0.20
	DefaultSigma0                    = 3.0
	DefaultSigmaChange               = 0.01
	DefaultNHioCycles                = 20

	// MinSigma is the floor below which the blurring scale may not shrink.
	MinSigma = 1.5
)
