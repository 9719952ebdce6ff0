package shrinkwrap

import "shrinkwrap/internal/numerics"

// Params holds the Shrink-Wrap reconstruction parameters. A non-positive
// field takes the canonical default at Defaulted, matching the original's
// validation of its parameter struct.
type Params struct {
	// NCycles bounds the outer mask-update loop.
	NCycles int

	// TargetError is the masked-norm convergence threshold.
	TargetError float64

	// Beta is the HIO feedback coefficient.
	Beta float64

	// RIntensityCutOffAutoCorrel thresholds the very first mask, built from
	// the measured intensity's autocorrelation.
	RIntensityCutOffAutoCorrel float64

	// RIntensityCutOff thresholds every subsequent mask.
	RIntensityCutOff float64

	// Sigma0 is the initial Gaussian blur scale.
	Sigma0 float64

	// SigmaChange is the multiplicative per-cycle blur decay.
	SigmaChange float64

	// NHioCycles bounds the inner HIO loop per outer cycle.
	NHioCycles int
}

// Defaulted returns a copy of p with every non-positive field replaced by
// its canonical default.
func (p Params) Defaulted() Params {
	if p.NCycles <= 0 {
		p.NCycles = numerics.DefaultNCycles
	}
	if p.TargetError <= 0 {
		p.TargetError = numerics.DefaultTargetError
	}
	if p.Beta <= 0 {
		p.Beta = numerics.DefaultHioBeta
	}
	if p.RIntensityCutOffAutoCorrel <= 0 {
		p.RIntensityCutOffAutoCorrel = numerics.DefaultIntensityCutOffAutoCorrel
	}
	if p.RIntensityCutOff <= 0 {
		p.RIntensityCutOff = numerics.DefaultIntensityCutOff
	}
	if p.Sigma0 <= 0 {
		p.Sigma0 = numerics.DefaultSigma0
	}
	if p.SigmaChange <= 0 {
		p.SigmaChange = numerics.DefaultSigmaChange
	}
	if p.NHioCycles <= 0 {
		p.NHioCycles = numerics.DefaultNHioCycles
	}
	return p
}

// DefaultParams returns the canonical Shrink-Wrap parameter set, the
// all-zero Params run through Defaulted.
func DefaultParams() Params {
	return Params{}.Defaulted()
}
