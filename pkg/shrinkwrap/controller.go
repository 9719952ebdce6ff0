// Package shrinkwrap implements the Shrink-Wrap phase retrieval controller:
// the outer adaptive support-mask loop wrapped around the inner Fienup
// Hybrid-Input-Output loop, driven by a 2D FFT plan, a separable Gaussian
// blur, and a handful of vector reductions.
package shrinkwrap

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"shrinkwrap/internal/buffer"
	"shrinkwrap/internal/numerics"
	"shrinkwrap/pkg/complexops"
	"shrinkwrap/pkg/fft"
	"shrinkwrap/pkg/gaussian"
	"shrinkwrap/pkg/observer"
	"shrinkwrap/pkg/reduce"
)

// controller owns every working buffer for one reconstruction and drives
// the outer mask-update loop and the inner HIO loop. It is not exported:
// callers use the Reconstruct driver entry point in driver.go.
type controller struct {
	width, height int
	params        Params
	obs           observer.Observer

	plan *fft.Plan2D

	amplitude *mat.Dense // |F| = sqrt(intensity), fixed for the whole run
	mask      *mat.Dense // M, {0,1}, mutated once per outer cycle

	// estimate holds either the Fourier-space estimate G (tagged
	// RoleFrequency) or the object-space estimate g' (tagged RoleObject)
	// depending on where in the HIO step we are; it is reused in place
	// across every FFT call.
	estimate *buffer.Field

	// prevObject holds g, the previous HIO iterate. It is always
	// object-space and is only ever the source of a forward transform,
	// which does not retag its source, so it stays tagged RoleObject for
	// its entire lifetime.
	prevObject *buffer.Field

	// estimateReal is scratch used only to hand the observer a *mat.Dense
	// view of the current object-space estimate.
	estimateReal *mat.Dense

	// sigma is the current Gaussian blur scale, shrinking each outer cycle.
	sigma float64
}

// outcome is the controller's internal result shape; the driver converts
// it to models.Result at the float32 boundary.
type outcome struct {
	image      []float64
	cyclesRun  int
	finalError float64
	converged  bool
}

// newController allocates every working buffer and computes the initial
// support mask from the measured intensity's autocorrelation.
func newController(width, height int, intensity []float64, params Params, obs observer.Observer) (*controller, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("shrinkwrap: invalid shape %dx%d", width, height)
	}
	n := width * height
	if len(intensity) != n {
		return nil, fmt.Errorf("shrinkwrap: intensity has %d elements, want %d", len(intensity), n)
	}
	if obs == nil {
		obs = observer.NoopObserver{}
	}

	plan, err := fft.NewPlan2D(width, height)
	if err != nil {
		return nil, err
	}

	amplitude := mat.NewDense(height, width, nil)
	ampData := amplitude.RawMatrix().Data
	for i, v := range intensity {
		if v < 0 {
			v = 0
		}
		ampData[i] = math.Sqrt(v)
	}

	// Step 1: copy intensity into the real part of G, then inverse-transform
	// in place. Up to scaling, the result is the autocorrelation of the
	// object by the Wiener-Khinchin relation.
	estimate := buffer.NewField(width, height, buffer.RoleObject)
	complexops.CopyToRealPart(estimate.Data, intensity)
	estimate.SetRole(buffer.RoleFrequency)

	// g_prev is seeded from the pre-FFT complex image before the in-place
	// inverse transform overwrites it.
	prevObject := buffer.NewField(width, height, buffer.RoleObject)
	prevObject.CopyFrom(estimate.Data)

	plan.Inverse(estimate, estimate) // estimate now holds g', tagged RoleObject.

	mask := mat.NewDense(height, width, nil)
	maskData := mask.RawMatrix().Data
	complexops.ComplexNorm(maskData, estimate.Data)

	sigma := params.Sigma0
	gaussian.Blur(maskData, width, height, sigma)

	absMax := reduce.Max(maskData)
	complexops.Cutoff(maskData, params.RIntensityCutOffAutoCorrel*absMax, 1, 0)

	c := &controller{
		width:        width,
		height:       height,
		params:       params,
		obs:          obs,
		plan:         plan,
		amplitude:    amplitude,
		mask:         mask,
		estimate:     estimate,
		prevObject:   prevObject,
		estimateReal: mat.NewDense(height, width, nil),
		sigma:        sigma,
	}
	return c, nil
}

func (c *controller) run() outcome {
	ampData := c.amplitude.RawMatrix().Data
	maskData := c.mask.RawMatrix().Data

	var finalError float64
	converged := false
	cyclesRun := 0

	for cycle := 0; cycle < c.params.NCycles; cycle++ {
		c.obs.OnCycleBegin(cycle, c.sigma)

		// Mask update: re-derive the support from the current estimate,
		// blur it, and shrink the blur scale for the next cycle.
		complexops.ComplexNorm(maskData, c.estimate.Data)
		gaussian.Blur(maskData, c.width, c.height, c.sigma)
		absMax := reduce.Max(maskData)
		complexops.Cutoff(maskData, c.params.RIntensityCutOff*absMax, 1, 0)
		c.sigma = math.Max(numerics.MinSigma, (1-c.params.SigmaChange)*c.sigma)

		for hio := 0; hio < c.params.NHioCycles; hio++ {
			complexops.HIOConstraint(c.prevObject.Data, c.estimate.Data, maskData, c.params.Beta)

			c.plan.Forward(c.estimate, c.prevObject) // estimate now holds G.
			complexops.ModulusProjection(c.estimate.Data, c.estimate.Data, ampData)
			c.plan.Inverse(c.estimate, c.estimate) // estimate now holds g'.

			stepErr, _ := reduce.MaskedComplexNorm(c.estimate.Data, maskData, false)
			c.obs.OnHioStep(cycle, hio, stepErr)
		}

		errVal, _ := reduce.MaskedComplexNorm(c.estimate.Data, maskData, false)
		finalError = errVal
		cyclesRun = cycle + 1

		complexops.CopyFromRealPart(c.estimateReal.RawMatrix().Data, c.estimate.Data)
		c.obs.OnCycleEnd(cycle, errVal, c.mask, c.estimateReal)

		if errVal < c.params.TargetError {
			converged = true
			break
		}
	}

	image := make([]float64, c.width*c.height)
	complexops.CopyFromRealPart(image, c.estimate.Data)

	return outcome{
		image:      image,
		cyclesRun:  cyclesRun,
		finalError: finalError,
		converged:  converged,
	}
}
