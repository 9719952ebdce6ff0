// Package reduce implements the vector reductions the Shrink-Wrap
// controller uses to compute thresholds (max) and convergence errors
// (masked complex-norm sum), atop Gonum's exact Max/Min and
// numerically-stable Sum.
package reduce

import (
	"math"
	"sync"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"

	"shrinkwrap/internal/parallel"
)

// Max returns the maximum value in x. Panics on an empty slice, matching
// gonum/floats.
func Max(x []float64) float64 { return floats.Max(x) }

// Min returns the minimum value in x. Panics on an empty slice, matching
// gonum/floats.
func Min(x []float64) float64 { return floats.Min(x) }

// Sum returns the sum of x, whose relative error scales no worse than
// O(sqrt(N)*eps).
func Sum(x []float64) float64 { return floats.Sum(x) }

// extremum is the shared generic reduction behind MaxOf/MinOf, written
// once instead of duplicating the loop for float32 and float64.
func extremum[T constraints.Float](x []T, better func(a, b T) bool) T {
	best := x[0]
	for _, v := range x[1:] {
		if better(v, best) {
			best = v
		}
	}
	return best
}

// MaxOf returns the maximum value in x for any floating precision,
// supporting the float32 driver boundary without a second hand-written
// reduction.
func MaxOf[T constraints.Float](x []T) T {
	return extremum(x, func(a, b T) bool { return a > b })
}

// MinOf returns the minimum value in x for any floating precision.
func MinOf[T constraints.Float](x []T) T {
	return extremum(x, func(a, b T) bool { return a < b })
}

// MaskedComplexNorm computes, over indices where mask[i] equals the
// "masked" value, the sum of complex magnitudes of z and the count of such
// indices. By default mask[i]==1 selects the masked-out (outside-support)
// region, matching the data model's convention; invert selects mask[i]==0
// instead.
func MaskedComplexNorm(z []complex128, mask []float64, invert bool) (totalError float64, nMasked int) {
	maskedValue := 1.0
	if invert {
		maskedValue = 0.0
	}

	n := len(z)
	if n < parallel.Threshold {
		for i := 0; i < n; i++ {
			if mask[i] == maskedValue {
				totalError += cabs(z[i])
				nMasked++
			}
		}
		return totalError, nMasked
	}

	var mu sync.Mutex
	parallel.Range(n, func(lo, hi int) {
		var err float64
		var count int
		for i := lo; i < hi; i++ {
			if mask[i] == maskedValue {
				err += cabs(z[i])
				count++
			}
		}
		mu.Lock()
		totalError += err
		nMasked += count
		mu.Unlock()
	})
	return totalError, nMasked
}

// cabs returns the magnitude of a complex128 without the extra precision
// cost of cmplx.Abs's overflow-protected path, matching the straightforward
// sqrt(re^2+im^2) the original's complex-norm elementwise kernel uses.
func cabs(z complex128) float64 {
	re, im := real(z), imag(z)
	return math.Sqrt(re*re + im*im)
}
