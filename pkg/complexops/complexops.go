// Package complexops implements the elementwise operators shared by every
// stage of the Shrink-Wrap pipeline: magnitude, modulus projection, the
// HIO feedback rule, and the small real/complex copies that move data
// between the controller's buffers.
package complexops

import (
	"math"

	"shrinkwrap/internal/parallel"
)

// ComplexNorm writes the elementwise magnitude of src into dst.
func ComplexNorm(dst []float64, src []complex128) {
	parallel.Range(len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			re, im := real(src[i]), imag(src[i])
			dst[i] = math.Sqrt(re*re + im*im)
		}
	})
}

// CopyToRealPart writes src into the real part of dst, zeroing the
// imaginary part.
func CopyToRealPart(dst []complex128, src []float64) {
	parallel.Range(len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = complex(src[i], 0)
		}
	})
}

// CopyFromRealPart writes the real part of src into dst, discarding the
// imaginary part.
func CopyFromRealPart(dst []float64, src []complex128) {
	parallel.Range(len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = real(src[i])
		}
	})
}

// ModulusProjection replaces each element of src with the same phase but
// the measured amplitude, writing the result to dst (which may alias src):
// dst[i] = src[i] * (amplitude[i] / |src[i]|), or amplitude[i]+0i when
// |src[i]| == 0: the measured modulus is honored everywhere, including at
// the phase singularity. An element whose magnitude already equals
// amplitude[i] to within projectionTolerance (relative) is copied
// unchanged, so projecting a projected field again is bitwise idempotent.
func ModulusProjection(dst, src []complex128, amplitude []float64) {
	parallel.Range(len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			re, im := real(src[i]), imag(src[i])
			mag := math.Sqrt(re*re + im*im)
			if mag == 0 {
				dst[i] = complex(amplitude[i], 0)
				continue
			}
			if math.Abs(mag-amplitude[i]) <= projectionTolerance*amplitude[i] {
				dst[i] = src[i]
				continue
			}
			scale := amplitude[i] / mag
			dst[i] = complex(re*scale, im*scale)
		}
	})
}

// projectionTolerance is the relative rounding slack (8 ulp of 1.0) within
// which ModulusProjection treats a magnitude as already equal to the target.
const projectionTolerance = 8 * 0x1p-52

// Cutoff thresholds data in place: values strictly below threshold become
// low, all others become high. Used to turn a blurred magnitude field into
// a binary {0,1} support mask.
func Cutoff(data []float64, threshold, low, high float64) {
	parallel.Range(len(data), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if data[i] < threshold {
				data[i] = low
			} else {
				data[i] = high
			}
		}
	})
}

// HIOConstraint applies the Hybrid Input-Output feedback rule in place on
// prev, given the just-computed object-space estimate prime and the
// current support mask: for pixels outside the support (mask[i]==1) or
// with a negative real part, prev is fed back by -beta*prime; everywhere
// else prev is simply replaced by prime.
func HIOConstraint(prev, prime []complex128, mask []float64, beta float64) {
	parallel.Range(len(prev), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			if mask[i] == 1 || real(prime[i]) < 0 {
				prev[i] = complex(
					real(prev[i])-beta*real(prime[i]),
					imag(prev[i])-beta*imag(prime[i]),
				)
			} else {
				prev[i] = prime[i]
			}
		}
	})
}
