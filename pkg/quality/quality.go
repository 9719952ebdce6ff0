// Package quality scores a Shrink-Wrap reconstruction against a known
// ground-truth image. A production reconstruction has no ground truth to
// compare against, so this lives outside the reconstruction core; it
// exists to exercise the engine against synthetic benchmarks, the same
// role the calculateSSIM/calculateEdgePreservation metrics in this
// codebase's MRI-reconstruction lineage and the original's
// mainUnderstandShrinkWrap.cpp comparison driver play.
package quality

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"shrinkwrap/internal/buffer"
	"shrinkwrap/pkg/fft"
)

// BestCorrelation scores reconstructed against groundTruth under the
// ambiguities inherent to phase retrieval: an arbitrary global sign flip
// and an arbitrary integer pixel shift (wraparound, since the underlying
// transform is circular). It locates the best-aligning shift via the
// normalized cross-correlation surface, undoes it, then returns the larger
// of the Pearson correlation on the aligned pair and on its sign-flipped
// counterpart.
func BestCorrelation(reconstructed, groundTruth *mat.Dense) (float64, error) {
	rRows, rCols := reconstructed.Dims()
	gRows, gCols := groundTruth.Dims()
	if rRows != gRows || rCols != gCols {
		return 0, fmt.Errorf("quality: shape mismatch: reconstructed %dx%d, groundTruth %dx%d", rRows, rCols, gRows, gCols)
	}

	dr, dc, err := bestShift(reconstructed, groundTruth)
	if err != nil {
		return 0, err
	}

	aligned := circularShift(reconstructed, -dr, -dc)

	alignedFlat := aligned.RawMatrix().Data
	truthFlat := groundTruth.RawMatrix().Data

	corr := stat.Correlation(alignedFlat, truthFlat, nil)

	flipped := make([]float64, len(alignedFlat))
	for i, v := range alignedFlat {
		flipped[i] = -v
	}
	corrFlipped := stat.Correlation(flipped, truthFlat, nil)

	return math.Max(corr, corrFlipped), nil
}

// bestShift finds the integer (row, col) circular displacement of a
// relative to b (a is best matched by b shifted by (dr, dc)), via the
// correlation theorem: the cross-correlation surface is the inverse FFT of
// FFT(a) times the conjugate of FFT(b).
func bestShift(a, b *mat.Dense) (dr, dc int, err error) {
	rows, cols := a.Dims()

	plan, err := fft.NewPlan2D(cols, rows)
	if err != nil {
		return 0, 0, err
	}

	fa := buffer.NewField(cols, rows, buffer.RoleObject)
	copyDenseToField(fa, a)
	fb := buffer.NewField(cols, rows, buffer.RoleObject)
	copyDenseToField(fb, b)

	freqA := buffer.NewField(cols, rows, buffer.RoleObject)
	plan.Forward(freqA, fa)
	freqB := buffer.NewField(cols, rows, buffer.RoleObject)
	plan.Forward(freqB, fb)

	product := buffer.NewField(cols, rows, buffer.RoleFrequency)
	for i := range product.Data {
		product.Data[i] = freqA.Data[i] * complex(real(freqB.Data[i]), -imag(freqB.Data[i]))
	}

	surface := buffer.NewField(cols, rows, buffer.RoleFrequency)
	plan.Inverse(surface, product)

	bestMag := -1.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := surface.Data[r*cols+c]
			mag := real(v)*real(v) + imag(v)*imag(v)
			if mag > bestMag {
				bestMag = mag
				dr, dc = r, c
			}
		}
	}

	// Map shift indices from [0,N) to the signed range (-N/2, N/2] so a
	// small leftward/upward shift isn't reported as "almost the whole
	// image".
	if dr > rows/2 {
		dr -= rows
	}
	if dc > cols/2 {
		dc -= cols
	}
	return dr, dc, nil
}

// circularShift returns a copy of src shifted by (dr, dc) with wraparound.
func circularShift(src *mat.Dense, dr, dc int) *mat.Dense {
	rows, cols := src.Dims()
	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		sr := ((r-dr)%rows + rows) % rows
		for c := 0; c < cols; c++ {
			sc := ((c-dc)%cols + cols) % cols
			out.Set(r, c, src.At(sr, sc))
		}
	}
	return out
}

func copyDenseToField(f *buffer.Field, d *mat.Dense) {
	rows, cols := d.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			f.Data[r*cols+c] = complex(d.At(r, c), 0)
		}
	}
}
