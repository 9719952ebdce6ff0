package gaussian

import "shrinkwrap/internal/parallel"

// Blur applies a separable 2D Gaussian blur to data in place: a horizontal
// pass along the fast axis followed by a vertical pass along the slow
// axis, each with edge-extension (clamp-to-edge) boundary handling so a
// unit-sum kernel acts as a true local mean even next to the border.
func Blur(data []float64, width, height int, sigma float64) {
	if width <= 0 || height <= 0 {
		return
	}
	kernel := Kernel(sigma)
	if len(kernel) == 1 {
		// A single-tap unit kernel is the identity; nothing to do.
		return
	}

	tmp := make([]float64, width*height)
	blurRows(tmp, data, width, height, kernel)
	blurColumns(data, tmp, width, height, kernel)
}

// blurRows convolves each row of src with kernel, writing into dst.
func blurRows(dst, src []float64, width, height int, kernel []float64) {
	radius := (len(kernel) - 1) / 2
	parallel.Range(height, func(yLo, yHi int) {
		for y := yLo; y < yHi; y++ {
			rowOff := y * width
			for x := 0; x < width; x++ {
				var acc float64
				for k := -radius; k <= radius; k++ {
					sx := clamp(x+k, width)
					acc += kernel[k+radius] * src[rowOff+sx]
				}
				dst[rowOff+x] = acc
			}
		}
	})
}

// blurColumns convolves each column of src with kernel, writing into dst.
func blurColumns(dst, src []float64, width, height int, kernel []float64) {
	radius := (len(kernel) - 1) / 2
	parallel.Range(width, func(xLo, xHi int) {
		for x := xLo; x < xHi; x++ {
			for y := 0; y < height; y++ {
				var acc float64
				for k := -radius; k <= radius; k++ {
					sy := clamp(y+k, height)
					acc += kernel[k+radius] * src[sy*width+x]
				}
				dst[y*width+x] = acc
			}
		}
	})
}

// clamp maps i into [0, n-1], implementing clamp-to-edge boundary handling.
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
