// Package synth generates synthetic support images used only to exercise
// the reconstruction engine end to end. It is deliberately internal: the
// data model treats example-data synthesis as an external collaborator,
// never a public capability of the engine itself.
package synth

import "math"

// VerticalSlit returns a width x height real image that is 1 inside a
// vertical slit of the given slitWidth centered on the grid and 0
// elsewhere.
func VerticalSlit(width, height, slitWidth int) []float64 {
	img := make([]float64, width*height)
	left := (width - slitWidth) / 2
	right := left + slitWidth
	for y := 0; y < height; y++ {
		for x := left; x < right && x < width; x++ {
			if x >= 0 {
				img[y*width+x] = 1
			}
		}
	}
	return img
}

// Blob is one Gaussian bump in an AtomCluster image.
type Blob struct {
	CX, CY float64
	Sigma  float64
	Amp    float64
}

// AtomCluster returns a width x height real image formed by summing
// Gaussian blobs, modeling the "clustered point scatterers" synthetic used
// to sanity-check phase retrieval on multi-feature objects.
func AtomCluster(width, height int, blobs []Blob) []float64 {
	img := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var v float64
			for _, b := range blobs {
				dx := float64(x) - b.CX
				dy := float64(y) - b.CY
				v += b.Amp * math.Exp(-(dx*dx+dy*dy)/(2*b.Sigma*b.Sigma))
			}
			img[y*width+x] = v
		}
	}
	return img
}

// DefaultAtomCluster returns the canonical multi-blob cluster used by the
// end-to-end tests: several Gaussian blobs of varying width scattered
// across a 200x300 field.
func DefaultAtomCluster(width, height int) []float64 {
	blobs := []Blob{
		{CX: float64(width) * 0.3, CY: float64(height) * 0.3, Sigma: 6, Amp: 1.0},
		{CX: float64(width) * 0.6, CY: float64(height) * 0.25, Sigma: 4, Amp: 0.8},
		{CX: float64(width) * 0.5, CY: float64(height) * 0.6, Sigma: 8, Amp: 1.2},
		{CX: float64(width) * 0.7, CY: float64(height) * 0.7, Sigma: 5, Amp: 0.9},
		{CX: float64(width) * 0.25, CY: float64(height) * 0.65, Sigma: 3, Amp: 0.7},
	}
	return AtomCluster(width, height, blobs)
}
