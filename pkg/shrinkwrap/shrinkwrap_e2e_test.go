package shrinkwrap

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"shrinkwrap/internal/synth"
	"shrinkwrap/pkg/quality"
)

// toDense converts a row-major W*H slice into a *mat.Dense of shape
// (height, width), matching the rest of the package's (rows=height,
// cols=width) convention.
func toDense(width, height int, data []float64) *mat.Dense {
	return mat.NewDense(height, width, append([]float64(nil), data...))
}

func float32ToFloat64(x []float32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}

// TestEndToEndVerticalSlit checks that a 50x50 vertical slit of width 10
// reconstructs with correlation >= 0.95 against ground truth.
func TestEndToEndVerticalSlit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping slow end-to-end reconstruction test in short mode")
	}

	const width, height = 50, 50
	groundTruth := synth.VerticalSlit(width, height, 10)
	intensity64 := intensityFromObject(t, width, height, groundTruth)

	intensity32 := make([]float32, len(intensity64))
	for i, v := range intensity64 {
		intensity32[i] = float32(v)
	}

	result, status := Reconstruct(intensity32, width, height, DefaultParams(), nil)
	if status != StatusOK {
		t.Fatalf("status = %v, want StatusOK", status)
	}

	reconstructed := toDense(width, height, float32ToFloat64(result.Image))
	truth := toDense(width, height, groundTruth)

	corr, err := quality.BestCorrelation(reconstructed, truth)
	if err != nil {
		t.Fatal(err)
	}
	if corr < 0.95 {
		t.Fatalf("correlation = %v, want >= 0.95", corr)
	}
}

// TestEndToEndAtomCluster checks that a 200x300 multi-blob field
// reconstructs with correlation >= 0.90 against ground truth.
func TestEndToEndAtomCluster(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping slow end-to-end reconstruction test in short mode")
	}

	const width, height = 200, 300
	groundTruth := synth.DefaultAtomCluster(width, height)
	intensity64 := intensityFromObject(t, width, height, groundTruth)

	intensity32 := make([]float32, len(intensity64))
	for i, v := range intensity64 {
		intensity32[i] = float32(v)
	}

	result, status := Reconstruct(intensity32, width, height, DefaultParams(), nil)
	if status != StatusOK {
		t.Fatalf("status = %v, want StatusOK", status)
	}

	reconstructed := toDense(width, height, float32ToFloat64(result.Image))
	truth := toDense(width, height, groundTruth)

	corr, err := quality.BestCorrelation(reconstructed, truth)
	if err != nil {
		t.Fatal(err)
	}
	if corr < 0.90 {
		t.Fatalf("correlation = %v, want >= 0.90", corr)
	}
}
