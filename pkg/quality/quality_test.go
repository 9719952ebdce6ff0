package quality

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func checkerboard(rows, cols int) *mat.Dense {
	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if (r+c)%2 == 0 {
				out.Set(r, c, 1)
			}
		}
	}
	return out
}

func TestBestCorrelationIdenticalImages(t *testing.T) {
	img := checkerboard(8, 8)
	corr, err := BestCorrelation(img, img)
	if err != nil {
		t.Fatal(err)
	}
	if corr < 0.999 {
		t.Fatalf("identical images should correlate ~1, got %v", corr)
	}
}

func TestBestCorrelationSignFlip(t *testing.T) {
	img := checkerboard(8, 8)
	flipped := mat.NewDense(8, 8, nil)
	flipped.Scale(-1, img)

	corr, err := BestCorrelation(flipped, img)
	if err != nil {
		t.Fatal(err)
	}
	if corr < 0.999 {
		t.Fatalf("sign-flipped image should still score ~1 after sign correction, got %v", corr)
	}
}

func TestBestCorrelationShiftedImage(t *testing.T) {
	const rows, cols = 10, 10
	img := mat.NewDense(rows, cols, nil)
	img.Set(3, 4, 1)
	img.Set(3, 5, 1)
	img.Set(4, 4, 1)

	shifted := circularShift(img, 2, 3)

	corr, err := BestCorrelation(shifted, img)
	if err != nil {
		t.Fatal(err)
	}
	if corr < 0.999 {
		t.Fatalf("shifted image should score ~1 after shift correction, got %v", corr)
	}
}

func TestBestCorrelationShapeMismatch(t *testing.T) {
	a := mat.NewDense(4, 4, nil)
	b := mat.NewDense(4, 5, nil)
	if _, err := BestCorrelation(a, b); err == nil {
		t.Fatal("expected error for shape mismatch")
	}
}

func TestCircularShiftRoundTrip(t *testing.T) {
	img := checkerboard(6, 6)
	shifted := circularShift(img, 2, 3)
	back := circularShift(shifted, -2, -3)

	rows, cols := img.Dims()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if math.Abs(img.At(r, c)-back.At(r, c)) > 1e-12 {
				t.Fatalf("round trip mismatch at (%d,%d): got %v want %v", r, c, back.At(r, c), img.At(r, c))
			}
		}
	}
}
