package fft

import (
	"math"
	"math/rand"
	"testing"

	"shrinkwrap/internal/buffer"
)

func TestForwardInverseRoundTrip(t *testing.T) {
	const width, height = 16, 12
	plan, err := NewPlan2D(width, height)
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(7))
	original := make([]complex128, width*height)
	for i := range original {
		original[i] = complex(r.NormFloat64(), r.NormFloat64())
	}

	src := buffer.NewField(width, height, buffer.RoleObject)
	src.CopyFrom(original)

	freq := buffer.NewField(width, height, buffer.RoleObject)
	plan.Forward(freq, src)
	if freq.Role() != buffer.RoleFrequency {
		t.Fatalf("Forward did not tag destination RoleFrequency, got %v", freq.Role())
	}

	back := buffer.NewField(width, height, buffer.RoleFrequency)
	plan.Inverse(back, freq)
	if back.Role() != buffer.RoleObject {
		t.Fatalf("Inverse did not tag destination RoleObject, got %v", back.Role())
	}

	const tol = 1e-9
	for i, want := range original {
		got := back.Data[i]
		if math.Abs(real(got)-real(want)) > tol || math.Abs(imag(got)-imag(want)) > tol {
			t.Fatalf("round trip mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestForwardInverseInPlace(t *testing.T) {
	const width, height = 8, 8
	plan, err := NewPlan2D(width, height)
	if err != nil {
		t.Fatal(err)
	}

	r := rand.New(rand.NewSource(8))
	original := make([]complex128, width*height)
	for i := range original {
		original[i] = complex(r.NormFloat64(), r.NormFloat64())
	}

	field := buffer.NewField(width, height, buffer.RoleObject)
	field.CopyFrom(original)

	plan.Forward(field, field)
	plan.Inverse(field, field)

	const tol = 1e-9
	for i, want := range original {
		got := field.Data[i]
		if math.Abs(real(got)-real(want)) > tol || math.Abs(imag(got)-imag(want)) > tol {
			t.Fatalf("in-place round trip mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestForwardOfConstantIsDCOnly(t *testing.T) {
	const width, height = 6, 4
	plan, err := NewPlan2D(width, height)
	if err != nil {
		t.Fatal(err)
	}

	field := buffer.NewField(width, height, buffer.RoleObject)
	for i := range field.Data {
		field.Data[i] = complex(3, 0)
	}

	freq := buffer.NewField(width, height, buffer.RoleObject)
	plan.Forward(freq, field)

	wantDC := complex(3*float64(width*height), 0)
	if math.Abs(real(freq.Data[0])-real(wantDC)) > 1e-9 {
		t.Fatalf("DC coefficient = %v, want %v", freq.Data[0], wantDC)
	}
	for i := 1; i < len(freq.Data); i++ {
		if math.Hypot(real(freq.Data[i]), imag(freq.Data[i])) > 1e-9 {
			t.Fatalf("non-DC coefficient %d = %v, want ~0", i, freq.Data[i])
		}
	}
}

func TestForwardRequiresObjectRole(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Forward on a RoleFrequency field")
		}
	}()

	const width, height = 4, 4
	plan, err := NewPlan2D(width, height)
	if err != nil {
		t.Fatal(err)
	}

	field := buffer.NewField(width, height, buffer.RoleFrequency)
	dst := buffer.NewField(width, height, buffer.RoleObject)
	plan.Forward(dst, field)
}

func TestInverseRequiresFrequencyRole(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling Inverse on a RoleObject field")
		}
	}()

	const width, height = 4, 4
	plan, err := NewPlan2D(width, height)
	if err != nil {
		t.Fatal(err)
	}

	field := buffer.NewField(width, height, buffer.RoleObject)
	dst := buffer.NewField(width, height, buffer.RoleObject)
	plan.Inverse(dst, field)
}

func TestNewPlan2DRejectsNonPositiveShape(t *testing.T) {
	if _, err := NewPlan2D(0, 4); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := NewPlan2D(4, -1); err == nil {
		t.Fatal("expected error for negative height")
	}
}
