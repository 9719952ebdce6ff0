// Package buffer provides the owned working buffers the Shrink-Wrap
// controller operates on: plain Go values the garbage collector owns
// instead of raw fftwf_complex pointers and manual malloc/free pairs,
// plus a small role tag that catches the one aliasing bug that matters:
// feeding the FFT plan a buffer that currently holds the wrong quantity.
package buffer

import "fmt"

// Role identifies which quantity a complex Field currently holds, per the
// data model's invariant that "after a forward FFT it holds G, after an
// inverse FFT it holds g'".
type Role int

const (
	// RoleObject marks a buffer holding an object-space estimate (g or g').
	RoleObject Role = iota
	// RoleFrequency marks a buffer holding a Fourier-space estimate (G).
	RoleFrequency
)

func (r Role) String() string {
	switch r {
	case RoleObject:
		return "object"
	case RoleFrequency:
		return "frequency"
	default:
		return "unknown"
	}
}

// Field is a 2D complex buffer tagged with the role it currently plays.
// It is not a memory-ownership mechanism (the GC already handles that):
// it exists purely to make misuse of the FFT facility a loud, immediate
// panic instead of a silent wrong-phase bug.
type Field struct {
	Data   []complex128
	Width  int
	Height int
	role   Role
}

// NewField allocates a zeroed complex field of shape (width, height) with
// the given initial role.
func NewField(width, height int, role Role) *Field {
	return &Field{
		Data:   make([]complex128, width*height),
		Width:  width,
		Height: height,
		role:   role,
	}
}

// Role reports the quantity currently held by the field.
func (f *Field) Role() Role { return f.role }

// SetRole retags the field after a transform has changed what it holds.
func (f *Field) SetRole(r Role) { f.role = r }

// RequireRole panics if the field is not currently tagged with want. It is
// meant to guard FFT entry points, not general-purpose control flow.
func (f *Field) RequireRole(want Role) {
	if f.role != want {
		panic(fmt.Sprintf("buffer: field holds role %s, operation requires %s", f.role, want))
	}
}

// CopyFrom overwrites the field's data with src's values without changing
// its dimensions. The caller is responsible for setting the resulting role.
func (f *Field) CopyFrom(src []complex128) {
	copy(f.Data, src)
}

// Clone returns a new field with the same data, dimensions, and role.
func (f *Field) Clone() *Field {
	out := &Field{
		Data:   make([]complex128, len(f.Data)),
		Width:  f.Width,
		Height: f.Height,
		role:   f.role,
	}
	copy(out.Data, f.Data)
	return out
}
