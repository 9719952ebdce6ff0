package observer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// PNGObserver writes the support mask and the current object-space estimate
// to PNG files after every outer cycle, adapted from this codebase's
// earlier slice-saving viewer: grayscale conversion and an
// os.Create/encode pair, generalized from a JPEG slice sequence to a
// per-cycle PNG dump of a 2D reconstruction.
type PNGObserver struct {
	Dir string
}

// NewPNGObserver creates the output directory (if needed) and returns an
// Observer that dumps mask_NNN.png and estimate_NNN.png into it.
func NewPNGObserver(dir string) (*PNGObserver, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("observer: creating output dir: %w", err)
	}
	return &PNGObserver{Dir: dir}, nil
}

func (o *PNGObserver) OnCycleBegin(cycle int, sigma float64) {}

func (o *PNGObserver) OnHioStep(cycle, hioStep int, maskedError float64) {}

func (o *PNGObserver) OnCycleEnd(cycle int, maskedError float64, mask, estimate *mat.Dense) {
	if err := o.saveDense(mask, fmt.Sprintf("mask_%03d.png", cycle)); err != nil {
		fmt.Fprintf(os.Stderr, "observer: saving mask for cycle %d: %v\n", cycle, err)
	}
	if err := o.saveDense(estimate, fmt.Sprintf("estimate_%03d.png", cycle)); err != nil {
		fmt.Fprintf(os.Stderr, "observer: saving estimate for cycle %d: %v\n", cycle, err)
	}
}

// saveDense renders a real-valued grid as a 16-bit grayscale PNG, scaling
// by the grid's own maximum magnitude so both {0,1} masks and arbitrary-
// range estimates produce a viewable image.
func (o *PNGObserver) saveDense(grid *mat.Dense, filename string) error {
	rows, cols := grid.Dims()

	maxAbs := 0.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if v := grid.At(r, c); v > maxAbs {
				maxAbs = v
			} else if -v > maxAbs {
				maxAbs = -v
			}
		}
	}
	if maxAbs == 0 {
		maxAbs = 1
	}

	img := image.NewGray16(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := grid.At(r, c) / maxAbs
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray16(c, r, color.Gray16{Y: uint16(v * 65535)})
		}
	}

	file, err := os.Create(filepath.Join(o.Dir, filename))
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
