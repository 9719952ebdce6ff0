package observer

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// LogObserver reproduces the original's per-cycle progress narration
// ("Update Mask with sigma=...", "[Error ...] [Cycle .../...]") via
// plain fmt.Fprintf, matching the ambient logging style used elsewhere in
// this codebase instead of pulling in a structured logging library.
type LogObserver struct {
	Out     io.Writer
	NCycles int
}

// NewLogObserver returns an Observer that writes progress lines to out,
// reporting cycle counts against the given upper bound.
func NewLogObserver(out io.Writer, nCycles int) *LogObserver {
	return &LogObserver{Out: out, NCycles: nCycles}
}

func (o *LogObserver) OnCycleBegin(cycle int, sigma float64) {
	fmt.Fprintf(o.Out, "Update Mask with sigma=%g\n", sigma)
}

func (o *LogObserver) OnHioStep(cycle, hioStep int, maskedError float64) {}

func (o *LogObserver) OnCycleEnd(cycle int, maskedError float64, mask, estimate *mat.Dense) {
	fmt.Fprintf(o.Out, "[Error %g] [Cycle %d/%d]\n", maskedError, cycle+1, o.NCycles)
}
